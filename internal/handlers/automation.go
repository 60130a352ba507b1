package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/botservice"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
)

type AutomationHandler struct {
	log        *logger.Logger
	automation services.AutomationService
}

func NewAutomationHandler(log *logger.Logger, automation services.AutomationService) *AutomationHandler {
	return &AutomationHandler{
		log:        log.With("handler", "AutomationHandler"),
		automation: automation,
	}
}

type createJobRequest struct {
	ApplicationID int64    `json:"application_id"`
	Stages        []string `json:"stages"`
	Headless      *bool    `json:"headless"`
}

// POST /api/automation/jobs
func (h *AutomationHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.ApplicationID <= 0 {
		RespondError(c, http.StatusBadRequest, "missing_application_id", fmt.Errorf("missing application_id"))
		return
	}

	headless := true
	if req.Headless != nil {
		headless = *req.Headless
	}
	triggeredBy := c.GetHeader("X-User-ID")
	if triggeredBy == "" {
		triggeredBy = "system"
	}

	job, err := h.automation.Create(c.Request.Context(), services.CreateJobInput{
		ApplicationID: req.ApplicationID,
		Stages:        req.Stages,
		Headless:      headless,
		TriggeredBy:   triggeredBy,
	})
	if err != nil {
		var dispatchErr *botservice.DispatchError
		switch {
		case errors.Is(err, services.ErrExportFailed):
			RespondError(c, http.StatusBadRequest, "export_failed", err)
		case errors.Is(err, services.ErrBotNotConfigured):
			RespondError(c, http.StatusInternalServerError, "bot_not_configured", err)
		case errors.As(err, &dispatchErr):
			RespondError(c, http.StatusBadGateway, "bot_rejected_job", err)
		default:
			RespondError(c, http.StatusInternalServerError, "job_creation_failed", err)
		}
		return
	}

	RespondOK(c, gin.H{
		"job_id":  job.ID,
		"status":  job.Status,
		"message": "Automation job created",
	})
}

// GET /api/automation/jobs/:id
func (h *AutomationHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	job, err := h.automation.Get(c.Request.Context(), jobID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "job_lookup_failed", err)
		return
	}
	if job == nil {
		RespondError(c, http.StatusNotFound, "job_not_found", fmt.Errorf("job not found"))
		return
	}
	RespondOK(c, job)
}

type patchJobRequest struct {
	Action string `json:"action"`
}

// PATCH /api/automation/jobs/:id
func (h *AutomationHandler) PatchJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	var req patchJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Action != "cancel" {
		RespondError(c, http.StatusBadRequest, "unknown_action", fmt.Errorf("unknown action %q", req.Action))
		return
	}
	if err := h.automation.Cancel(c.Request.Context(), jobID); err != nil {
		RespondError(c, http.StatusInternalServerError, "cancel_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
