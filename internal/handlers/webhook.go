package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
)

// WebhookHandler receives progress callbacks from the bot service. This is
// the only path by which dispatched jobs advance, so internal failures
// return 500 to trigger redelivery.
type WebhookHandler struct {
	log           *logger.Logger
	automation    services.AutomationService
	webhookSecret string
}

func NewWebhookHandler(log *logger.Logger, automation services.AutomationService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		log:           log.With("handler", "WebhookHandler"),
		automation:    automation,
		webhookSecret: webhookSecret,
	}
}

// POST /api/automation/webhook
func (h *WebhookHandler) Handle(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" || h.webhookSecret == "" || token != h.webhookSecret {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("unauthorized"))
		return
	}

	var payload services.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if payload.JobID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "missing_job_id", fmt.Errorf("missing job_id"))
		return
	}

	if err := h.automation.ApplyWebhook(c.Request.Context(), payload); err != nil {
		RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
