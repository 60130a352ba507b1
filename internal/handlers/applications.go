package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
)

type ApplicationsHandler struct {
	log      *logger.Logger
	exporter services.ExportService
}

func NewApplicationsHandler(log *logger.Logger, exporter services.ExportService) *ApplicationsHandler {
	return &ApplicationsHandler{
		log:      log.With("handler", "ApplicationsHandler"),
		exporter: exporter,
	}
}

// GET /api/applications/:id/export
func (h *ApplicationsHandler) Export(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	export, err := h.exporter.Export(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	RespondOK(c, export)
}
