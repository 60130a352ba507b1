package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
)

type DocumentsHandler struct {
	log  *logger.Logger
	docs services.DocumentService
}

func NewDocumentsHandler(log *logger.Logger, docs services.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{
		log:  log.With("handler", "DocumentsHandler"),
		docs: docs,
	}
}

type generateDocumentsRequest struct {
	ApplicationID int64  `json:"application_id"`
	SharedHotelID string `json:"shared_hotel_id"`
}

// POST /api/generate-documents
//
// Fire and forget: the response only acknowledges that generation started.
// Outcomes are observed by polling the generated documents list.
func (h *DocumentsHandler) Generate(c *gin.Context) {
	var req generateDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.ApplicationID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid_application_id", fmt.Errorf("missing or invalid application_id"))
		return
	}

	var sharedHotelID *uuid.UUID
	if req.SharedHotelID != "" {
		parsed, err := uuid.Parse(req.SharedHotelID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_hotel_id", err)
			return
		}
		sharedHotelID = &parsed
	}

	applicationID := req.ApplicationID
	go func() {
		h.docs.GenerateForApplication(context.Background(), applicationID, sharedHotelID)
	}()

	RespondOK(c, gin.H{"status": "started"})
}
