package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/gemini"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
)

type LettersHandler struct {
	log    *logger.Logger
	drafts services.LetterDraftService
}

func NewLettersHandler(log *logger.Logger, drafts services.LetterDraftService) *LettersHandler {
	return &LettersHandler{
		log:    log.With("handler", "LettersHandler"),
		drafts: drafts,
	}
}

type draftLetterRequest struct {
	SystemPrompt    string         `json:"systemPrompt"`
	Examples        []string       `json:"examples"`
	ApplicationData map[string]any `json:"applicationData"`
}

// POST /api/letters/generate
func (h *LettersHandler) Generate(c *gin.Context) {
	var req draftLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	html, err := h.drafts.Draft(c.Request.Context(), req.SystemPrompt, req.Examples, req.ApplicationData)
	if err != nil {
		var httpErr *gemini.HTTPError
		if errors.As(err, &httpErr) {
			// Forward the upstream status so the operator sees what the
			// language service objected to.
			RespondError(c, httpErr.StatusCode, "language_service_error", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "letter_generation_failed", err)
		return
	}
	RespondOK(c, gin.H{"html": html})
}
