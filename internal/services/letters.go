package services

import (
	"context"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/gemini"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

// LetterDraftService backs the operator-driven letter endpoint: the caller
// supplies prompt, examples and data, and gets the raw HTML draft back.
type LetterDraftService interface {
	Draft(ctx context.Context, systemPrompt string, examples []string, applicationData map[string]any) (string, error)
}

type letterDraftService struct {
	log *logger.Logger
	llm gemini.Client
}

func NewLetterDraftService(baseLog *logger.Logger, llm gemini.Client) LetterDraftService {
	return &letterDraftService{
		log: baseLog.With("service", "LetterDraftService"),
		llm: llm,
	}
}

func (s *letterDraftService) Draft(ctx context.Context, systemPrompt string, examples []string, applicationData map[string]any) (string, error) {
	if systemPrompt == "" {
		systemPrompt = DefaultLetterSystemPrompt
	}
	prompt := BuildManualLetterPrompt(systemPrompt, examples, applicationData)
	return s.llm.GenerateText(ctx, prompt)
}
