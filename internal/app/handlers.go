package app

import (
	"github.com/bkoseoglu/visadesk-backend/internal/handlers"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

type Handlers struct {
	Documents    *handlers.DocumentsHandler
	Automation   *handlers.AutomationHandler
	Webhook      *handlers.WebhookHandler
	Booking      *handlers.BookingHandler
	Letters      *handlers.LettersHandler
	Applications *handlers.ApplicationsHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Documents:    handlers.NewDocumentsHandler(log, services.Document),
		Automation:   handlers.NewAutomationHandler(log, services.Automation),
		Webhook:      handlers.NewWebhookHandler(log, services.Automation, cfg.WebhookSecret),
		Booking:      handlers.NewBookingHandler(log, services.Booking),
		Letters:      handlers.NewLettersHandler(log, services.LetterDraft),
		Applications: handlers.NewApplicationsHandler(log, services.Export),
	}
}
