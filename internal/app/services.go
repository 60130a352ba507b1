package app

import (
	"fmt"
	"strings"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/botservice"
	"github.com/bkoseoglu/visadesk-backend/internal/clients/gemini"
	"github.com/bkoseoglu/visadesk-backend/internal/clients/pdfservice"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
	"github.com/bkoseoglu/visadesk-backend/internal/storage"
)

type Services struct {
	Document    services.DocumentService
	Automation  services.AutomationService
	Export      services.ExportService
	Booking     services.BookingService
	LetterDraft services.LetterDraftService
	Store       storage.ObjectStore
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	store, err := resolveObjectStore(log, cfg)
	if err != nil {
		return Services{}, err
	}

	pdfClient := pdfservice.New(log, cfg.PDFServiceURL, cfg.PDFServiceTimeout)
	llmClient := gemini.New(log, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiTimeout)
	botClient := botservice.New(log, cfg.BotServiceURL, cfg.BotAPIKey, cfg.BotServiceTimeout)

	exporter := services.NewExportService(log, reposet.Application)

	document := services.NewDocumentService(
		log,
		reposet.Application,
		reposet.BookingHotel,
		reposet.LetterExample,
		reposet.Setting,
		reposet.GeneratedDocument,
		pdfClient,
		llmClient,
		store,
		services.NewRandomHotelSelector(),
	)

	automation := services.NewAutomationService(
		log,
		reposet.AutomationJob,
		reposet.GeneratedDocument,
		reposet.BookingHotel,
		exporter,
		botClient,
		services.BotConfig{
			BaseURL:       cfg.BotServiceURL,
			APIKey:        cfg.BotAPIKey,
			WebhookSecret: cfg.WebhookSecret,
			CallbackURL:   strings.TrimRight(cfg.PublicBaseURL, "/") + "/api/automation/webhook",
		},
	)

	return Services{
		Document:    document,
		Automation:  automation,
		Export:      exporter,
		Booking:     services.NewBookingService(log, reposet.BookingHotel, pdfClient, store),
		LetterDraft: services.NewLetterDraftService(log, llmClient),
		Store:       store,
	}, nil
}

func resolveObjectStore(log *logger.Logger, cfg Config) (storage.ObjectStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageMode)) {
	case "", "gcs":
		return storage.NewGCSStore(log, storage.GCSConfig{
			TemplatesBucket:     cfg.TemplatesBucket,
			GeneratedDocsBucket: cfg.GeneratedDocsBucket,
			CredentialsFile:     cfg.GCSCredentialsFile,
		})
	case "memory":
		log.Warn("Using in-memory object store; artifacts will not survive restarts")
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage mode %q", cfg.StorageMode)
	}
}
