package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/botservice"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/observability"
	"github.com/bkoseoglu/visadesk-backend/internal/repos"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

const defaultJobCountry = "Denmark"

var (
	// ErrExportFailed usually means the application is invalid; the create
	// endpoint maps it to 400.
	ErrExportFailed = errors.New("failed to build application export")
	// ErrBotNotConfigured means required bot service configuration is
	// missing. Dispatch fails closed rather than proceeding degraded.
	ErrBotNotConfigured = errors.New("bot service not configured")
)

type BotConfig struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	// CallbackURL is where the bot service reports progress, typically
	// {public base}/api/automation/webhook.
	CallbackURL string
}

func (c BotConfig) complete() bool {
	return c.BaseURL != "" && c.APIKey != "" && c.WebhookSecret != "" && c.CallbackURL != ""
}

type CreateJobInput struct {
	ApplicationID int64
	Stages        []string
	Headless      bool
	TriggeredBy   string
}

// WebhookPayload is the sparse patch the bot service sends. Only non-nil
// fields are applied, so an absent field never clobbers stored state.
type WebhookPayload struct {
	JobID           uuid.UUID `json:"job_id"`
	Status          *string   `json:"status"`
	CurrentStage    *string   `json:"current_stage"`
	StageProgress   *int      `json:"stage_progress"`
	StagesCompleted *[]string `json:"stages_completed"`
	MFACaseNumber   *string   `json:"mfa_case_number"`
	VFSConfirmation *string   `json:"vfs_confirmation"`
	ErrorMessage    *string   `json:"error_message"`
	ErrorStage      *string   `json:"error_stage"`
}

// AutomationService owns the automation job lifecycle: creation and
// dispatch to the bot service, cancellation, and webhook reconciliation.
type AutomationService interface {
	Create(ctx context.Context, input CreateJobInput) (*types.AutomationJob, error)
	Get(ctx context.Context, id uuid.UUID) (*types.AutomationJob, error)
	// Cancel is advisory: it flips local state while the job is still
	// active and is a no-op once the job is terminal. The bot service is
	// not signalled.
	Cancel(ctx context.Context, id uuid.UUID) error
	ApplyWebhook(ctx context.Context, payload WebhookPayload) error
}

type automationService struct {
	log      *logger.Logger
	jobs     repos.AutomationJobRepo
	docs     repos.GeneratedDocumentRepo
	hotels   repos.BookingHotelRepo
	exporter ExportService
	bot      botservice.Client
	cfg      BotConfig
}

func NewAutomationService(
	baseLog *logger.Logger,
	jobs repos.AutomationJobRepo,
	docs repos.GeneratedDocumentRepo,
	hotels repos.BookingHotelRepo,
	exporter ExportService,
	bot botservice.Client,
	cfg BotConfig,
) AutomationService {
	return &automationService{
		log:      baseLog.With("service", "AutomationService"),
		jobs:     jobs,
		docs:     docs,
		hotels:   hotels,
		exporter: exporter,
		bot:      bot,
		cfg:      cfg,
	}
}

func (s *automationService) Create(ctx context.Context, input CreateJobInput) (*types.AutomationJob, error) {
	export, err := s.exporter.Export(ctx, input.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	// Hotel enrichment is best-effort: the bot can run without it.
	hotelData := s.lookupBookingHotel(ctx, input.ApplicationID)

	country, _ := export["country"].(string)
	if country == "" {
		country = defaultJobCountry
	}

	stages := input.Stages
	if len(stages) == 0 {
		stages = []string{"mfa"}
	}

	job := &types.AutomationJob{
		ApplicationID:   input.ApplicationID,
		Country:         country,
		Status:          types.JobStatusPending,
		StagesCompleted: datatypes.JSON([]byte(`[]`)),
		TriggeredBy:     input.TriggeredBy,
	}
	if err := s.jobs.Create(ctx, nil, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	if !s.cfg.complete() {
		s.markFailed(ctx, job.ID, "Bot service not configured (missing environment variables)")
		observability.AutomationJobsDispatched.WithLabelValues("not_configured").Inc()
		return nil, ErrBotNotConfigured
	}

	payload := botservice.JobPayload{
		JobID:           job.ID,
		ApplicationID:   input.ApplicationID,
		Country:         country,
		CallbackURL:     s.cfg.CallbackURL,
		WebhookSecret:   s.cfg.WebhookSecret,
		Stages:          stages,
		DryRun:          false,
		Headless:        input.Headless,
		ApplicationData: export,
		HotelData:       hotelData,
	}
	if err := s.bot.Dispatch(ctx, payload); err != nil {
		var dispatchErr *botservice.DispatchError
		if errors.As(err, &dispatchErr) {
			s.markFailed(ctx, job.ID, "Bot service error: "+dispatchErr.Body)
		} else {
			s.markFailed(ctx, job.ID, "Bot service error: "+err.Error())
		}
		observability.AutomationJobsDispatched.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if err := s.jobs.UpdateFields(ctx, nil, job.ID, map[string]interface{}{
		"status": types.JobStatusQueued,
	}); err != nil {
		return nil, fmt.Errorf("mark job queued: %w", err)
	}
	job.Status = types.JobStatusQueued
	observability.AutomationJobsDispatched.WithLabelValues("queued").Inc()
	s.log.Info("Automation job dispatched", "job_id", job.ID, "application_id", input.ApplicationID, "country", country)
	return job, nil
}

func (s *automationService) markFailed(ctx context.Context, jobID uuid.UUID, msg string) {
	if err := s.jobs.UpdateFields(ctx, nil, jobID, map[string]interface{}{
		"status":        types.JobStatusFailed,
		"error_message": msg,
	}); err != nil {
		s.log.Error("Failed to mark job failed", "job_id", jobID, "error", err)
	}
}

func (s *automationService) lookupBookingHotel(ctx context.Context, applicationID int64) *botservice.HotelData {
	doc, err := s.docs.LatestBooking(ctx, nil, applicationID)
	if err != nil || doc == nil || doc.HotelID == nil {
		return nil
	}
	hotel, err := s.hotels.GetByID(ctx, nil, *doc.HotelID)
	if err != nil || hotel == nil {
		return nil
	}
	return &botservice.HotelData{
		Name:             hotel.Name,
		Address:          hotel.Address,
		PostalCode:       hotel.PostalCode,
		City:             hotel.City,
		Country:          hotel.Country,
		Email:            hotel.Email,
		PhoneCountryCode: hotel.PhoneCountryCode,
		PhoneNumber:      hotel.Phone,
	}
}

func (s *automationService) Get(ctx context.Context, id uuid.UUID) (*types.AutomationJob, error) {
	return s.jobs.GetByID(ctx, nil, id)
}

func (s *automationService) Cancel(ctx context.Context, id uuid.UUID) error {
	rows, err := s.jobs.CancelIfActive(ctx, nil, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Already terminal: cancelling a finished job is a no-op.
		s.log.Info("Cancel requested for job that is already terminal", "job_id", id)
	}
	return nil
}

func (s *automationService) ApplyWebhook(ctx context.Context, payload WebhookPayload) error {
	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}

	status := ""
	if payload.Status != nil && *payload.Status != "" {
		status = *payload.Status
		updates["status"] = status
	}
	if payload.CurrentStage != nil {
		updates["current_stage"] = *payload.CurrentStage
	}
	if payload.StageProgress != nil {
		updates["stage_progress"] = *payload.StageProgress
	}
	if payload.StagesCompleted != nil {
		encoded, err := json.Marshal(*payload.StagesCompleted)
		if err == nil {
			updates["stages_completed"] = datatypes.JSON(encoded)
		}
	}
	if payload.MFACaseNumber != nil {
		updates["mfa_case_number"] = *payload.MFACaseNumber
	}
	if payload.VFSConfirmation != nil {
		updates["vfs_confirmation"] = *payload.VFSConfirmation
	}
	if payload.ErrorMessage != nil {
		updates["error_message"] = *payload.ErrorMessage
	}
	if payload.ErrorStage != nil {
		updates["error_stage"] = *payload.ErrorStage
	}

	// started_at is stamped once, on the first running report; the bot may
	// report running more than once.
	if status == types.JobStatusRunning {
		job, err := s.jobs.GetByID(ctx, nil, payload.JobID)
		if err == nil && job != nil && job.StartedAt == nil {
			updates["started_at"] = now
		}
	}
	if types.JobStatusTerminal(status) {
		updates["completed_at"] = now
	}

	if err := s.jobs.UpdateFields(ctx, nil, payload.JobID, updates); err != nil {
		s.log.Error("Webhook update failed", "job_id", payload.JobID, "error", err)
		return err
	}
	if status == "" {
		status = "none"
	}
	observability.WebhookUpdates.WithLabelValues(status).Inc()
	return nil
}
