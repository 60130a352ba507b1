package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/gemini"
	"github.com/bkoseoglu/visadesk-backend/internal/clients/pdfservice"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/observability"
	"github.com/bkoseoglu/visadesk-backend/internal/repos"
	"github.com/bkoseoglu/visadesk-backend/internal/storage"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

const defaultStayDays = 7

// DocumentService generates the booking confirmation PDF and the letter of
// intent for an application. Generation is fire-and-forget: callers get no
// result, outcomes land on generated_documents rows.
type DocumentService interface {
	// GenerateForApplication runs both generators. sharedHotelID forces a
	// specific hotel, used when a group of applications must reference the
	// same booking.
	GenerateForApplication(ctx context.Context, applicationID int64, sharedHotelID *uuid.UUID)
}

type documentService struct {
	log      *logger.Logger
	apps     repos.ApplicationRepo
	hotels   repos.BookingHotelRepo
	examples repos.LetterExampleRepo
	settings repos.SettingRepo
	docs     repos.GeneratedDocumentRepo
	pdf      pdfservice.Client
	llm      gemini.Client
	store    storage.ObjectStore
	selector HotelSelector
}

func NewDocumentService(
	baseLog *logger.Logger,
	apps repos.ApplicationRepo,
	hotels repos.BookingHotelRepo,
	examples repos.LetterExampleRepo,
	settings repos.SettingRepo,
	docs repos.GeneratedDocumentRepo,
	pdf pdfservice.Client,
	llm gemini.Client,
	store storage.ObjectStore,
	selector HotelSelector,
) DocumentService {
	return &documentService{
		log:      baseLog.With("service", "DocumentService"),
		apps:     apps,
		hotels:   hotels,
		examples: examples,
		settings: settings,
		docs:     docs,
		pdf:      pdf,
		llm:      llm,
		store:    store,
		selector: selector,
	}
}

func (s *documentService) GenerateForApplication(ctx context.Context, applicationID int64, sharedHotelID *uuid.UUID) {
	app, err := s.apps.GetByID(ctx, nil, applicationID)
	if err != nil {
		s.log.Error("Failed to fetch application", "application_id", applicationID, "error", err)
		return
	}
	if app == nil {
		s.log.Error("Application not found", "application_id", applicationID)
		return
	}

	hotelType := types.HotelTypeIndividual
	if app.GroupID != nil {
		hotelType = types.HotelTypeGroup
	}

	// Both generators run concurrently and contain their own failures, so
	// one failing never aborts the other.
	var g errgroup.Group
	g.Go(func() error {
		s.generateBookingPDF(ctx, app, hotelType, sharedHotelID)
		return nil
	})
	g.Go(func() error {
		s.generateLetterOfIntent(ctx, app)
		return nil
	})
	_ = g.Wait()
}

func (s *documentService) generateBookingPDF(ctx context.Context, app *types.Application, hotelType string, sharedHotelID *uuid.UUID) {
	hotel, err := s.selectHotel(ctx, app, hotelType, sharedHotelID)
	if err != nil {
		s.log.Error("Hotel selection failed", "application_id", app.ID, "error", err)
		return
	}
	if hotel == nil {
		// No hotel available is not an application error: skip quietly,
		// no record is created.
		s.log.Warn("No active hotels available, skipping booking PDF", "application_id", app.ID, "hotel_type", hotelType)
		return
	}

	hotelID := hotel.ID
	doc := &types.GeneratedDocument{
		ApplicationID: app.ID,
		Type:          types.DocumentTypeBookingPDF,
		Status:        types.DocumentStatusGenerating,
		HotelID:       &hotelID,
		GeneratedBy:   "auto",
	}
	created, err := s.docs.CreateIfAbsent(ctx, nil, doc)
	if err != nil {
		s.log.Error("Failed to create generated_documents row", "application_id", app.ID, "error", err)
		return
	}
	if !created {
		s.log.Warn("Booking PDF generation already in flight", "application_id", app.ID)
		return
	}

	if err := s.renderAndStoreBooking(ctx, app, hotel, doc); err != nil {
		s.log.Error("Booking PDF generation failed", "application_id", app.ID, "error", err)
		observability.DocumentsGenerated.WithLabelValues(types.DocumentTypeBookingPDF, types.DocumentStatusError).Inc()
		// Best-effort: the row keeps the error, but a failing update here
		// is not escalated further.
		if uerr := s.docs.MarkErrorInFlight(ctx, nil, app.ID, types.DocumentTypeBookingPDF, err.Error()); uerr != nil {
			s.log.Error("Failed to record booking error", "application_id", app.ID, "error", uerr)
		}
		return
	}
	observability.DocumentsGenerated.WithLabelValues(types.DocumentTypeBookingPDF, types.DocumentStatusReady).Inc()
	s.log.Info("Booking PDF generated", "application_id", app.ID, "hotel_id", hotel.ID)
}

func (s *documentService) selectHotel(ctx context.Context, app *types.Application, hotelType string, sharedHotelID *uuid.UUID) (*types.BookingHotel, error) {
	if sharedHotelID != nil {
		hotel, err := s.hotels.GetByID(ctx, nil, *sharedHotelID)
		if err != nil {
			return nil, err
		}
		if hotel == nil {
			s.log.Warn("Shared hotel not found", "hotel_id", *sharedHotelID)
		}
		return hotel, nil
	}

	candidates, err := s.hotels.ListActive(ctx, nil, hotelType, app.Country)
	if err != nil {
		return nil, err
	}
	// Fallback: no country-matched hotels, try any country.
	if len(candidates) == 0 && app.Country != "" {
		candidates, err = s.hotels.ListActive(ctx, nil, hotelType, "")
		if err != nil {
			return nil, err
		}
	}
	return s.selector.Pick(candidates), nil
}

func (s *documentService) renderAndStoreBooking(ctx context.Context, app *types.Application, hotel *types.BookingHotel, doc *types.GeneratedDocument) error {
	guestName := app.FullName
	if guestName == "" {
		guestName = "GUEST"
	}

	checkin := s.resolveCheckinDate(app)
	checkinDate, err := time.Parse("2006-01-02", checkin)
	if err != nil {
		return fmt.Errorf("invalid check-in date %q: %w", checkin, err)
	}
	checkout := checkinDate.AddDate(0, 0, defaultStayDays).Format("2006-01-02")

	pdf, err := s.pdf.GenerateBooking(ctx, pdfservice.BookingRequest{
		TemplateURL:  s.store.PublicURL(storage.BucketCategoryBookingTemplates, hotel.TemplatePath),
		GuestName:    guestName,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		EditConfig:   json.RawMessage(hotel.EditConfig),
	})
	if err != nil {
		return err
	}

	storagePath := fmt.Sprintf("%d/booking.pdf", app.ID)
	if err := s.store.Upload(ctx, storage.BucketCategoryGeneratedDocs, storagePath, pdf, "application/pdf"); err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}

	return s.docs.UpdateFields(ctx, nil, doc.ID, map[string]interface{}{
		"status":    types.DocumentStatusReady,
		"file_path": storagePath,
	})
}

// resolveCheckinDate prefers the application travel date, then a
// custom-field override, then a week from now.
func (s *documentService) resolveCheckinDate(app *types.Application) string {
	if app.TravelDate != nil {
		return app.TravelDate.Format("2006-01-02")
	}
	if len(app.CustomFields) > 0 {
		var cf map[string]any
		if err := json.Unmarshal(app.CustomFields, &cf); err == nil {
			if v, ok := cf["travel_date"].(string); ok && v != "" {
				return v
			}
		}
	}
	return time.Now().AddDate(0, 0, defaultStayDays).Format("2006-01-02")
}

func (s *documentService) generateLetterOfIntent(ctx context.Context, app *types.Application) {
	doc := &types.GeneratedDocument{
		ApplicationID: app.ID,
		Type:          types.DocumentTypeLetterOfIntent,
		Status:        types.DocumentStatusGenerating,
		GeneratedBy:   "auto",
	}
	created, err := s.docs.CreateIfAbsent(ctx, nil, doc)
	if err != nil {
		s.log.Error("Failed to create generated_documents row", "application_id", app.ID, "error", err)
		return
	}
	if !created {
		s.log.Warn("Letter generation already in flight", "application_id", app.ID)
		return
	}

	if err := s.draftAndStoreLetter(ctx, app, doc); err != nil {
		s.log.Error("Letter generation failed", "application_id", app.ID, "error", err)
		observability.DocumentsGenerated.WithLabelValues(types.DocumentTypeLetterOfIntent, types.DocumentStatusError).Inc()
		if uerr := s.docs.MarkErrorInFlight(ctx, nil, app.ID, types.DocumentTypeLetterOfIntent, err.Error()); uerr != nil {
			s.log.Error("Failed to record letter error", "application_id", app.ID, "error", uerr)
		}
		return
	}
	observability.DocumentsGenerated.WithLabelValues(types.DocumentTypeLetterOfIntent, types.DocumentStatusReady).Inc()
	s.log.Info("Letter of intent generated", "application_id", app.ID)
}

func (s *documentService) draftAndStoreLetter(ctx context.Context, app *types.Application, doc *types.GeneratedDocument) error {
	examples, err := s.collectExamples(ctx, app)
	if err != nil {
		return err
	}

	systemPrompt := s.letterSystemPrompt(ctx)
	prompt := BuildLetterPrompt(systemPrompt, app, examples)

	html, err := s.llm.GenerateText(ctx, prompt)
	if err != nil {
		return err
	}
	if html == "" {
		return fmt.Errorf("empty response from language service")
	}

	// The PDF is a nice-to-have: the stored HTML already counts as success,
	// so conversion failure only costs the file_path.
	var filePath any
	if pdf, perr := s.pdf.HTMLToPDF(ctx, html); perr != nil {
		s.log.Warn("HTML-to-PDF conversion failed, saving HTML only", "application_id", app.ID, "error", perr)
	} else {
		storagePath := fmt.Sprintf("%d/letter-of-intent.pdf", app.ID)
		if uerr := s.store.Upload(ctx, storage.BucketCategoryGeneratedDocs, storagePath, pdf, "application/pdf"); uerr != nil {
			s.log.Warn("Letter PDF upload failed, saving HTML only", "application_id", app.ID, "error", uerr)
		} else {
			filePath = storagePath
		}
	}

	return s.docs.UpdateFields(ctx, nil, doc.ID, map[string]interface{}{
		"status":    types.DocumentStatusReady,
		"content":   html,
		"file_path": filePath,
	})
}

// collectExamples prefers examples matching the application's country and
// visa type, falling back to any active examples. Relevance first, then
// availability.
func (s *documentService) collectExamples(ctx context.Context, app *types.Application) ([]string, error) {
	var rows []*types.LetterExample
	var err error
	if app.Country != "" && app.VisaType != "" {
		rows, err = s.examples.ListActiveMatching(ctx, nil, app.Country, app.VisaType, 3)
		if err != nil {
			return nil, err
		}
	}
	if len(rows) == 0 {
		rows, err = s.examples.ListActiveAny(ctx, nil, 3)
		if err != nil {
			return nil, err
		}
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ExtractedText != "" {
			out = append(out, row.ExtractedText)
		}
	}
	return out, nil
}

func (s *documentService) letterSystemPrompt(ctx context.Context) string {
	setting, err := s.settings.Get(ctx, nil, types.SettingKeyLetterIntentConfig)
	if err != nil || setting == nil {
		return DefaultLetterSystemPrompt
	}
	var cfg struct {
		SystemPrompt string `json:"systemPrompt"`
	}
	if err := json.Unmarshal(setting.Value, &cfg); err != nil || cfg.SystemPrompt == "" {
		return DefaultLetterSystemPrompt
	}
	return cfg.SystemPrompt
}
