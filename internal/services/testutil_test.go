package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/pdfservice"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Application{},
		&types.BookingHotel{},
		&types.LetterExample{},
		&types.Setting{},
		&types.GeneratedDocument{},
		&types.AutomationJob{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedApplication(t *testing.T, db *gorm.DB, app *types.Application) *types.Application {
	t.Helper()
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return app
}

func seedHotel(t *testing.T, db *gorm.DB, hotel *types.BookingHotel) *types.BookingHotel {
	t.Helper()
	if hotel.ID == uuid.Nil {
		hotel.ID = uuid.New()
	}
	if hotel.Name == "" {
		hotel.Name = "Hotel " + hotel.ID.String()[:8]
	}
	if hotel.TemplatePath == "" {
		hotel.TemplatePath = "templates/" + hotel.ID.String() + ".pdf"
	}
	if err := db.Create(hotel).Error; err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	return hotel
}

func seedLetterExample(t *testing.T, db *gorm.DB, example *types.LetterExample) *types.LetterExample {
	t.Helper()
	if example.ID == uuid.Nil {
		example.ID = uuid.New()
	}
	if err := db.Create(example).Error; err != nil {
		t.Fatalf("seed letter example: %v", err)
	}
	return example
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return &parsed
}

// fakePDFClient stands in for the rendering sidecar.
type fakePDFClient struct {
	mu          sync.Mutex
	bookingReqs []pdfservice.BookingRequest
	bookingPDF  []byte
	bookingErr  error
	htmlCalls   int
	htmlPDF     []byte
	htmlErr     error
}

func (f *fakePDFClient) GenerateBooking(_ context.Context, req pdfservice.BookingRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookingReqs = append(f.bookingReqs, req)
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	if f.bookingPDF != nil {
		return f.bookingPDF, nil
	}
	return []byte("%PDF booking"), nil
}

func (f *fakePDFClient) HTMLToPDF(_ context.Context, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.htmlCalls++
	if f.htmlErr != nil {
		return nil, f.htmlErr
	}
	if f.htmlPDF != nil {
		return f.htmlPDF, nil
	}
	return []byte("%PDF letter"), nil
}

func (f *fakePDFClient) bookingCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookingReqs)
}

func (f *fakePDFClient) lastBookingReq(t *testing.T) pdfservice.BookingRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bookingReqs) == 0 {
		t.Fatalf("no booking requests recorded")
	}
	return f.bookingReqs[len(f.bookingReqs)-1]
}

// fakeLLMClient stands in for the generative-language API.
type fakeLLMClient struct {
	mu      sync.Mutex
	prompts []string
	text    string
	err     error
}

func (f *fakeLLMClient) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeLLMClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeLLMClient) lastPrompt(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		t.Fatalf("no prompts recorded")
	}
	return f.prompts[len(f.prompts)-1]
}
