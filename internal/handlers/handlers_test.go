package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/services"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAutomationService struct {
	mu          sync.Mutex
	createJob   *types.AutomationJob
	createErr   error
	getJob      *types.AutomationJob
	getErr      error
	cancelErr   error
	applyErr    error
	lastInput   services.CreateJobInput
	lastPayload services.WebhookPayload
	cancelledID uuid.UUID
}

func (f *fakeAutomationService) Create(_ context.Context, input services.CreateJobInput) (*types.AutomationJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInput = input
	return f.createJob, f.createErr
}

func (f *fakeAutomationService) Get(_ context.Context, _ uuid.UUID) (*types.AutomationJob, error) {
	return f.getJob, f.getErr
}

func (f *fakeAutomationService) Cancel(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelledID = id
	return f.cancelErr
}

func (f *fakeAutomationService) ApplyWebhook(_ context.Context, payload services.WebhookPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPayload = payload
	return f.applyErr
}

type fakeDocumentService struct {
	called chan struct{}

	mu            sync.Mutex
	applicationID int64
	sharedHotelID *uuid.UUID
}

func (f *fakeDocumentService) GenerateForApplication(_ context.Context, applicationID int64, sharedHotelID *uuid.UUID) {
	f.mu.Lock()
	f.applicationID = applicationID
	f.sharedHotelID = sharedHotelID
	f.mu.Unlock()
	if f.called != nil {
		close(f.called)
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error envelope in %q", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
