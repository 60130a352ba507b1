package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

func newWebhookRouter(svc *fakeAutomationService, secret string) *gin.Engine {
	h := NewWebhookHandler(logger.NewNop(), svc, secret)
	r := gin.New()
	r.POST("/api/automation/webhook", h.Handle)
	return r
}

func TestWebhookRejectsBadAuth(t *testing.T) {
	jobID := uuid.New()
	body := fmt.Sprintf(`{"job_id":%q,"status":"running"}`, jobID)

	cases := []struct {
		name   string
		secret string
		header string
	}{
		{name: "missing_header", secret: "hook-secret", header: ""},
		{name: "wrong_token", secret: "hook-secret", header: "Bearer nope"},
		{name: "no_secret_configured", secret: "", header: "Bearer hook-secret"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAutomationService{}
			router := newWebhookRouter(svc, tc.secret)
			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			rec := performJSON(t, router, http.MethodPost, "/api/automation/webhook", body, headers)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status: want=401 got=%d", rec.Code)
			}
			if svc.lastPayload.JobID != uuid.Nil {
				t.Fatalf("payload applied despite failed auth")
			}
		})
	}
}

func TestWebhookRejectsMissingJobID(t *testing.T) {
	svc := &fakeAutomationService{}
	router := newWebhookRouter(svc, "hook-secret")

	rec := performJSON(t, router, http.MethodPost, "/api/automation/webhook",
		`{"status":"running"}`, map[string]string{"Authorization": "Bearer hook-secret"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", rec.Code)
	}
	if errorCode(t, rec) != "missing_job_id" {
		t.Fatalf("error code: got=%s", errorCode(t, rec))
	}
}

func TestWebhookForwardsPayload(t *testing.T) {
	svc := &fakeAutomationService{}
	router := newWebhookRouter(svc, "hook-secret")

	jobID := uuid.New()
	body := fmt.Sprintf(`{"job_id":%q,"status":"running","stage_progress":55,"mfa_case_number":"MFA-1"}`, jobID)
	rec := performJSON(t, router, http.MethodPost, "/api/automation/webhook", body,
		map[string]string{"Authorization": "Bearer hook-secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}

	payload := svc.lastPayload
	if payload.JobID != jobID {
		t.Fatalf("job id: want=%s got=%s", jobID, payload.JobID)
	}
	if payload.Status == nil || *payload.Status != "running" {
		t.Fatalf("status field: got=%v", payload.Status)
	}
	if payload.StageProgress == nil || *payload.StageProgress != 55 {
		t.Fatalf("stage_progress: got=%v", payload.StageProgress)
	}
	if payload.MFACaseNumber == nil || *payload.MFACaseNumber != "MFA-1" {
		t.Fatalf("mfa_case_number: got=%v", payload.MFACaseNumber)
	}
	if payload.CurrentStage != nil {
		t.Fatalf("absent field decoded as non-nil: %v", payload.CurrentStage)
	}

	resp := decodeBody(t, rec)
	if resp["success"] != true {
		t.Fatalf("response: got=%v", resp)
	}
}

func TestWebhookUpdateFailureReturns500(t *testing.T) {
	svc := &fakeAutomationService{applyErr: fmt.Errorf("db down")}
	router := newWebhookRouter(svc, "hook-secret")

	body := fmt.Sprintf(`{"job_id":%q,"status":"completed"}`, uuid.New())
	rec := performJSON(t, router, http.MethodPost, "/api/automation/webhook", body,
		map[string]string{"Authorization": "Bearer hook-secret"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d", rec.Code)
	}
}
