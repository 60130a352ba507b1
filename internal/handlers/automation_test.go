package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/botservice"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

func newAutomationRouter(svc *fakeAutomationService) *gin.Engine {
	h := NewAutomationHandler(logger.NewNop(), svc)
	r := gin.New()
	r.POST("/api/automation/jobs", h.CreateJob)
	r.GET("/api/automation/jobs/:id", h.GetJob)
	r.PATCH("/api/automation/jobs/:id", h.PatchJob)
	return r
}

func TestCreateJobSuccess(t *testing.T) {
	job := &types.AutomationJob{ID: uuid.New(), Status: types.JobStatusQueued}
	svc := &fakeAutomationService{createJob: job}
	router := newAutomationRouter(svc)

	rec := performJSON(t, router, http.MethodPost, "/api/automation/jobs",
		`{"application_id":12,"stages":["mfa","vfs"]}`,
		map[string]string{"X-User-ID": "operator-7"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}

	if svc.lastInput.ApplicationID != 12 {
		t.Fatalf("application id: got=%d", svc.lastInput.ApplicationID)
	}
	if !svc.lastInput.Headless {
		t.Fatalf("headless default: want=true")
	}
	if svc.lastInput.TriggeredBy != "operator-7" {
		t.Fatalf("triggered_by: got=%s", svc.lastInput.TriggeredBy)
	}
	if len(svc.lastInput.Stages) != 2 || svc.lastInput.Stages[1] != "vfs" {
		t.Fatalf("stages: got=%v", svc.lastInput.Stages)
	}

	resp := decodeBody(t, rec)
	if resp["job_id"] != job.ID.String() {
		t.Fatalf("job_id: got=%v", resp["job_id"])
	}
	if resp["status"] != types.JobStatusQueued {
		t.Fatalf("status field: got=%v", resp["status"])
	}
	if resp["message"] != "Automation job created" {
		t.Fatalf("message: got=%v", resp["message"])
	}
}

func TestCreateJobDefaultsTriggeredBy(t *testing.T) {
	svc := &fakeAutomationService{createJob: &types.AutomationJob{ID: uuid.New(), Status: types.JobStatusQueued}}
	router := newAutomationRouter(svc)

	rec := performJSON(t, router, http.MethodPost, "/api/automation/jobs",
		`{"application_id":5,"headless":false}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if svc.lastInput.TriggeredBy != "system" {
		t.Fatalf("triggered_by: want=system got=%s", svc.lastInput.TriggeredBy)
	}
	if svc.lastInput.Headless {
		t.Fatalf("headless override: want=false")
	}
}

func TestCreateJobErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "export_failed",
			err:        fmt.Errorf("%w: boom", services.ErrExportFailed),
			wantStatus: http.StatusBadRequest,
			wantCode:   "export_failed",
		},
		{
			name:       "not_configured",
			err:        services.ErrBotNotConfigured,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "bot_not_configured",
		},
		{
			name:       "bot_rejected",
			err:        &botservice.DispatchError{StatusCode: 503, Body: "queue full"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "bot_rejected_job",
		},
		{
			name:       "other",
			err:        fmt.Errorf("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "job_creation_failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAutomationService{createErr: tc.err}
			router := newAutomationRouter(svc)
			rec := performJSON(t, router, http.MethodPost, "/api/automation/jobs",
				`{"application_id":1}`, nil)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status: want=%d got=%d body=%s", tc.wantStatus, rec.Code, rec.Body.String())
			}
			if got := errorCode(t, rec); got != tc.wantCode {
				t.Fatalf("error code: want=%s got=%s", tc.wantCode, got)
			}
		})
	}
}

func TestCreateJobRejectsMissingApplicationID(t *testing.T) {
	svc := &fakeAutomationService{}
	router := newAutomationRouter(svc)

	rec := performJSON(t, router, http.MethodPost, "/api/automation/jobs", `{}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", rec.Code)
	}
	if errorCode(t, rec) != "missing_application_id" {
		t.Fatalf("error code: got=%s", errorCode(t, rec))
	}
}

func TestGetJob(t *testing.T) {
	job := &types.AutomationJob{ID: uuid.New(), Status: types.JobStatusRunning}
	svc := &fakeAutomationService{getJob: job}
	router := newAutomationRouter(svc)

	rec := performJSON(t, router, http.MethodGet, "/api/automation/jobs/"+job.ID.String(), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["id"] != job.ID.String() {
		t.Fatalf("id: got=%v", resp["id"])
	}

	rec = performJSON(t, router, http.MethodGet, "/api/automation/jobs/not-a-uuid", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid id status: want=400 got=%d", rec.Code)
	}

	svc.getJob = nil
	rec = performJSON(t, router, http.MethodGet, "/api/automation/jobs/"+uuid.NewString(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing job status: want=404 got=%d", rec.Code)
	}
}

func TestPatchJobCancel(t *testing.T) {
	svc := &fakeAutomationService{}
	router := newAutomationRouter(svc)
	jobID := uuid.New()

	rec := performJSON(t, router, http.MethodPatch, "/api/automation/jobs/"+jobID.String(),
		`{"action":"cancel"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.cancelledID != jobID {
		t.Fatalf("cancelled id: want=%s got=%s", jobID, svc.cancelledID)
	}

	rec = performJSON(t, router, http.MethodPatch, "/api/automation/jobs/"+jobID.String(),
		`{"action":"pause"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown action status: want=400 got=%d", rec.Code)
	}
	if errorCode(t, rec) != "unknown_action" {
		t.Fatalf("error code: got=%s", errorCode(t, rec))
	}
}
