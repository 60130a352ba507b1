package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

func newDocumentsRouter(svc *fakeDocumentService) *gin.Engine {
	h := NewDocumentsHandler(logger.NewNop(), svc)
	r := gin.New()
	r.POST("/api/generate-documents", h.Generate)
	return r
}

func TestGenerateDocumentsStartsGeneration(t *testing.T) {
	svc := &fakeDocumentService{called: make(chan struct{})}
	router := newDocumentsRouter(svc)
	hotelID := uuid.New()

	rec := performJSON(t, router, http.MethodPost, "/api/generate-documents",
		`{"application_id":9,"shared_hotel_id":"`+hotelID.String()+`"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "started" {
		t.Fatalf("response: got=%v", resp)
	}

	select {
	case <-svc.called:
	case <-time.After(time.Second):
		t.Fatalf("generation was not started")
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.applicationID != 9 {
		t.Fatalf("application id: want=9 got=%d", svc.applicationID)
	}
	if svc.sharedHotelID == nil || *svc.sharedHotelID != hotelID {
		t.Fatalf("shared hotel id: got=%v", svc.sharedHotelID)
	}
}

func TestGenerateDocumentsValidation(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "missing_application_id", body: `{}`, wantCode: "invalid_application_id"},
		{name: "negative_application_id", body: `{"application_id":-1}`, wantCode: "invalid_application_id"},
		{name: "bad_hotel_id", body: `{"application_id":3,"shared_hotel_id":"nope"}`, wantCode: "invalid_hotel_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeDocumentService{}
			router := newDocumentsRouter(svc)
			rec := performJSON(t, router, http.MethodPost, "/api/generate-documents", tc.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: want=400 got=%d", rec.Code)
			}
			if got := errorCode(t, rec); got != tc.wantCode {
				t.Fatalf("error code: want=%s got=%s", tc.wantCode, got)
			}
		})
	}
}
