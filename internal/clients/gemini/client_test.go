package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

func TestGenerateTextReturnsFirstCandidate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "<p>letter</p>"}}}},
			},
		})
	}))
	defer srv.Close()

	c := New(logger.NewNop(), "test-key", srv.URL, "gemini-2.5-flash", time.Second)
	got, err := c.GenerateText(context.Background(), "write a letter")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "<p>letter</p>" {
		t.Fatalf("text: got=%q", got)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Fatalf("path: got=%s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("key: got=%s", gotKey)
	}
	if _, ok := gotBody["generationConfig"]; !ok {
		t.Fatalf("generationConfig missing from request: %v", gotBody)
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := New(logger.NewNop(), "test-key", srv.URL, "", time.Second)
	got, err := c.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "" {
		t.Fatalf("text: want empty got=%q", got)
	}
}

func TestGenerateTextHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(logger.NewNop(), "test-key", srv.URL, "", time.Second)
	_, err := c.GenerateText(context.Background(), "prompt")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error type: got=%v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status code: got=%d", httpErr.StatusCode)
	}
	if !strings.Contains(httpErr.Body, "quota exceeded") {
		t.Fatalf("body: got=%q", httpErr.Body)
	}
}

func TestGenerateTextRequiresAPIKey(t *testing.T) {
	c := New(logger.NewNop(), "", "http://unused.local", "", time.Second)
	if _, err := c.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error without api key")
	}
}
