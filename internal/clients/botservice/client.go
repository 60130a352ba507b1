package botservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

// Client dispatches automation jobs to the external browser-automation bot.
// The bot acknowledges with a 2xx and later reports progress through the
// automation webhook.
type Client interface {
	Dispatch(ctx context.Context, payload JobPayload) error
}

type HotelData struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	PostalCode       string `json:"postalCode"`
	City             string `json:"city"`
	Country          string `json:"country"`
	Email            string `json:"email"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	PhoneNumber      string `json:"phoneNumber"`
}

type JobPayload struct {
	JobID           uuid.UUID      `json:"job_id"`
	ApplicationID   int64          `json:"application_id"`
	Country         string         `json:"country"`
	CallbackURL     string         `json:"callback_url"`
	WebhookSecret   string         `json:"webhook_secret"`
	Stages          []string       `json:"stages"`
	DryRun          bool           `json:"dry_run"`
	Headless        bool           `json:"headless"`
	ApplicationData map[string]any `json:"application_data"`
	HotelData       *HotelData     `json:"hotel_data"`
}

// DispatchError carries the bot service response body so it can be recorded
// on the job row and surfaced as a 502.
type DispatchError struct {
	StatusCode int
	Body       string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("bot service http %d: %s", e.StatusCode, e.Body)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(log *logger.Logger, baseURL, apiKey string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &client{
		log:        log.With("client", "BotService"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *client) Dispatch(ctx context.Context, payload JobPayload) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &DispatchError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return nil
}
