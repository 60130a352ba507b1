package pdfservice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

// Client talks to the PDF rendering sidecar. The sidecar exposes two
// endpoints: /generate-booking fills a hotel booking template, /html-to-pdf
// converts raw HTML.
type Client interface {
	GenerateBooking(ctx context.Context, req BookingRequest) ([]byte, error)
	HTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type BookingRequest struct {
	TemplateURL        string          `json:"template_url"`
	GuestName          string          `json:"guest_name"`
	CheckinDate        string          `json:"checkin_date"`
	CheckoutDate       string          `json:"checkout_date"`
	ConfirmationNumber string          `json:"confirmation_number,omitempty"`
	PinCode            string          `json:"pin_code,omitempty"`
	NumGuests          int             `json:"num_guests,omitempty"`
	RefundAmountTL     float64         `json:"refund_amount_tl,omitempty"`
	PriceTotalTL       float64         `json:"price_total_tl,omitempty"`
	PriceTotalDKK      float64         `json:"price_total_dkk,omitempty"`
	EditConfig         json.RawMessage `json:"edit_config"`
}

type renderResponse struct {
	Status    string `json:"status"`
	PDFBase64 string `json:"pdf_base64"`
	Error     string `json:"error"`
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("pdf service http %d: %s", e.StatusCode, e.Body)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func New(log *logger.Logger, baseURL string, timeout time.Duration) Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &client{
		log:        log.With("client", "PDFService"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *client) GenerateBooking(ctx context.Context, req BookingRequest) ([]byte, error) {
	if len(req.EditConfig) == 0 {
		req.EditConfig = json.RawMessage(`{}`)
	}
	return c.render(ctx, "/generate-booking", req)
}

func (c *client) HTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	return c.render(ctx, "/html-to-pdf", map[string]string{"html": html})
}

func (c *client) render(ctx context.Context, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out renderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode pdf service response: %w", err)
	}
	if out.Status != "success" {
		if out.Error != "" {
			return nil, fmt.Errorf("pdf generation failed: %s", out.Error)
		}
		return nil, fmt.Errorf("pdf generation failed with status %q", out.Status)
	}
	pdf, err := base64.StdEncoding.DecodeString(out.PDFBase64)
	if err != nil {
		return nil, fmt.Errorf("decode pdf payload: %w", err)
	}
	return pdf, nil
}
