package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/pdfservice"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/services"
)

type BookingHandler struct {
	log     *logger.Logger
	booking services.BookingService
}

func NewBookingHandler(log *logger.Logger, booking services.BookingService) *BookingHandler {
	return &BookingHandler{
		log:     log.With("handler", "BookingHandler"),
		booking: booking,
	}
}

// POST /api/bookings/generate
func (h *BookingHandler) Generate(c *gin.Context) {
	var input services.ManualBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	pdf, err := h.booking.GenerateManual(c.Request.Context(), input)
	if err != nil {
		var httpErr *pdfservice.HTTPError
		switch {
		case errors.Is(err, services.ErrInvalidBookingDates):
			RespondError(c, http.StatusBadRequest, "invalid_dates", err)
		case errors.Is(err, services.ErrHotelTemplateNotFound):
			RespondError(c, http.StatusNotFound, "hotel_template_not_found", err)
		case errors.As(err, &httpErr):
			RespondError(c, http.StatusBadGateway, "pdf_service_error", err)
		default:
			RespondError(c, http.StatusInternalServerError, "booking_generation_failed", err)
		}
		return
	}

	RespondOK(c, gin.H{"pdf_base64": base64.StdEncoding.EncodeToString(pdf)})
}
