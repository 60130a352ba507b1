package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bkoseoglu/visadesk-backend/internal/clients/pdfservice"
	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/repos"
	"github.com/bkoseoglu/visadesk-backend/internal/storage"
)

var (
	ErrHotelTemplateNotFound = errors.New("hotel template not found")
	ErrInvalidBookingDates   = errors.New("checkout_date must be after checkin_date")
)

type ManualBookingInput struct {
	HotelID            uuid.UUID `json:"hotel_id"`
	GuestName          string    `json:"guest_name"`
	ConfirmationNumber string    `json:"confirmation_number"`
	PinCode            string    `json:"pin_code"`
	CheckinDate        string    `json:"checkin_date"`
	CheckoutDate       string    `json:"checkout_date"`
	NumGuests          int       `json:"num_guests"`
	RefundAmountTL     float64   `json:"refund_amount_tl"`
	PriceTotalTL       float64   `json:"price_total_tl"`
	PriceTotalDKK      float64   `json:"price_total_dkk"`
}

// BookingService renders one-off booking PDFs with operator-chosen dates
// and pricing, unlike the automatic path which derives everything from the
// application.
type BookingService interface {
	GenerateManual(ctx context.Context, input ManualBookingInput) ([]byte, error)
}

type bookingService struct {
	log    *logger.Logger
	hotels repos.BookingHotelRepo
	pdf    pdfservice.Client
	store  storage.ObjectStore
}

func NewBookingService(baseLog *logger.Logger, hotels repos.BookingHotelRepo, pdf pdfservice.Client, store storage.ObjectStore) BookingService {
	return &bookingService{
		log:    baseLog.With("service", "BookingService"),
		hotels: hotels,
		pdf:    pdf,
		store:  store,
	}
}

func (s *bookingService) GenerateManual(ctx context.Context, input ManualBookingInput) ([]byte, error) {
	checkin, err := time.Parse("2006-01-02", input.CheckinDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checkin_date %q", ErrInvalidBookingDates, input.CheckinDate)
	}
	checkout, err := time.Parse("2006-01-02", input.CheckoutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checkout_date %q", ErrInvalidBookingDates, input.CheckoutDate)
	}
	if !checkout.After(checkin) {
		return nil, ErrInvalidBookingDates
	}

	hotel, err := s.hotels.GetByID(ctx, nil, input.HotelID)
	if err != nil {
		return nil, fmt.Errorf("fetch hotel: %w", err)
	}
	if hotel == nil || hotel.TemplatePath == "" {
		return nil, ErrHotelTemplateNotFound
	}

	return s.pdf.GenerateBooking(ctx, pdfservice.BookingRequest{
		TemplateURL:        s.store.PublicURL(storage.BucketCategoryBookingTemplates, hotel.TemplatePath),
		GuestName:          input.GuestName,
		CheckinDate:        input.CheckinDate,
		CheckoutDate:       input.CheckoutDate,
		ConfirmationNumber: input.ConfirmationNumber,
		PinCode:            input.PinCode,
		NumGuests:          input.NumGuests,
		RefundAmountTL:     input.RefundAmountTL,
		PriceTotalTL:       input.PriceTotalTL,
		PriceTotalDKK:      input.PriceTotalDKK,
		EditConfig:         json.RawMessage(hotel.EditConfig),
	})
}
