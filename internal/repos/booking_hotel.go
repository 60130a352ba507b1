package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

type BookingHotelRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BookingHotel, error)
	// ListActive returns active hotels of the given type. An empty country
	// means no country filter.
	ListActive(ctx context.Context, tx *gorm.DB, hotelType string, country string) ([]*types.BookingHotel, error)
}

type bookingHotelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookingHotelRepo(db *gorm.DB, baseLog *logger.Logger) BookingHotelRepo {
	return &bookingHotelRepo{
		db:  db,
		log: baseLog.With("repo", "BookingHotelRepo"),
	}
}

func (r *bookingHotelRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BookingHotel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var hotel types.BookingHotel
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&hotel).Error
	if err != nil {
		return nil, err
	}
	if hotel.ID == uuid.Nil {
		return nil, nil
	}
	return &hotel, nil
}

func (r *bookingHotelRepo) ListActive(ctx context.Context, tx *gorm.DB, hotelType string, country string) ([]*types.BookingHotel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Where("type = ? AND is_active = ?", hotelType, true)
	if country != "" {
		q = q.Where("country = ?", country)
	}
	var out []*types.BookingHotel
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
