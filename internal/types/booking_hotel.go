package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	HotelTypeIndividual = "individual"
	HotelTypeGroup      = "group"
)

type BookingHotel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type             string         `gorm:"column:type;not null;index" json:"type"` // individual|group
	Country          string         `gorm:"column:country;index" json:"country"`
	IsActive         bool           `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	Name             string         `gorm:"column:name;not null" json:"name"`
	Address          string         `gorm:"column:address" json:"address"`
	PostalCode       string         `gorm:"column:postal_code" json:"postal_code"`
	City             string         `gorm:"column:city" json:"city"`
	Email            string         `gorm:"column:email" json:"email"`
	PhoneCountryCode string         `gorm:"column:phone_country_code" json:"phone_country_code"`
	Phone            string         `gorm:"column:phone" json:"phone"`
	TemplatePath     string         `gorm:"column:template_path;not null" json:"template_path"`
	EditConfig       datatypes.JSON `gorm:"column:edit_config" json:"edit_config"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (BookingHotel) TableName() string { return "booking_hotels" }
