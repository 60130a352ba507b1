package types

import (
	"time"

	"gorm.io/datatypes"
)

// Application rows are owned by the admin CRUD surface; this service only
// reads them.
type Application struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingCode    string         `gorm:"column:tracking_code;index" json:"tracking_code"`
	FullName        string         `gorm:"column:full_name" json:"full_name"`
	IDNumber        string         `gorm:"column:id_number" json:"id_number"`
	DateOfBirth     *time.Time     `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Phone           string         `gorm:"column:phone" json:"phone"`
	Email           string         `gorm:"column:email" json:"email"`
	PassportNo      string         `gorm:"column:passport_no" json:"passport_no"`
	PassportExpiry  *time.Time     `gorm:"column:passport_expiry" json:"passport_expiry,omitempty"`
	VisaStatus      string         `gorm:"column:visa_status;index" json:"visa_status"`
	VisaType        string         `gorm:"column:visa_type;index" json:"visa_type"`
	Country         string         `gorm:"column:country;index" json:"country"`
	AppointmentDate *time.Time     `gorm:"column:appointment_date" json:"appointment_date,omitempty"`
	AppointmentTime string         `gorm:"column:appointment_time" json:"appointment_time"`
	PickupDate      *time.Time     `gorm:"column:pickup_date" json:"pickup_date,omitempty"`
	TravelDate      *time.Time     `gorm:"column:travel_date" json:"travel_date,omitempty"`
	ConsulateAppNo  string         `gorm:"column:consulate_app_no" json:"consulate_app_no"`
	ConsulateOffice string         `gorm:"column:consulate_office" json:"consulate_office"`
	Source          string         `gorm:"column:source" json:"source"`
	ConsulateFee    float64        `gorm:"column:consulate_fee" json:"consulate_fee"`
	ServiceFee      float64        `gorm:"column:service_fee" json:"service_fee"`
	Currency        string         `gorm:"column:currency" json:"currency"`
	GroupID         *int64         `gorm:"column:group_id;index" json:"group_id,omitempty"`
	IsDeleted       bool           `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
	CustomFields    datatypes.JSON `gorm:"column:custom_fields" json:"custom_fields"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }
