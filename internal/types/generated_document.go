package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentTypeBookingPDF     = "booking_pdf"
	DocumentTypeLetterOfIntent = "letter_of_intent"

	DocumentStatusGenerating = "generating"
	DocumentStatusReady      = "ready"
	DocumentStatusError      = "error"
)

// GeneratedDocument tracks one generation attempt for one application.
// Status moves generating -> ready or generating -> error and never back.
type GeneratedDocument struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID int64      `gorm:"column:application_id;not null;index" json:"application_id"`
	Type          string     `gorm:"column:type;not null;index" json:"type"`     // booking_pdf|letter_of_intent
	Status        string     `gorm:"column:status;not null;index" json:"status"` // generating|ready|error
	HotelID       *uuid.UUID `gorm:"column:hotel_id;type:uuid" json:"hotel_id,omitempty"`
	Content       *string    `gorm:"column:content" json:"content,omitempty"`
	FilePath      *string    `gorm:"column:file_path" json:"file_path,omitempty"`
	ErrorMessage  string     `gorm:"column:error_message" json:"error_message"`
	GeneratedBy   string     `gorm:"column:generated_by;not null;default:'auto'" json:"generated_by"`
	CreatedAt     time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

func (GeneratedDocument) TableName() string { return "generated_documents" }
