package types

import (
	"time"

	"github.com/google/uuid"
)

// LetterExample is a reference letter used to steer letter-of-intent drafts.
type LetterExample struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Country       string    `gorm:"column:country;index" json:"country"`
	VisaType      string    `gorm:"column:visa_type;index" json:"visa_type"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	ExtractedText string    `gorm:"column:extracted_text" json:"extracted_text"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (LetterExample) TableName() string { return "letter_intent_examples" }
