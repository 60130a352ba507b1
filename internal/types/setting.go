package types

import (
	"time"

	"gorm.io/datatypes"
)

type Setting struct {
	Key       string         `gorm:"column:key;primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"column:value" json:"value"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

// SettingKeyLetterIntentConfig holds {"systemPrompt": "..."} for the
// letter-of-intent generator.
const SettingKeyLetterIntentConfig = "letter_intent_config"
