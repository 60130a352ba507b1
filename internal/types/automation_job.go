package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	JobStatusPending   = "pending"
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusCancelled = "cancelled"
)

// JobStatusTerminal reports whether a status is terminal. Terminal jobs are
// never transitioned again.
func JobStatusTerminal(status string) bool {
	switch status {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// AutomationJob is the local record of a browser-automation run delegated to
// the external bot service. After dispatch the row only advances through
// webhook callbacks.
type AutomationJob struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID   int64          `gorm:"column:application_id;not null;index" json:"application_id"`
	Country         string         `gorm:"column:country;not null" json:"country"`
	Status          string         `gorm:"column:status;not null;index" json:"status"` // pending|queued|running|completed|failed|cancelled
	CurrentStage    string         `gorm:"column:current_stage" json:"current_stage"`
	StageProgress   int            `gorm:"column:stage_progress;not null;default:0" json:"stage_progress"`
	StagesCompleted datatypes.JSON `gorm:"column:stages_completed" json:"stages_completed"`
	MFACaseNumber   *string        `gorm:"column:mfa_case_number" json:"mfa_case_number,omitempty"`
	VFSConfirmation *string        `gorm:"column:vfs_confirmation" json:"vfs_confirmation,omitempty"`
	ErrorMessage    string         `gorm:"column:error_message" json:"error_message"`
	ErrorStage      string         `gorm:"column:error_stage" json:"error_stage"`
	TriggeredBy     string         `gorm:"column:triggered_by" json:"triggered_by"`
	StartedAt       *time.Time     `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt     *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (AutomationJob) TableName() string { return "automation_jobs" }
