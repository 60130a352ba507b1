package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

type AutomationJobRepo interface {
	Create(ctx context.Context, tx *gorm.DB, job *types.AutomationJob) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AutomationJob, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	// CancelIfActive flips the job to cancelled, but only while it is still
	// pending, queued or running. The status guard in the WHERE clause is
	// what prevents cancelling a job that finished in the meantime. Returns
	// the number of rows transitioned (0 or 1).
	CancelIfActive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type automationJobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAutomationJobRepo(db *gorm.DB, baseLog *logger.Logger) AutomationJobRepo {
	return &automationJobRepo{
		db:  db,
		log: baseLog.With("repo", "AutomationJobRepo"),
	}
}

func (r *automationJobRepo) Create(ctx context.Context, tx *gorm.DB, job *types.AutomationJob) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	return transaction.WithContext(ctx).Create(job).Error
}

func (r *automationJobRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AutomationJob, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var job types.AutomationJob
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&job).Error
	if err != nil {
		return nil, err
	}
	if job.ID == uuid.Nil {
		return nil, nil
	}
	return &job, nil
}

func (r *automationJobRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(ctx).
		Model(&types.AutomationJob{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *automationJobRepo) CancelIfActive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	now := time.Now()
	res := transaction.WithContext(ctx).
		Model(&types.AutomationJob{}).
		Where("id = ? AND status IN ?", id, []string{
			types.JobStatusPending,
			types.JobStatusQueued,
			types.JobStatusRunning,
		}).
		Updates(map[string]interface{}{
			"status":       types.JobStatusCancelled,
			"completed_at": now,
			"updated_at":   now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
