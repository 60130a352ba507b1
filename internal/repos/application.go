package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

type ApplicationRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Application, error)
	GetActiveByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Application, error)
}

type applicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
	return &applicationRepo{
		db:  db,
		log: baseLog.With("repo", "ApplicationRepo"),
	}
}

func (r *applicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Application, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var app types.Application
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&app).Error
	if err != nil {
		return nil, err
	}
	if app.ID == 0 {
		return nil, nil
	}
	return &app, nil
}

func (r *applicationRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Application, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var app types.Application
	err := transaction.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Limit(1).
		Find(&app).Error
	if err != nil {
		return nil, err
	}
	if app.ID == 0 {
		return nil, nil
	}
	return &app, nil
}
