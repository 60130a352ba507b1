package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

type LetterExampleRepo interface {
	// ListActiveMatching returns up to limit active examples for the given
	// country and visa type.
	ListActiveMatching(ctx context.Context, tx *gorm.DB, country, visaType string, limit int) ([]*types.LetterExample, error)
	// ListActiveAny returns up to limit active examples with no filter.
	ListActiveAny(ctx context.Context, tx *gorm.DB, limit int) ([]*types.LetterExample, error)
}

type letterExampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLetterExampleRepo(db *gorm.DB, baseLog *logger.Logger) LetterExampleRepo {
	return &letterExampleRepo{
		db:  db,
		log: baseLog.With("repo", "LetterExampleRepo"),
	}
}

func (r *letterExampleRepo) ListActiveMatching(ctx context.Context, tx *gorm.DB, country, visaType string, limit int) ([]*types.LetterExample, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.LetterExample
	err := transaction.WithContext(ctx).
		Where("country = ? AND visa_type = ? AND is_active = ?", country, visaType, true).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *letterExampleRepo) ListActiveAny(ctx context.Context, tx *gorm.DB, limit int) ([]*types.LetterExample, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.LetterExample
	err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
