package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

type GeneratedDocumentRepo interface {
	// CreateIfAbsent inserts doc unless a row with the same
	// (application_id, type) is already in generating state. Returns false
	// when the insert was skipped.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, doc *types.GeneratedDocument) (bool, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GeneratedDocument, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	// MarkErrorInFlight flips the in-flight generating row for
	// (applicationID, docType) to error with the given message.
	MarkErrorInFlight(ctx context.Context, tx *gorm.DB, applicationID int64, docType string, msg string) error
	// LatestBooking returns the most recent booking_pdf row for an
	// application, or nil when none exists.
	LatestBooking(ctx context.Context, tx *gorm.DB, applicationID int64) (*types.GeneratedDocument, error)
	ListByApplication(ctx context.Context, tx *gorm.DB, applicationID int64) ([]*types.GeneratedDocument, error)
}

type generatedDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedDocumentRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedDocumentRepo {
	return &generatedDocumentRepo{
		db:  db,
		log: baseLog.With("repo", "GeneratedDocumentRepo"),
	}
}

func (r *generatedDocumentRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, doc *types.GeneratedDocument) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}
	res := transaction.WithContext(ctx).Exec(`
		INSERT INTO generated_documents
			(id, application_id, type, status, hotel_id, content, file_path, error_message, generated_by, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM generated_documents
			WHERE application_id = ? AND type = ? AND status = ?
		)`,
		doc.ID, doc.ApplicationID, doc.Type, doc.Status, doc.HotelID, doc.Content,
		doc.FilePath, doc.ErrorMessage, doc.GeneratedBy, doc.CreatedAt, doc.UpdatedAt,
		doc.ApplicationID, doc.Type, types.DocumentStatusGenerating,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *generatedDocumentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GeneratedDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var doc types.GeneratedDocument
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&doc).Error
	if err != nil {
		return nil, err
	}
	if doc.ID == uuid.Nil {
		return nil, nil
	}
	return &doc, nil
}

func (r *generatedDocumentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.GeneratedDocument{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *generatedDocumentRepo) MarkErrorInFlight(ctx context.Context, tx *gorm.DB, applicationID int64, docType string, msg string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.GeneratedDocument{}).
		Where("application_id = ? AND type = ? AND status = ?", applicationID, docType, types.DocumentStatusGenerating).
		Updates(map[string]interface{}{
			"status":        types.DocumentStatusError,
			"error_message": msg,
			"updated_at":    time.Now(),
		}).Error
}

func (r *generatedDocumentRepo) LatestBooking(ctx context.Context, tx *gorm.DB, applicationID int64) (*types.GeneratedDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var doc types.GeneratedDocument
	err := transaction.WithContext(ctx).
		Where("application_id = ? AND type = ?", applicationID, types.DocumentTypeBookingPDF).
		Order("created_at DESC").
		Limit(1).
		Find(&doc).Error
	if err != nil {
		return nil, err
	}
	if doc.ID == uuid.Nil {
		return nil, nil
	}
	return &doc, nil
}

func (r *generatedDocumentRepo) ListByApplication(ctx context.Context, tx *gorm.DB, applicationID int64) ([]*types.GeneratedDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.GeneratedDocument
	err := transaction.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
