package storage

import "context"

type BucketCategory string

const (
	// BucketCategoryBookingTemplates holds the hotel booking PDF templates.
	// The renderer sidecar fetches them by public URL.
	BucketCategoryBookingTemplates BucketCategory = "booking-templates"
	// BucketCategoryGeneratedDocs holds generated artifacts, keyed by
	// application id. Uploads overwrite, so regeneration is idempotent.
	BucketCategoryGeneratedDocs BucketCategory = "generated-docs"
)

type ObjectStore interface {
	Upload(ctx context.Context, category BucketCategory, key string, data []byte, contentType string) error
	PublicURL(category BucketCategory, key string) string
}
