package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/bkoseoglu/visadesk-backend/internal/logger"
)

type GCSConfig struct {
	TemplatesBucket     string
	GeneratedDocsBucket string
	// CredentialsFile is optional; when empty, application default
	// credentials are used.
	CredentialsFile string
}

type gcsStore struct {
	log     *logger.Logger
	client  *gcs.Client
	buckets map[BucketCategory]string
}

func NewGCSStore(log *logger.Logger, cfg GCSConfig) (ObjectStore, error) {
	serviceLog := log.With("service", "GCSStore")

	if cfg.TemplatesBucket == "" {
		return nil, fmt.Errorf("missing booking templates bucket name")
	}
	if cfg.GeneratedDocsBucket == "" {
		return nil, fmt.Errorf("missing generated docs bucket name")
	}

	ctx := context.Background()
	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &gcsStore{
		log:    serviceLog,
		client: client,
		buckets: map[BucketCategory]string{
			BucketCategoryBookingTemplates: cfg.TemplatesBucket,
			BucketCategoryGeneratedDocs:    cfg.GeneratedDocsBucket,
		},
	}, nil
}

func (s *gcsStore) bucketName(category BucketCategory) (string, error) {
	name, ok := s.buckets[category]
	if !ok {
		return "", fmt.Errorf("unknown bucket category: %s", category)
	}
	return name, nil
}

func (s *gcsStore) Upload(ctx context.Context, category BucketCategory, key string, data []byte, contentType string) error {
	name, err := s.bucketName(category)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(name).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close GCS writer: %w", err)
	}
	return nil
}

func (s *gcsStore) PublicURL(category BucketCategory, key string) string {
	name, err := s.bucketName(category)
	if err != nil {
		return key
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", name, key)
}
