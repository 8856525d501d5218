package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/procureflow/procureflow/internal/shared/config"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// MinioObjectStore keeps uploaded files in a single bucket and hands out
// public URLs of the form {public_base_url}/{bucket}/{path}.
type MinioObjectStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	logger        logger.Interface
}

func NewMinioObjectStore(cfg *config.StorageConfig, log logger.Interface) (*MinioObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinioObjectStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        log,
	}, nil
}

// EnsureBucket creates the bucket on first start.
func (s *MinioObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		s.logger.Debugw("object storage bucket already exists", "bucket", s.bucket)
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Infow("object storage bucket created", "bucket", s.bucket)
	return nil
}

func (s *MinioObjectStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("object path cannot be empty")
	}

	_, err := s.client.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", path, err)
	}

	s.logger.Debugw("object uploaded", "path", path, "size", size)
	return s.PublicURL(path), nil
}

func (s *MinioObjectStore) Remove(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", path, err)
	}
	return nil
}

func (s *MinioObjectStore) PublicURL(path string) string {
	return PublicURL(s.publicBaseURL, s.bucket, path)
}

// ObjectPath recovers the object path from a URL built by PublicURL.
func (s *MinioObjectStore) ObjectPath(url string) (string, bool) {
	return ObjectPath(s.publicBaseURL, s.bucket, url)
}

func PublicURL(baseURL, bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), bucket, strings.TrimLeft(path, "/"))
}

func ObjectPath(baseURL, bucket, url string) (string, bool) {
	prefix := strings.TrimRight(baseURL, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
