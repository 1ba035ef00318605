// Package storage provides the blob store client used for listing media.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"hanapbahay/internal/config"
	"hanapbahay/internal/middleware"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStorage is the narrow contract the application has with the blob store.
type BlobStorage interface {
	Upload(ctx context.Context, reader io.Reader, size int64, name, container string) (string, error)
	Delete(ctx context.Context, name, container string) (bool, error)
	Download(ctx context.Context, name, container string) (io.ReadCloser, error)
	SignedURL(ctx context.Context, name, container string, validFor time.Duration) (string, error)
}

// MinioStorage implements BlobStorage against a MinIO (or any S3-compatible) endpoint.
type MinioStorage struct {
	client *minio.Client
	logger *slog.Logger
}

// NewMinioStorage connects to the configured blob endpoint.
func NewMinioStorage(cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.BlobEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BlobAccessKey, cfg.BlobSecretKey, ""),
		Secure: cfg.BlobUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client for endpoint %s: %w", cfg.BlobEndpoint, err)
	}

	return &MinioStorage{
		client: client,
		logger: middleware.Logger,
	}, nil
}

// EnsureContainer creates the container when it does not exist yet.
func (s *MinioStorage) EnsureContainer(ctx context.Context, container string) error {
	exists, err := s.client.BucketExists(ctx, container)
	if err != nil {
		return fmt.Errorf("failed to check container %s: %w", container, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, container, minio.MakeBucketOptions{}); err != nil {
		// A concurrent create may have won the race.
		if exists, checkErr := s.client.BucketExists(ctx, container); checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("failed to create container %s: %w", container, err)
	}
	return nil
}

// Upload streams the reader to the container under the given name and returns
// the public URL of the stored blob.
func (s *MinioStorage) Upload(ctx context.Context, reader io.Reader, size int64, name, container string) (string, error) {
	if err := s.EnsureContainer(ctx, container); err != nil {
		middleware.BlobOperations.WithLabelValues("upload", "error").Inc()
		return "", err
	}

	info, err := s.client.PutObject(ctx, container, name, reader, size, minio.PutObjectOptions{})
	if err != nil {
		middleware.BlobOperations.WithLabelValues("upload", "error").Inc()
		return "", fmt.Errorf("failed to upload blob %s to container %s: %w", name, container, err)
	}
	middleware.BlobOperations.WithLabelValues("upload", "ok").Inc()

	s.logger.Info("blob uploaded",
		slog.String("container", info.Bucket),
		slog.String("name", info.Key),
		slog.Int64("size", info.Size),
	)

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), container, name), nil
}

// Delete removes the blob, reporting whether it existed.
func (s *MinioStorage) Delete(ctx context.Context, name, container string) (bool, error) {
	_, err := s.client.StatObject(ctx, container, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			middleware.BlobOperations.WithLabelValues("delete", "ok").Inc()
			return false, nil
		}
		middleware.BlobOperations.WithLabelValues("delete", "error").Inc()
		return false, fmt.Errorf("failed to stat blob %s in container %s: %w", name, container, err)
	}

	if err := s.client.RemoveObject(ctx, container, name, minio.RemoveObjectOptions{}); err != nil {
		middleware.BlobOperations.WithLabelValues("delete", "error").Inc()
		return false, fmt.Errorf("failed to delete blob %s from container %s: %w", name, container, err)
	}
	middleware.BlobOperations.WithLabelValues("delete", "ok").Inc()
	return true, nil
}

// Download returns a stream of the blob's content, or an error when missing.
func (s *MinioStorage) Download(ctx context.Context, name, container string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, container, name, minio.GetObjectOptions{})
	if err != nil {
		middleware.BlobOperations.WithLabelValues("download", "error").Inc()
		return nil, fmt.Errorf("failed to download blob %s from container %s: %w", name, container, err)
	}
	middleware.BlobOperations.WithLabelValues("download", "ok").Inc()
	return obj, nil
}

// SignedURL returns a time-limited presigned GET URL for the blob.
func (s *MinioStorage) SignedURL(ctx context.Context, name, container string, validFor time.Duration) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, container, name, validFor, url.Values{})
	if err != nil {
		middleware.BlobOperations.WithLabelValues("sign", "error").Inc()
		return "", fmt.Errorf("failed to sign URL for blob %s in container %s: %w", name, container, err)
	}
	middleware.BlobOperations.WithLabelValues("sign", "ok").Inc()
	return signed.String(), nil
}
