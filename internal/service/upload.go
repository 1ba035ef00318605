package service

import (
	"context"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"hanapbahay/internal/models"
	"hanapbahay/internal/storage"

	"github.com/google/uuid"
)

// UploadContainer is the blob container for generic, non-listing uploads
// such as avatars and documents.
const UploadContainer = "images"

// UploadService handles one-off file uploads outside the listing media
// lifecycle.
type UploadService struct {
	blobs  storage.BlobStorage
	logger *slog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(blobs storage.BlobStorage, logger *slog.Logger) *UploadService {
	return &UploadService{blobs: blobs, logger: logger}
}

// Upload stores one file and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, file *multipart.FileHeader) (string, *models.AppError) {
	if file.Size == 0 {
		return "", models.NewValidationError("Uploaded file is empty.")
	}

	src, err := file.Open()
	if err != nil {
		return "", models.NewValidationError("Uploaded file could not be read.")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext

	url, err := s.blobs.Upload(ctx, src, file.Size, name, UploadContainer)
	if err != nil {
		s.logger.ErrorContext(ctx, "upload failed", "filename", file.Filename, "error", err)
		return "", models.NewInternalError(err)
	}
	return url, nil
}

// SignedURL returns a time-limited link to a previously uploaded blob.
func (s *UploadService) SignedURL(ctx context.Context, name string, validFor time.Duration) (string, *models.AppError) {
	if name == "" {
		return "", models.NewValidationError("Blob name is required.")
	}
	url, err := s.blobs.SignedURL(ctx, name, UploadContainer, validFor)
	if err != nil {
		s.logger.ErrorContext(ctx, "signed url failed", "name", name, "error", err)
		return "", models.NewInternalError(err)
	}
	return url, nil
}
