package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"
	"hanapbahay/internal/storage"

	"github.com/google/uuid"
)

// ImageContainer is the blob container holding all listing images.
const ImageContainer = "property-images"

// MediaService owns the media lifecycle of a listing: uploading image blobs,
// deleting them, and keeping display order dense and the cover flag unique.
type MediaService struct {
	blobs      storage.BlobStorage
	properties repository.PropertyRepository
	logger     *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(blobs storage.BlobStorage, properties repository.PropertyRepository, logger *slog.Logger) *MediaService {
	return &MediaService{blobs: blobs, properties: properties, logger: logger}
}

// BuildBlobName derives a collision-free blob name for an upload. The original
// filename contributes only its extension; files without one get ".img".
func BuildBlobName(propertyID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	ext = strings.ReplaceAll(ext, "\x00", "")
	if ext == "" {
		ext = ".img"
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("property-%d-%s%s", propertyID, id, ext)
}

// ExtractBlobName recovers the blob name from a stored media URL. URLs written
// by this service end in "<container>/<name>"; anything else falls back to the
// last path segment.
func ExtractBlobName(url string) string {
	if i := strings.Index(url, "/"+ImageContainer+"/"); i >= 0 {
		return url[i+len(ImageContainer)+2:]
	}
	return path.Base(url)
}

// RenumberMedia rewrites display orders into a dense 0-based sequence,
// ordering by the current (order, id) so relative positions survive gaps
// left by deletions.
func RenumberMedia(media []models.Media) {
	sort.SliceStable(media, func(i, j int) bool {
		if media[i].DisplayOrder != media[j].DisplayOrder {
			return media[i].DisplayOrder < media[j].DisplayOrder
		}
		return media[i].ID < media[j].ID
	})
	for i := range media {
		media[i].DisplayOrder = i
	}
}

// EnsureCover makes exactly one item the cover of a non-empty set. An
// existing cover is kept (the first one in display order wins); otherwise the
// item at position 0 is promoted.
func EnsureCover(media []models.Media) {
	if len(media) == 0 {
		return
	}
	cover := -1
	for i := range media {
		if media[i].IsCover && cover == -1 {
			cover = i
		}
	}
	if cover == -1 {
		cover = 0
	}
	for i := range media {
		media[i].IsCover = i == cover
	}
}

// UploadImages uploads the given files and appends them to the listing's
// media, then restores the order and cover invariants. A file that fails to
// open or upload is logged and skipped; the rest still go through.
func (s *MediaService) UploadImages(ctx context.Context, propertyID uint, files []*multipart.FileHeader) *models.AppError {
	if len(files) == 0 {
		return nil
	}

	existing, err := s.properties.GetMedia(ctx, propertyID)
	if err != nil {
		return models.NewInternalError(err)
	}
	nextOrder := len(existing)

	for _, file := range files {
		if file.Size == 0 {
			continue
		}
		url, uploadErr := s.uploadOne(ctx, propertyID, file)
		if uploadErr != nil {
			s.logger.WarnContext(ctx, "image upload failed, skipping file",
				"property_id", propertyID, "filename", file.Filename, "error", uploadErr)
			continue
		}

		media := models.Media{
			PropertyID:   propertyID,
			URL:          url,
			DisplayOrder: nextOrder,
		}
		if err := s.properties.AddMedia(ctx, &media); err != nil {
			return models.NewInternalError(err)
		}
		nextOrder++
	}

	return s.restoreInvariants(ctx, propertyID)
}

func (s *MediaService) uploadOne(ctx context.Context, propertyID uint, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := BuildBlobName(propertyID, file.Filename)
	return s.blobs.Upload(ctx, src, file.Size, name, ImageContainer)
}

// RemoveImages deletes the given media rows and their blobs, then restores
// the order and cover invariants. Unknown ids and ids belonging to other
// listings are ignored. Blob deletion is best-effort: a storage failure is
// logged but never blocks the row removal.
func (s *MediaService) RemoveImages(ctx context.Context, propertyID uint, mediaIDs []uint) *models.AppError {
	if len(mediaIDs) == 0 {
		return nil
	}

	existing, err := s.properties.GetMedia(ctx, propertyID)
	if err != nil {
		return models.NewInternalError(err)
	}

	requested := make(map[uint]struct{}, len(mediaIDs))
	for _, id := range mediaIDs {
		requested[id] = struct{}{}
	}

	var doomed []models.Media
	for _, m := range existing {
		if _, ok := requested[m.ID]; ok {
			doomed = append(doomed, m)
		}
	}
	if len(doomed) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(doomed))
	for _, m := range doomed {
		ids = append(ids, m.ID)
	}
	if err := s.properties.DeleteMedia(ctx, propertyID, ids); err != nil {
		return models.NewInternalError(err)
	}

	for _, m := range doomed {
		if _, err := s.blobs.Delete(ctx, ExtractBlobName(m.URL), ImageContainer); err != nil {
			s.logger.WarnContext(ctx, "blob delete failed",
				"property_id", propertyID, "media_id", m.ID, "error", err)
		}
	}

	return s.restoreInvariants(ctx, propertyID)
}

// restoreInvariants re-reads the listing's media and writes back dense
// display orders and a single cover.
func (s *MediaService) restoreInvariants(ctx context.Context, propertyID uint) *models.AppError {
	media, err := s.properties.GetMedia(ctx, propertyID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(media) == 0 {
		return nil
	}

	RenumberMedia(media)
	EnsureCover(media)

	if err := s.properties.SaveMedia(ctx, media); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
