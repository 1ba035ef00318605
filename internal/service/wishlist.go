package service

import (
	"context"
	"errors"
	"log/slog"

	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistService lets users save listings for later.
type WishlistService struct {
	wishlist   repository.WishlistRepository
	properties repository.PropertyRepository
	logger     *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	wishlist repository.WishlistRepository,
	properties repository.PropertyRepository,
	logger *slog.Logger,
) *WishlistService {
	return &WishlistService{
		wishlist:   wishlist,
		properties: properties,
		logger:     logger,
	}
}

// Add saves a listing. Saving one that is already saved is a no-op.
func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, propertyID uint) *models.AppError {
	if _, err := s.properties.GetDetails(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Property not found.")
		}
		return models.NewInternalError(err)
	}
	if err := s.wishlist.Add(ctx, userID, propertyID); err != nil {
		s.logger.ErrorContext(ctx, "wishlist add failed", "property_id", propertyID, "error", err)
		return models.NewInternalError(err)
	}
	return nil
}

// Remove unsaves a listing. Removing one that was never saved is a no-op.
func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, propertyID uint) *models.AppError {
	if err := s.wishlist.Remove(ctx, userID, propertyID); err != nil {
		s.logger.ErrorContext(ctx, "wishlist remove failed", "property_id", propertyID, "error", err)
		return models.NewInternalError(err)
	}
	return nil
}

// List returns the caller's saved listings, skipping ones that have been
// deleted since they were saved.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.PropertyResponse, *models.AppError) {
	entries, err := s.wishlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	responses := make([]models.PropertyResponse, 0, len(entries))
	for i := range entries {
		if entries[i].Property.IsDeleted {
			continue
		}
		responses = append(responses, models.ToPropertyResponse(&entries[i].Property))
	}
	return responses, nil
}
