package repository

import (
	"context"

	"hanapbahay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository defines data access for saved listings.
type WishlistRepository interface {
	Add(ctx context.Context, userID uuid.UUID, propertyID uint) error
	Remove(ctx context.Context, userID uuid.UUID, propertyID uint) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new wishlist repository.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add saves a listing for the user. Saving twice is a no-op.
func (r *wishlistRepository) Add(ctx context.Context, userID uuid.UUID, propertyID uint) error {
	entry := models.Wishlist{UserID: userID, PropertyID: propertyID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

// Remove unsaves a listing. Removing an absent entry is a no-op.
func (r *wishlistRepository) Remove(ctx context.Context, userID uuid.UUID, propertyID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Wishlist{}).Error
}

// ListByUser returns the user's saved listings, newest save first, with the
// listing loaded for display.
func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Property.Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Property.Amenities.Amenity").
		Preload("Property.Landlord").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
