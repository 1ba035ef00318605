// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"hanapbahay/internal/cache"
	"hanapbahay/internal/models"

	"gorm.io/gorm"
)

// AmenityRepository defines read access to the amenity catalog.
type AmenityRepository interface {
	GetByCodes(ctx context.Context, codes []string) ([]models.Amenity, error)
	GetAll(ctx context.Context) ([]models.Amenity, error)
}

type amenityRepository struct {
	db *gorm.DB
}

// NewAmenityRepository creates a new amenity repository.
func NewAmenityRepository(db *gorm.DB) AmenityRepository {
	return &amenityRepository{db: db}
}

// GetByCodes looks up catalog entries matching the given codes, case-insensitively,
// in one batch query. Callers pass already-normalized codes.
func (r *amenityRepository) GetByCodes(ctx context.Context, codes []string) ([]models.Amenity, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	upper := make([]string, 0, len(codes))
	for _, code := range codes {
		upper = append(upper, strings.ToUpper(code))
	}

	var amenities []models.Amenity
	err := r.db.WithContext(ctx).
		Where("UPPER(code) IN ?", upper).
		Find(&amenities).Error
	return amenities, err
}

// GetAll returns the full catalog ordered by display label, falling back to
// code for entries without one. The catalog is immutable, so it is served
// through the cache.
func (r *amenityRepository) GetAll(ctx context.Context) ([]models.Amenity, error) {
	var amenities []models.Amenity
	err := cache.Aside(ctx, cache.AmenityCatalogKey, &amenities, cache.AmenityCatalogTTL, func() error {
		return r.db.WithContext(ctx).
			Order("COALESCE(NULLIF(label, ''), code)").
			Find(&amenities).Error
	})
	return amenities, err
}
