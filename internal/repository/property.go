package repository

import (
	"context"
	"strings"

	"hanapbahay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilterParams carries the public browse filters. Zero values mean "not set".
type FilterParams struct {
	Search       string
	PropertyType *models.PropertyType
	AmenityCodes []string
	Page         int
	PageSize     int
}

// PropertyRepository defines data access for property listings and their
// owned media and amenity rows.
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	Save(ctx context.Context, property *models.Property) error
	GetDetails(ctx context.Context, id uint) (*models.Property, error)
	ListActive(ctx context.Context) ([]models.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]models.Property, error)
	Filter(ctx context.Context, params FilterParams) ([]models.Property, int64, error)

	AddAmenities(ctx context.Context, propertyID uint, amenityIDs []uint) error
	RemoveAmenities(ctx context.Context, propertyID uint, amenityIDs []uint) error

	AddMedia(ctx context.Context, media *models.Media) error
	SaveMedia(ctx context.Context, media []models.Media) error
	DeleteMedia(ctx context.Context, propertyID uint, mediaIDs []uint) error
	GetMedia(ctx context.Context, propertyID uint) ([]models.Media, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create persists a new property together with any attached amenity and media rows.
func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// Save updates the property's own columns. Association rows are managed
// through the dedicated media and amenity methods, never implicitly.
func (r *propertyRepository) Save(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(property).Error
}

func detailPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Landlord").
		Preload("Amenities.Amenity").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		})
}

// GetDetails loads one listing with its landlord, amenities and ordered media.
// Soft-deleted listings are treated as absent.
func (r *propertyRepository) GetDetails(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := detailPreloads(r.db.WithContext(ctx)).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// ListActive returns publicly browsable listings, newest first.
func (r *propertyRepository) ListActive(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := detailPreloads(r.db.WithContext(ctx)).
		Where("status = ? AND is_deleted = ?", models.StatusActive, false).
		Order("created_at DESC, id DESC").
		Find(&properties).Error
	return properties, err
}

// ListByLandlord returns all of a landlord's listings regardless of status,
// newest first. Soft-deleted listings stay hidden even from the owner.
func (r *propertyRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]models.Property, error) {
	var properties []models.Property
	err := detailPreloads(r.db.WithContext(ctx)).
		Where("landlord_id = ? AND is_deleted = ?", landlordID, false).
		Order("created_at DESC, id DESC").
		Find(&properties).Error
	return properties, err
}

// Filter applies the public browse filters and returns one page plus the
// total match count. The count reflects all matches, not just the page.
func (r *propertyRepository) Filter(ctx context.Context, params FilterParams) ([]models.Property, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("status = ? AND is_deleted = ?", models.StatusActive, false)

	if term := strings.TrimSpace(params.Search); term != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if params.PropertyType != nil {
		query = query.Where("property_type = ?", *params.PropertyType)
	}
	if len(params.AmenityCodes) > 0 {
		upper := make([]string, 0, len(params.AmenityCodes))
		for _, code := range params.AmenityCodes {
			upper = append(upper, strings.ToUpper(strings.TrimSpace(code)))
		}
		// A listing matches when it has at least one of the requested amenities.
		query = query.Where(
			"EXISTS (SELECT 1 FROM property_amenities pa JOIN amenities a ON a.id = pa.amenity_id "+
				"WHERE pa.property_id = properties.id AND UPPER(a.code) IN ?)",
			upper,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err := detailPreloads(query).
		Order("created_at DESC, id DESC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// AddAmenities attaches catalog entries to a listing.
func (r *propertyRepository) AddAmenities(ctx context.Context, propertyID uint, amenityIDs []uint) error {
	if len(amenityIDs) == 0 {
		return nil
	}
	rows := make([]models.PropertyAmenity, 0, len(amenityIDs))
	for _, amenityID := range amenityIDs {
		rows = append(rows, models.PropertyAmenity{PropertyID: propertyID, AmenityID: amenityID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// RemoveAmenities detaches catalog entries from a listing.
func (r *propertyRepository) RemoveAmenities(ctx context.Context, propertyID uint, amenityIDs []uint) error {
	if len(amenityIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("property_id = ? AND amenity_id IN ?", propertyID, amenityIDs).
		Delete(&models.PropertyAmenity{}).Error
}

// AddMedia persists one new media row.
func (r *propertyRepository) AddMedia(ctx context.Context, media *models.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// SaveMedia writes back order and cover changes for existing rows.
func (r *propertyRepository) SaveMedia(ctx context.Context, media []models.Media) error {
	if len(media) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&media).Error
}

// DeleteMedia removes media rows by id, scoped to the owning listing so a
// stale or hostile id cannot touch another listing's images.
func (r *propertyRepository) DeleteMedia(ctx context.Context, propertyID uint, mediaIDs []uint) error {
	if len(mediaIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("property_id = ? AND id IN ?", propertyID, mediaIDs).
		Delete(&models.Media{}).Error
}

// GetMedia returns a listing's media rows in display order.
func (r *propertyRepository) GetMedia(ctx context.Context, propertyID uint) ([]models.Media, error) {
	var media []models.Media
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("display_order ASC, id ASC").
		Find(&media).Error
	return media, err
}
