// Package seed populates reference data and demo content.
package seed

import (
	"context"

	"hanapbahay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// amenityCatalog is the fixed set of amenity codes listings can carry.
// Codes are stable identifiers; labels are display-only.
var amenityCatalog = []models.Amenity{
	{Code: "OWN_CR_SINK", Label: "Own CR & sink"},
	{Code: "COMMON_CR_SINK", Label: "Common CR & sink"},
	{Code: "AIRCON", Label: "Air conditioned"},
	{Code: "NON_AIRCON", Label: "Non air conditioned"},
	{Code: "MOTOR_PARK", Label: "Motorcycle parking"},
	{Code: "CAR_PARK", Label: "Car parking"},
	{Code: "VISITORS_ALLOWED", Label: "Visitors allowed"},
	{Code: "PET_FRIENDLY", Label: "Pet friendly"},
	{Code: "CAN_COOK", Label: "Cooking allowed"},
	{Code: "DO_LAUNDRY", Label: "Laundry area"},
	{Code: "NO_CURFEW", Label: "No curfew"},
	{Code: "WITH_CURFEW", Label: "With curfew"},
}

// SeedAmenities inserts the amenity catalog, skipping codes that already
// exist. Safe to run on every startup.
func SeedAmenities(ctx context.Context, db *gorm.DB) error {
	rows := make([]models.Amenity, len(amenityCatalog))
	copy(rows, amenityCatalog)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

// AmenityCodes returns the catalog's codes, for factories and tests.
func AmenityCodes() []string {
	codes := make([]string, 0, len(amenityCatalog))
	for _, a := range amenityCatalog {
		codes = append(codes, a.Code)
	}
	return codes
}
