package repository

import (
	"context"
	"testing"

	"hanapbahay/internal/database"
	"hanapbahay/internal/models"
	"hanapbahay/internal/seed"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, seed.SeedAmenities(context.Background(), db))
	return db
}

func createLandlord(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:          uuid.New(),
		DisplayName: "Landlord",
		Email:       uuid.New().String() + "@example.com",
		Role:        models.RoleLandlord,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProperty(t *testing.T, db *gorm.DB, landlordID uuid.UUID, mutate func(*models.Property)) models.Property {
	t.Helper()
	property := models.Property{
		LandlordID:   landlordID,
		Title:        "Listing",
		Type:         models.TypeRoom,
		Province:     "Metro Manila",
		City:         "Quezon City",
		MonthlyPrice: decimal.NewFromInt(5000),
		Status:       models.StatusActive,
	}
	if mutate != nil {
		mutate(&property)
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func amenityByCode(t *testing.T, db *gorm.DB, code string) models.Amenity {
	t.Helper()
	var amenity models.Amenity
	require.NoError(t, db.Where("code = ?", code).First(&amenity).Error)
	return amenity
}
