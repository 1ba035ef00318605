package seed

import (
	"context"
	"fmt"
	"time"

	"hanapbahay/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var demoCities = []struct {
	province string
	city     string
	zip      string
}{
	{"Metro Manila", "Quezon City", "1100"},
	{"Metro Manila", "Makati", "1200"},
	{"Metro Manila", "Taguig", "1630"},
	{"Cebu", "Cebu City", "6000"},
	{"Davao del Sur", "Davao City", "8000"},
	{"Laguna", "Calamba", "4027"},
}

// FakeUser builds an unsaved demo account.
func FakeUser(role models.UserRole) models.User {
	return models.User{
		ID:          uuid.New(),
		DisplayName: gofakeit.Name(),
		Email:       gofakeit.Email(),
		Phone:       gofakeit.Phone(),
		Role:        role,
	}
}

// FakeProperty builds an unsaved demo listing for the given landlord.
func FakeProperty(landlordID uuid.UUID) models.Property {
	location := demoCities[gofakeit.Number(0, len(demoCities)-1)]
	propertyType := models.PropertyTypes[gofakeit.Number(0, len(models.PropertyTypes)-1)]
	maxPersons := uint8(gofakeit.Number(1, 8))
	moveIn := time.Now().AddDate(0, 0, gofakeit.Number(7, 90))

	return models.Property{
		LandlordID:    landlordID,
		Title:         fmt.Sprintf("%s %s near %s", gofakeit.AdjectiveDescriptive(), propertyType, gofakeit.Company()),
		Description:   gofakeit.Paragraph(1, 3, 12, " "),
		Type:          propertyType,
		Province:      location.province,
		City:          location.city,
		Barangay:      fmt.Sprintf("Barangay %d", gofakeit.Number(1, 200)),
		ZipCode:       location.zip,
		StreetAddress: gofakeit.Street(),
		Landmark:      gofakeit.Company(),
		MonthlyPrice:  decimal.NewFromInt(int64(gofakeit.Number(3, 60) * 500)),
		MaxPersons:    &maxPersons,
		MoveInDate:    &moveIn,
		Status:        models.StatusActive,
	}
}

// SeedDemoData creates demo landlords, renters and active listings with
// random amenity sets. Intended for development databases only.
func SeedDemoData(ctx context.Context, db *gorm.DB, landlords, listingsEach int) error {
	if err := SeedAmenities(ctx, db); err != nil {
		return err
	}

	var amenities []models.Amenity
	if err := db.WithContext(ctx).Find(&amenities).Error; err != nil {
		return err
	}

	for i := 0; i < landlords; i++ {
		landlord := FakeUser(models.RoleLandlord)
		if err := db.WithContext(ctx).Create(&landlord).Error; err != nil {
			return err
		}
		renter := FakeUser(models.RoleRenter)
		if err := db.WithContext(ctx).Create(&renter).Error; err != nil {
			return err
		}

		for j := 0; j < listingsEach; j++ {
			property := FakeProperty(landlord.ID)
			count := gofakeit.Number(2, 6)
			seen := make(map[uint]struct{}, count)
			for len(seen) < count {
				amenity := amenities[gofakeit.Number(0, len(amenities)-1)]
				if _, dup := seen[amenity.ID]; dup {
					continue
				}
				seen[amenity.ID] = struct{}{}
				property.Amenities = append(property.Amenities, models.PropertyAmenity{AmenityID: amenity.ID})
			}
			if err := db.WithContext(ctx).Create(&property).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
