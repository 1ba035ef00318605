package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyType classifies a listing.
type PropertyType string

// Property types.
const (
	TypeHouse     PropertyType = "House"
	TypeCondo     PropertyType = "Condo"
	TypeApartment PropertyType = "Apartment"
	TypeBedSpacer PropertyType = "BedSpacer"
	TypeDorm      PropertyType = "Dorm"
	TypeRoom      PropertyType = "Room"
)

// PropertyTypes lists every valid property type.
var PropertyTypes = []PropertyType{TypeHouse, TypeCondo, TypeApartment, TypeBedSpacer, TypeDorm, TypeRoom}

// ParsePropertyType validates a property type string.
func ParsePropertyType(s string) (PropertyType, bool) {
	for _, t := range PropertyTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

// Listing statuses. StatusRemoved is reachable only through delete.
const (
	StatusDraft    ListingStatus = "Draft"
	StatusActive   ListingStatus = "Active"
	StatusPaused   ListingStatus = "Paused"
	StatusReserved ListingStatus = "Reserved"
	StatusRented   ListingStatus = "Rented"
	StatusRemoved  ListingStatus = "Removed"
)

// ListingStatuses lists every valid listing status.
var ListingStatuses = []ListingStatus{StatusDraft, StatusActive, StatusPaused, StatusReserved, StatusRented, StatusRemoved}

// ParseListingStatus validates a listing status string.
func ParseListingStatus(s string) (ListingStatus, bool) {
	for _, st := range ListingStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Property is a rental listing published by a landlord.
type Property struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LandlordID uuid.UUID `gorm:"type:uuid;not null;index" json:"landlord_id"`
	Landlord   User      `gorm:"foreignKey:LandlordID" json:"-"`

	Title       string       `gorm:"size:150;not null" json:"title"`
	Description string       `gorm:"size:2000" json:"description,omitempty"`
	Type        PropertyType `gorm:"column:property_type;size:16;not null;index:idx_status_city_type,priority:3" json:"property_type"`

	Province      string `gorm:"not null;index:idx_prov_city_zip,priority:1" json:"province"`
	City          string `gorm:"not null;index;index:idx_prov_city_zip,priority:2;index:idx_status_city_type,priority:2" json:"city"`
	Barangay      string `json:"barangay,omitempty"`
	ZipCode       string `gorm:"index:idx_prov_city_zip,priority:3" json:"zip_code,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`
	Landmark      string `json:"landmark,omitempty"`

	MonthlyPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"monthly_price"`
	MaxPersons   *uint8          `json:"max_persons,omitempty"`
	MoveInDate   *time.Time      `json:"move_in_date,omitempty"`

	Status    ListingStatus `gorm:"size:16;not null;default:Draft;index:idx_status_city_type,priority:1" json:"status"`
	IsDeleted bool          `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time     `json:"created_at"`

	Amenities []PropertyAmenity `gorm:"foreignKey:PropertyID" json:"-"`
	Media     []Media           `gorm:"foreignKey:PropertyID" json:"-"`
}

// Amenity is a catalog entry: a fixed code with a display label.
// Seeded once at startup, effectively immutable reference data.
type Amenity struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Code  string `gorm:"size:40;not null;uniqueIndex" json:"code"`
	Label string `gorm:"size:80" json:"label,omitempty"`
}

// PropertyAmenity joins a listing to a catalog entry.
type PropertyAmenity struct {
	PropertyID uint    `gorm:"primaryKey;autoIncrement:false" json:"property_id"`
	AmenityID  uint    `gorm:"primaryKey;autoIncrement:false" json:"amenity_id"`
	Amenity    Amenity `gorm:"foreignKey:AmenityID" json:"amenity"`
}

// Media is one uploaded image belonging to a listing. Within a non-empty
// listing exactly one item has IsCover set and DisplayOrder values form a
// dense 0..n-1 sequence.
type Media struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PropertyID   uint   `gorm:"not null;index" json:"property_id"`
	URL          string `gorm:"not null" json:"url"`
	DisplayOrder int    `gorm:"not null;default:0" json:"order"`
	IsCover      bool   `gorm:"not null;default:false" json:"is_cover"`
}

// PropertyResponse is the API projection of a listing.
type PropertyResponse struct {
	ID                  uint              `json:"id"`
	LandlordID          uuid.UUID         `json:"landlord_id"`
	LandlordDisplayName string            `json:"landlord_display_name"`
	Title               string            `json:"title"`
	Description         string            `json:"description,omitempty"`
	PropertyType        PropertyType      `json:"property_type"`
	Province            string            `json:"province"`
	City                string            `json:"city"`
	Barangay            string            `json:"barangay,omitempty"`
	ZipCode             string            `json:"zip_code,omitempty"`
	StreetAddress       string            `json:"street_address,omitempty"`
	Landmark            string            `json:"landmark,omitempty"`
	MonthlyPrice        decimal.Decimal   `json:"monthly_price"`
	MaxPersons          *uint8            `json:"max_persons,omitempty"`
	MoveInDate          *time.Time        `json:"move_in_date,omitempty"`
	Status              ListingStatus     `json:"status"`
	CreatedAt           time.Time         `json:"created_at"`
	AmenityCodes        []string          `json:"amenity_codes"`
	Media               []MediaResponse   `json:"media"`
}

// MediaResponse is the API projection of one listing image.
type MediaResponse struct {
	ID      uint   `json:"id"`
	URL     string `json:"url"`
	Order   int    `json:"order"`
	IsCover bool   `json:"is_cover"`
}

// ToPropertyResponse maps a loaded Property aggregate to its API projection.
// The mapping is explicit; nothing here relies on reflection.
func ToPropertyResponse(p *Property) PropertyResponse {
	codes := make([]string, 0, len(p.Amenities))
	for _, pa := range p.Amenities {
		codes = append(codes, pa.Amenity.Code)
	}

	media := make([]MediaResponse, 0, len(p.Media))
	for _, m := range p.Media {
		media = append(media, MediaResponse{
			ID:      m.ID,
			URL:     m.URL,
			Order:   m.DisplayOrder,
			IsCover: m.IsCover,
		})
	}

	return PropertyResponse{
		ID:                  p.ID,
		LandlordID:          p.LandlordID,
		LandlordDisplayName: p.Landlord.DisplayName,
		Title:               p.Title,
		Description:         p.Description,
		PropertyType:        p.Type,
		Province:            p.Province,
		City:                p.City,
		Barangay:            p.Barangay,
		ZipCode:             p.ZipCode,
		StreetAddress:       p.StreetAddress,
		Landmark:            p.Landmark,
		MonthlyPrice:        p.MonthlyPrice,
		MaxPersons:          p.MaxPersons,
		MoveInDate:          p.MoveInDate,
		Status:              p.Status,
		CreatedAt:           p.CreatedAt,
		AmenityCodes:        codes,
		Media:               media,
	}
}

// ToPropertyResponses maps a slice of listings.
func ToPropertyResponses(properties []Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		out = append(out, ToPropertyResponse(&properties[i]))
	}
	return out
}
