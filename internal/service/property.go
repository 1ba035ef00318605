package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"time"
	"unicode/utf8"

	"hanapbahay/internal/cache"
	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pagination bounds for the public filter endpoint.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// PropertyInput carries the typed fields of a create or update request.
// Handlers parse form values into it before calling the service.
type PropertyInput struct {
	Title         string
	Description   string
	Type          models.PropertyType
	Province      string
	City          string
	Barangay      string
	ZipCode       string
	StreetAddress string
	Landmark      string
	MonthlyPrice  decimal.Decimal
	MaxPersons    *uint8
	MoveInDate    *time.Time
	Status        models.ListingStatus
	AmenityCodes  []string
	Images        []*multipart.FileHeader
}

// PropertyUpdateInput extends PropertyInput with media removals.
type PropertyUpdateInput struct {
	PropertyInput
	RemoveImageIDs []uint
}

// PagedProperties is one page of filtered listings plus the total match count.
type PagedProperties struct {
	Items      []models.PropertyResponse `json:"items"`
	TotalCount int64                     `json:"totalCount"`
}

// PropertyService implements listing queries and mutations. It orchestrates
// the amenity resolver and the media lifecycle manager.
type PropertyService struct {
	properties repository.PropertyRepository
	amenities  *AmenityResolver
	media      *MediaService
	logger     *slog.Logger
}

// NewPropertyService creates a new property service.
func NewPropertyService(
	properties repository.PropertyRepository,
	amenities *AmenityResolver,
	media *MediaService,
	logger *slog.Logger,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		amenities:  amenities,
		media:      media,
		logger:     logger,
	}
}

func (s *PropertyService) validateInput(in *PropertyInput) *models.AppError {
	var problems []string
	switch {
	case in.Title == "":
		problems = append(problems, "Title is required.")
	case utf8.RuneCountInString(in.Title) < 3 || utf8.RuneCountInString(in.Title) > 150:
		problems = append(problems, "Title must be between 3 and 150 characters.")
	}
	if utf8.RuneCountInString(in.Description) > 2000 {
		problems = append(problems, "Description must be 2000 characters or fewer.")
	}
	if in.Province == "" {
		problems = append(problems, "Province is required.")
	}
	if in.City == "" {
		problems = append(problems, "City is required.")
	}
	if in.MonthlyPrice.IsNegative() {
		problems = append(problems, "Monthly price cannot be negative.")
	}
	if in.Status == models.StatusRemoved {
		problems = append(problems, "Status 'Removed' cannot be set directly.")
	}
	if len(problems) > 0 {
		return models.NewValidationError(problems...)
	}
	return nil
}

// ListActive returns all publicly browsable listings, served through the
// cache.
func (s *PropertyService) ListActive(ctx context.Context) ([]models.PropertyResponse, *models.AppError) {
	var responses []models.PropertyResponse
	err := cache.Aside(ctx, cache.ActiveListingsKey, &responses, cache.ActiveListingsTTL, func() error {
		properties, err := s.properties.ListActive(ctx)
		if err != nil {
			return err
		}
		responses = models.ToPropertyResponses(properties)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "active listings load failed", "error", err)
		return nil, models.NewInternalError(err)
	}
	return responses, nil
}

// Filter returns one page of active listings matching the given criteria.
// Page numbers below 1 are lifted to 1 and page size is clamped to
// [1, MaxPageSize]; the total always counts every match.
func (s *PropertyService) Filter(ctx context.Context, params repository.FilterParams) (*PagedProperties, *models.AppError) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = DefaultPageSize
	}
	if params.PageSize > MaxPageSize {
		params.PageSize = MaxPageSize
	}

	properties, total, err := s.properties.Filter(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "listing filter failed", "error", err)
		return nil, models.NewInternalError(err)
	}
	return &PagedProperties{
		Items:      models.ToPropertyResponses(properties),
		TotalCount: total,
	}, nil
}

// GetByID returns one listing's full projection, served through the cache.
func (s *PropertyService) GetByID(ctx context.Context, id uint) (*models.PropertyResponse, *models.AppError) {
	var response models.PropertyResponse
	found, cacheErr := cache.GetJSON(ctx, cache.PropertyKey(id), &response)
	if cacheErr == nil && found {
		return &response, nil
	}

	property, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	response = models.ToPropertyResponse(property)
	_ = cache.SetJSON(ctx, cache.PropertyKey(id), response, cache.PropertyTTL)
	return &response, nil
}

// GetByLandlord returns the landlord's own listings in every status.
func (s *PropertyService) GetByLandlord(ctx context.Context, landlordID uuid.UUID) ([]models.PropertyResponse, *models.AppError) {
	properties, err := s.properties.ListByLandlord(ctx, landlordID)
	if err != nil {
		s.logger.ErrorContext(ctx, "landlord listings load failed", "landlord_id", landlordID, "error", err)
		return nil, models.NewInternalError(err)
	}
	return models.ToPropertyResponses(properties), nil
}

// AmenityOptions exposes the catalog for listing forms and filter UIs.
func (s *PropertyService) AmenityOptions(ctx context.Context) ([]models.Amenity, *models.AppError) {
	return s.amenities.Options(ctx)
}

// Create publishes a new listing. Amenity codes are resolved before any row
// is written so an invalid code leaves nothing behind. Image uploads happen
// after the row exists; individual upload failures don't fail the create.
func (s *PropertyService) Create(ctx context.Context, landlordID uuid.UUID, in PropertyInput) (*models.PropertyResponse, *models.AppError) {
	if appErr := s.validateInput(&in); appErr != nil {
		return nil, appErr
	}

	resolved, appErr := s.amenities.Resolve(ctx, in.AmenityCodes)
	if appErr != nil {
		return nil, appErr
	}

	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}

	property := models.Property{
		LandlordID:    landlordID,
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
		Province:      in.Province,
		City:          in.City,
		Barangay:      in.Barangay,
		ZipCode:       in.ZipCode,
		StreetAddress: in.StreetAddress,
		Landmark:      in.Landmark,
		MonthlyPrice:  in.MonthlyPrice,
		MaxPersons:    in.MaxPersons,
		MoveInDate:    in.MoveInDate,
		Status:        status,
	}
	for _, amenity := range resolved {
		property.Amenities = append(property.Amenities, models.PropertyAmenity{AmenityID: amenity.ID})
	}

	if err := s.properties.Create(ctx, &property); err != nil {
		s.logger.ErrorContext(ctx, "listing create failed", "landlord_id", landlordID, "error", err)
		return nil, models.NewInternalError(err)
	}

	if appErr := s.media.UploadImages(ctx, property.ID, in.Images); appErr != nil {
		return nil, appErr
	}

	cache.Invalidate(ctx, cache.ActiveListingsKey)
	return s.reload(ctx, property.ID)
}

// Update applies a full replacement of a listing's fields, amenity set and
// media. Only the owner may update; amenity join rows are reconciled by set
// difference so untouched rows are left alone.
func (s *PropertyService) Update(ctx context.Context, requesterID uuid.UUID, role models.UserRole, id uint, in PropertyUpdateInput) (*models.PropertyResponse, *models.AppError) {
	property, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if property.LandlordID != requesterID && role != models.RoleAdmin {
		return nil, models.NewForbiddenError("You can only update your own properties.")
	}

	if appErr := s.validateInput(&in.PropertyInput); appErr != nil {
		return nil, appErr
	}

	resolved, appErr := s.amenities.Resolve(ctx, in.AmenityCodes)
	if appErr != nil {
		return nil, appErr
	}

	property.Title = in.Title
	property.Description = in.Description
	property.Type = in.Type
	property.Province = in.Province
	property.City = in.City
	property.Barangay = in.Barangay
	property.ZipCode = in.ZipCode
	property.StreetAddress = in.StreetAddress
	property.Landmark = in.Landmark
	property.MonthlyPrice = in.MonthlyPrice
	property.MaxPersons = in.MaxPersons
	property.MoveInDate = in.MoveInDate
	if in.Status != "" {
		property.Status = in.Status
	}

	if appErr := s.reconcileAmenities(ctx, property, resolved); appErr != nil {
		return nil, appErr
	}
	if appErr := s.media.RemoveImages(ctx, property.ID, in.RemoveImageIDs); appErr != nil {
		return nil, appErr
	}
	if appErr := s.media.UploadImages(ctx, property.ID, in.Images); appErr != nil {
		return nil, appErr
	}

	if err := s.properties.Save(ctx, property); err != nil {
		s.logger.ErrorContext(ctx, "listing update failed", "property_id", id, "error", err)
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateProperty(ctx, id)
	return s.reload(ctx, id)
}

// Delete soft-deletes a listing: media blobs and rows go away, the listing
// row stays with IsDeleted set and status Removed. Only the owner or an
// admin may delete.
func (s *PropertyService) Delete(ctx context.Context, requesterID uuid.UUID, role models.UserRole, id uint) *models.AppError {
	property, appErr := s.load(ctx, id)
	if appErr != nil {
		return appErr
	}
	if property.LandlordID != requesterID && role != models.RoleAdmin {
		return models.NewForbiddenError("You can only delete your own properties.")
	}

	mediaIDs := make([]uint, 0, len(property.Media))
	for _, m := range property.Media {
		mediaIDs = append(mediaIDs, m.ID)
	}
	if appErr := s.media.RemoveImages(ctx, property.ID, mediaIDs); appErr != nil {
		return appErr
	}

	property.IsDeleted = true
	property.Status = models.StatusRemoved
	if err := s.properties.Save(ctx, property); err != nil {
		s.logger.ErrorContext(ctx, "listing delete failed", "property_id", id, "error", err)
		return models.NewInternalError(err)
	}

	cache.InvalidateProperty(ctx, id)
	return nil
}

// reconcileAmenities brings the join rows in line with the resolved set using
// set difference in both directions.
func (s *PropertyService) reconcileAmenities(ctx context.Context, property *models.Property, resolved []models.Amenity) *models.AppError {
	current := make(map[uint]struct{}, len(property.Amenities))
	for _, pa := range property.Amenities {
		current[pa.AmenityID] = struct{}{}
	}
	desired := make(map[uint]struct{}, len(resolved))
	for _, amenity := range resolved {
		desired[amenity.ID] = struct{}{}
	}

	var toAdd, toRemove []uint
	for id := range desired {
		if _, ok := current[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for id := range current {
		if _, ok := desired[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	if err := s.properties.AddAmenities(ctx, property.ID, toAdd); err != nil {
		return models.NewInternalError(err)
	}
	if err := s.properties.RemoveAmenities(ctx, property.ID, toRemove); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *PropertyService) load(ctx context.Context, id uint) (*models.Property, *models.AppError) {
	property, err := s.properties.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Property not found.")
		}
		s.logger.ErrorContext(ctx, "listing load failed", "property_id", id, "error", err)
		return nil, models.NewInternalError(err)
	}
	return property, nil
}

func (s *PropertyService) reload(ctx context.Context, id uint) (*models.PropertyResponse, *models.AppError) {
	property, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	response := models.ToPropertyResponse(property)
	return &response, nil
}
