package server

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"
	"hanapbahay/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GetProperties returns all active listings.
func (s *Server) GetProperties(c *fiber.Ctx) error {
	responses, appErr := s.propertyService.ListActive(c.UserContext())
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(responses)
}

// FilterProperties returns one page of active listings matching the query.
func (s *Server) FilterProperties(c *fiber.Ctx) error {
	params := repository.FilterParams{
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", service.DefaultPageSize),
	}

	if raw := strings.TrimSpace(c.Query("propertyType")); raw != "" {
		propertyType, ok := models.ParsePropertyType(raw)
		if !ok {
			return models.RespondWithAppError(c,
				models.NewValidationError(fmt.Sprintf("Invalid property type '%s'.", raw)))
		}
		params.PropertyType = &propertyType
	}

	if raw := c.Query("amenityCodes"); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				params.AmenityCodes = append(params.AmenityCodes, code)
			}
		}
	}

	page, appErr := s.propertyService.Filter(c.UserContext(), params)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(page)
}

// GetMyProperties returns the authenticated landlord's listings.
func (s *Server) GetMyProperties(c *fiber.Ctx) error {
	responses, appErr := s.propertyService.GetByLandlord(c.UserContext(), requesterID(c))
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(responses)
}

// GetAmenityOptions returns the amenity catalog.
func (s *Server) GetAmenityOptions(c *fiber.Ctx) error {
	options, appErr := s.propertyService.AmenityOptions(c.UserContext())
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(options)
}

// GetProperty returns one listing by id.
func (s *Server) GetProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "property ID")
	if err != nil {
		return nil
	}

	response, appErr := s.propertyService.GetByID(c.UserContext(), id)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(response)
}

// CreateProperty publishes a new listing from a multipart form.
func (s *Server) CreateProperty(c *fiber.Ctx) error {
	input, appErr := parsePropertyForm(c)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}

	response, appErr := s.propertyService.Create(c.UserContext(), requesterID(c), input.PropertyInput)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// UpdateProperty applies a full update to a listing from a multipart form.
func (s *Server) UpdateProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "property ID")
	if err != nil {
		return nil
	}

	input, appErr := parsePropertyForm(c)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}

	response, appErr := s.propertyService.Update(c.UserContext(), requesterID(c), requesterRole(c), id, *input)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(response)
}

// DeleteProperty soft-deletes a listing.
func (s *Server) DeleteProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "property ID")
	if err != nil {
		return nil
	}

	if appErr := s.propertyService.Delete(c.UserContext(), requesterID(c), requesterRole(c), id); appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePropertyForm parses the multipart create/update form into a typed
// input. All parse failures are collected into a single validation error.
func parsePropertyForm(c *fiber.Ctx) (*service.PropertyUpdateInput, *models.AppError) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, models.NewValidationError("Expected multipart form data.")
	}

	var problems []string
	input := service.PropertyUpdateInput{
		PropertyInput: service.PropertyInput{
			Title:         formValue(form, "title"),
			Description:   formValue(form, "description"),
			Province:      formValue(form, "province"),
			City:          formValue(form, "city"),
			Barangay:      formValue(form, "barangay"),
			ZipCode:       formValue(form, "zipCode"),
			StreetAddress: formValue(form, "streetAddress"),
			Landmark:      formValue(form, "landmark"),
			AmenityCodes:  form.Value["amenityCodes"],
			Images:        form.File["images"],
		},
	}

	if raw := formValue(form, "propertyType"); raw != "" {
		propertyType, ok := models.ParsePropertyType(raw)
		if !ok {
			problems = append(problems, fmt.Sprintf("Invalid property type '%s'.", raw))
		}
		input.Type = propertyType
	} else {
		problems = append(problems, "Property type is required.")
	}

	if raw := formValue(form, "monthlyPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			problems = append(problems, "Invalid monthly price.")
		}
		input.MonthlyPrice = price
	}

	if raw := formValue(form, "maxPersons"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			problems = append(problems, "Invalid max persons.")
		} else {
			v := uint8(n)
			input.MaxPersons = &v
		}
	}

	if raw := formValue(form, "moveInDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			problems = append(problems, "Invalid move-in date.")
		} else {
			input.MoveInDate = &t
		}
	}

	if raw := formValue(form, "status"); raw != "" {
		status, ok := models.ParseListingStatus(raw)
		if !ok {
			problems = append(problems, fmt.Sprintf("Invalid status '%s'.", raw))
		}
		input.Status = status
	}

	for _, raw := range form.Value["removeImageIds"] {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			problems = append(problems, fmt.Sprintf("Invalid image ID '%s'.", raw))
			continue
		}
		input.RemoveImageIDs = append(input.RemoveImageIDs, uint(id))
	}

	if len(problems) > 0 {
		return nil, models.NewValidationError(problems...)
	}
	return &input, nil
}

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
