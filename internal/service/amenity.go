// Package service implements the application's business logic on top of the
// repository layer. Services return *models.AppError so the HTTP boundary can
// map failures to status codes without inspecting message text.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"
)

// AmenityResolver turns caller-supplied amenity codes into catalog entries.
type AmenityResolver struct {
	amenities repository.AmenityRepository
	logger    *slog.Logger
}

// NewAmenityResolver creates a new amenity resolver.
func NewAmenityResolver(amenities repository.AmenityRepository, logger *slog.Logger) *AmenityResolver {
	return &AmenityResolver{amenities: amenities, logger: logger}
}

// NormalizeCodes trims each code, drops blanks, and removes case-insensitive
// duplicates keeping the first occurrence's spelling and position.
func NormalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		key := strings.ToUpper(code)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, code)
	}
	return out
}

// Resolve maps the requested codes to catalog entries in a single batch
// lookup. Resolution is all-or-nothing: if any code is unknown the whole
// request fails with one message per invalid code, and nothing is returned.
func (s *AmenityResolver) Resolve(ctx context.Context, codes []string) ([]models.Amenity, *models.AppError) {
	normalized := NormalizeCodes(codes)
	if len(normalized) == 0 {
		return nil, nil
	}

	found, err := s.amenities.GetByCodes(ctx, normalized)
	if err != nil {
		s.logger.ErrorContext(ctx, "amenity lookup failed", "error", err)
		return nil, models.NewInternalError(err)
	}

	byCode := make(map[string]models.Amenity, len(found))
	for _, amenity := range found {
		byCode[strings.ToUpper(amenity.Code)] = amenity
	}

	resolved := make([]models.Amenity, 0, len(normalized))
	var invalid []string
	for _, code := range normalized {
		amenity, ok := byCode[strings.ToUpper(code)]
		if !ok {
			invalid = append(invalid, fmt.Sprintf("Amenity code '%s' is invalid.", code))
			continue
		}
		resolved = append(resolved, amenity)
	}

	if len(invalid) > 0 {
		return nil, models.NewValidationError(invalid...)
	}
	return resolved, nil
}

// Options returns the full catalog for pickers, ordered by display label.
func (s *AmenityResolver) Options(ctx context.Context) ([]models.Amenity, *models.AppError) {
	amenities, err := s.amenities.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "amenity catalog load failed", "error", err)
		return nil, models.NewInternalError(err)
	}
	return amenities, nil
}
