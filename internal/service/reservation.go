package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationService handles reservation proposals and their lifecycle.
type ReservationService struct {
	reservations repository.ReservationRepository
	properties   repository.PropertyRepository
	logger       *slog.Logger
}

// NewReservationService creates a new reservation service.
func NewReservationService(
	reservations repository.ReservationRepository,
	properties repository.PropertyRepository,
	logger *slog.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		properties:   properties,
		logger:       logger,
	}
}

// Propose creates a reservation request on an active listing. A renter can
// hold at most one open (proposed or accepted) reservation per listing and
// cannot reserve their own.
func (s *ReservationService) Propose(ctx context.Context, renterID uuid.UUID, propertyID uint, note string) (*models.Reservation, *models.AppError) {
	property, err := s.properties.GetDetails(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Property not found.")
		}
		return nil, models.NewInternalError(err)
	}
	if property.Status != models.StatusActive {
		return nil, models.NewValidationError("Listing is not available for reservation.")
	}
	if property.LandlordID == renterID {
		return nil, models.NewValidationError("You cannot reserve your own listing.")
	}

	open, err := s.reservations.HasOpenReservation(ctx, propertyID, renterID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if open {
		return nil, models.NewValidationError("You already have an open reservation for this listing.")
	}

	reservation := models.Reservation{
		PropertyID: propertyID,
		RenterID:   renterID,
		Status:     models.ReservationProposed,
		Note:       note,
	}
	if err := s.reservations.Create(ctx, &reservation); err != nil {
		s.logger.ErrorContext(ctx, "reservation create failed", "property_id", propertyID, "error", err)
		return nil, models.NewInternalError(err)
	}
	return &reservation, nil
}

// reservationActions maps a requested action to its target status and the
// statuses it may leave from.
var reservationActions = map[string]struct {
	target  models.ReservationStatus
	from    []models.ReservationStatus
	byOwner bool
}{
	"accept":   {models.ReservationAccepted, []models.ReservationStatus{models.ReservationProposed}, true},
	"decline":  {models.ReservationDeclined, []models.ReservationStatus{models.ReservationProposed}, true},
	"complete": {models.ReservationCompleted, []models.ReservationStatus{models.ReservationAccepted}, true},
	"cancel":   {models.ReservationCancelled, []models.ReservationStatus{models.ReservationProposed, models.ReservationAccepted}, false},
}

// Act applies a lifecycle action to a reservation. Accept, decline and
// complete belong to the landlord of the listing; cancel belongs to the
// renter. Admins can do either.
func (s *ReservationService) Act(ctx context.Context, requesterID uuid.UUID, role models.UserRole, reservationID uint, action string) (*models.Reservation, *models.AppError) {
	rule, ok := reservationActions[action]
	if !ok {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown reservation action '%s'.", action))
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reservation not found.")
		}
		return nil, models.NewInternalError(err)
	}

	if role != models.RoleAdmin {
		if rule.byOwner && reservation.Property.LandlordID != requesterID {
			return nil, models.NewForbiddenError("You can only manage reservations on your own listings.")
		}
		if !rule.byOwner && reservation.RenterID != requesterID {
			return nil, models.NewForbiddenError("You can only cancel your own reservations.")
		}
	}

	allowed := false
	for _, from := range rule.from {
		if reservation.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, models.NewValidationError(
			fmt.Sprintf("Reservation in status '%s' cannot move to '%s'.", reservation.Status, rule.target))
	}

	reservation.Status = rule.target
	if err := s.reservations.Save(ctx, reservation); err != nil {
		s.logger.ErrorContext(ctx, "reservation update failed", "reservation_id", reservationID, "error", err)
		return nil, models.NewInternalError(err)
	}
	return reservation, nil
}

// ListByProperty returns all reservations on a listing, landlord only.
func (s *ReservationService) ListByProperty(ctx context.Context, requesterID uuid.UUID, role models.UserRole, propertyID uint) ([]models.Reservation, *models.AppError) {
	property, err := s.properties.GetDetails(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Property not found.")
		}
		return nil, models.NewInternalError(err)
	}
	if property.LandlordID != requesterID && role != models.RoleAdmin {
		return nil, models.NewForbiddenError("You can only view reservations on your own listings.")
	}

	reservations, err := s.reservations.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reservations, nil
}

// ListByRenter returns the caller's own reservations.
func (s *ReservationService) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]models.Reservation, *models.AppError) {
	reservations, err := s.reservations.ListByRenter(ctx, renterID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reservations, nil
}
