package server

import (
	"hanapbahay/internal/models"

	"github.com/gofiber/fiber/v2"
)

type proposeReservationRequest struct {
	Note string `json:"note"`
}

type updateReservationRequest struct {
	Action string `json:"action"`
}

// ProposeReservation creates a reservation request on a listing.
func (s *Server) ProposeReservation(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "id", "property ID")
	if err != nil {
		return nil
	}

	var req proposeReservationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithAppError(c, models.NewValidationError("Invalid request body."))
		}
	}

	reservation, appErr := s.reservationService.Propose(c.UserContext(), requesterID(c), propertyID, req.Note)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(reservation)
}

// GetPropertyReservations lists reservations on the caller's own listing.
func (s *Server) GetPropertyReservations(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "id", "property ID")
	if err != nil {
		return nil
	}

	reservations, appErr := s.reservationService.ListByProperty(c.UserContext(), requesterID(c), requesterRole(c), propertyID)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(reservations)
}

// GetMyReservations lists the caller's reservations as a renter.
func (s *Server) GetMyReservations(c *fiber.Ctx) error {
	reservations, appErr := s.reservationService.ListByRenter(c.UserContext(), requesterID(c))
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(reservations)
}

// UpdateReservation applies a lifecycle action to a reservation.
func (s *Server) UpdateReservation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "reservation ID")
	if err != nil {
		return nil
	}

	var req updateReservationRequest
	if err := c.BodyParser(&req); err != nil || req.Action == "" {
		return models.RespondWithAppError(c, models.NewValidationError("Reservation action is required."))
	}

	reservation, appErr := s.reservationService.Act(c.UserContext(), requesterID(c), requesterRole(c), id, req.Action)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(reservation)
}
