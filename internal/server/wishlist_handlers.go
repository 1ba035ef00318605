package server

import (
	"hanapbahay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetWishlist lists the caller's saved listings.
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	responses, appErr := s.wishlistService.List(c.UserContext(), requesterID(c))
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(responses)
}

// AddToWishlist saves a listing for the caller.
func (s *Server) AddToWishlist(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "propertyId", "property ID")
	if err != nil {
		return nil
	}

	if appErr := s.wishlistService.Add(c.UserContext(), requesterID(c), propertyID); appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFromWishlist unsaves a listing for the caller.
func (s *Server) RemoveFromWishlist(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "propertyId", "property ID")
	if err != nil {
		return nil
	}

	if appErr := s.wishlistService.Remove(c.UserContext(), requesterID(c), propertyID); appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
