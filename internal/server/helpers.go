package server

import (
	"errors"

	"hanapbahay/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers return nil after seeing it so Fiber's
// ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. On failure it writes
// a 400 response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseID64 is parseID for int64-keyed resources.
func (s *Server) parseID64(c *fiber.Ctx, param, label string) (int64, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return int64(id), nil
}

// requesterID returns the authenticated caller's id from locals. Routes
// behind AuthRequired always have it; the zero UUID means a wiring bug.
func requesterID(c *fiber.Ctx) uuid.UUID {
	raw, _ := c.Locals("userID").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// requesterRole returns the authenticated caller's role from locals.
func requesterRole(c *fiber.Ctx) models.UserRole {
	raw, _ := c.Locals("userRole").(string)
	return models.UserRole(raw)
}
