package server

import (
	"time"

	"hanapbahay/internal/models"

	"github.com/gofiber/fiber/v2"
)

const signedURLValidity = 15 * time.Minute

// UploadFile stores one file in the generic uploads container.
func (s *Server) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("A 'file' form field is required."))
	}

	maxBytes := int64(s.config.MaxUploadSizeMB) * 1024 * 1024
	if maxBytes > 0 && file.Size > maxBytes {
		return models.RespondWithAppError(c, models.NewValidationError("Uploaded file is too large."))
	}

	url, appErr := s.uploadService.Upload(c.UserContext(), file)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

// GetSignedURL returns a time-limited link to an uploaded blob.
func (s *Server) GetSignedURL(c *fiber.Ctx) error {
	url, appErr := s.uploadService.SignedURL(c.UserContext(), c.Query("name"), signedURLValidity)
	if appErr != nil {
		return models.RespondWithAppError(c, appErr)
	}
	return c.JSON(fiber.Map{"url": url})
}
