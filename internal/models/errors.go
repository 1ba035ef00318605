package models

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. The HTTP boundary dispatches on these
// instead of inspecting message text.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Errors []string `json:"errors"`
	Code   string   `json:"code,omitempty"`
}

// AppError is a tagged application error. Messages holds one or more
// human-readable failure descriptions (amenity resolution can produce several).
type AppError struct {
	Code     string
	Messages []string
	Err      error
}

func (e *AppError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns a NOT_FOUND error with the given message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Messages: []string{message}}
}

// NewForbiddenError returns a FORBIDDEN error with the given message.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Messages: []string{message}}
}

// NewValidationError returns a VALIDATION_ERROR with one or more messages.
func NewValidationError(messages ...string) *AppError {
	return &AppError{Code: CodeValidation, Messages: messages}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Messages: []string{"Internal server error"}, Err: err}
}

// StatusFor maps an error to an HTTP status code by its tag.
func StatusFor(err error) int {
	if appErr, ok := err.(*AppError); ok {
		switch appErr.Code {
		case CodeNotFound:
			return fiber.StatusNotFound
		case CodeForbidden:
			return fiber.StatusForbidden
		case CodeValidation:
			return fiber.StatusBadRequest
		}
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

// RespondWithError writes a standardized error response with the given status.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Errors: appErr.Messages,
			Code:   appErr.Code,
		}
	} else {
		response = ErrorResponse{
			Errors: []string{err.Error()},
		}
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError writes an error response with the status derived from the tag.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusFor(err), err)
}
