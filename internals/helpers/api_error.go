package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIError is a domain failure with a stable code. Services return these;
// controllers hand them to JsonFromError.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// JsonFromError maps a service error onto the standard error envelope.
// Unknown errors fall back to 500.
func JsonFromError(c *fiber.Ctx, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return JsonErrorCode(c, apiErr.Status, apiErr.Code, apiErr.Message)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
