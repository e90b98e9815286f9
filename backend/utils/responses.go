package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body for all error statuses
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Error creates a JSON error response
func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{Error: message}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(status).JSON(response)
}

// Fail picks the status from the error category
func Fail(c *fiber.Ctx, err error) error {
	return Error(c, StatusFor(err), err.Error())
}

// NotFound sends a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string, details ...interface{}) error {
	return Error(c, fiber.StatusBadRequest, message, details...)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
