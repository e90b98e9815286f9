package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error categories used across the catalog, progress and streaming layers.
// Callers wrap them with %w so controllers can translate any error into an
// HTTP status without knowing which layer produced it.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrIO         = errors.New("filesystem failure")
	ErrStore      = errors.New("store failure")
	ErrUpstream   = errors.New("upstream failure")
)

// StatusFor maps a categorized error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
