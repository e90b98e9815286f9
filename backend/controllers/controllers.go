package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// param returns a path parameter with percent-escapes decoded, so folder and
// file names containing spaces round-trip through URLs.
func param(c *fiber.Ctx, key string) string {
	value := c.Params(key)
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
