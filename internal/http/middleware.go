package http

import (
	"strings"

	"chessdemo/internal/core"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired rejects requests without a bearer seat token. The token is
// checked against the game by the processor.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
				Error: "missing seat token",
				Code:  core.ErrUnauthorized,
			})
		}

		c.Locals("seatToken", token)
		return c.Next()
	}
}

// contentTypeValidator ensures POST requests carry application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// extractBearerToken extracts the token from an Authorization header
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
