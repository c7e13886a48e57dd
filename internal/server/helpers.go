package server

import (
	"banterhall/internal/middleware"
	"banterhall/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError writes an application error with its mapped HTTP status.
// Internal errors are logged with their cause; the client only sees the
// generic message.
func respondError(c *fiber.Ctx, err error) error {
	status := models.StatusForError(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
	}
	return models.RespondWithError(c, status, err)
}

// username returns the authenticated username set by AuthRequired.
func username(c *fiber.Ctx) string {
	name, _ := c.Locals("username").(string)
	return name
}
