package server

import (
	"banterhall/internal/models"
	"banterhall/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitFeedback handles POST /api/feedback
func (s *Server) SubmitFeedback(c *fiber.Ctx) error {
	var req service.SubmitFeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Username = username(c)

	fb, err := s.feedbackService.Submit(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fb)
}

// GetMyFeedback handles GET /api/feedback
func (s *Server) GetMyFeedback(c *fiber.Ctx) error {
	items, err := s.feedbackService.ListForUser(c.Context(), username(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// GetMessages handles GET /api/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	msgs, err := s.messageService.ListUnread(c.Context(), username(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(msgs)
}

// MarkMessageRead handles POST /api/messages/:id/read
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	if err := s.messageService.MarkRead(c.Context(), username(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
