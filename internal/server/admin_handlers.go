package server

import (
	"fmt"

	"banterhall/internal/models"
	"banterhall/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminGetUsers handles GET /api/admin/users
func (s *Server) AdminGetUsers(c *fiber.Ctx) error {
	users, err := s.authService.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// AdminSendMessage handles POST /api/admin/message
func (s *Server) AdminSendMessage(c *fiber.Ctx) error {
	var req service.SendMessageInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.messageService.Send(c.Context(), req); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully",
	})
}

// AdminAdjustCoins handles POST /api/admin/adjust-coins
func (s *Server) AdminAdjustCoins(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Amount   int    `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Amount == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and non-zero amount are required"))
	}

	updated, err := s.ledgerService.AdjustBalance(c.Context(), req.Username, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"newBalance": updated.Balance,
		"message":    fmt.Sprintf("Balance adjusted by %d", req.Amount),
	})
}

// AdminGetGames handles GET /api/admin/games
func (s *Server) AdminGetGames(c *fiber.Ctx) error {
	games, err := s.lobbyService.ListGamesForAdmin(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(games)
}

// AdminCancelGame handles DELETE /api/admin/games/:id
func (s *Server) AdminCancelGame(c *fiber.Ctx) error {
	if err := s.lobbyService.CancelGame(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Game cancelled successfully",
	})
}

// AdminGetFeedback handles GET /api/admin/feedback
func (s *Server) AdminGetFeedback(c *fiber.Ctx) error {
	items, err := s.feedbackService.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// AdminReplyFeedback handles POST /api/admin/feedback/:id/reply
func (s *Server) AdminReplyFeedback(c *fiber.Ctx) error {
	var req struct {
		Reply string `json:"reply"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fb, err := s.feedbackService.Reply(c.Context(), c.Params("id"), req.Reply)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fb)
}

// AdminMarkFeedbackRead handles POST /api/admin/feedback/:id/read
func (s *Server) AdminMarkFeedbackRead(c *fiber.Ctx) error {
	fb, err := s.feedbackService.MarkRead(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fb)
}
