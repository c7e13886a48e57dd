package server

import (
	"banterhall/internal/models"
	"banterhall/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.CredentialsInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.authService.Signup(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// Login handles POST /api/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.CredentialsInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.authService.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

// Logout handles POST /api/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(c.Context(), sessionToken(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// GetBalance handles GET /api/balance
func (s *Server) GetBalance(c *fiber.Ctx) error {
	balance, err := s.authService.Balance(c.Context(), username(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"balance": balance})
}

// TrackActivity handles POST /api/track-activity
func (s *Server) TrackActivity(c *fiber.Ctx) error {
	var req struct {
		SessionDuration int `json:"sessionDuration"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.authService.TrackActivity(c.Context(), username(c), req.SessionDuration); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// GetUserStats handles GET /api/user/stats
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	stats, err := s.authService.Stats(c.Context(), username(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
