package server

import (
	"banterhall/internal/models"
	"banterhall/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGames handles GET /api/games
func (s *Server) GetGames(c *fiber.Ctx) error {
	games, err := s.lobbyService.ListGames(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(games)
}

// CreateGame handles POST /api/games
func (s *Server) CreateGame(c *fiber.Ctx) error {
	var req service.CreateGameInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Host = username(c)

	game, err := s.lobbyService.CreateGame(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// JoinGame handles POST /api/games/:id/join
func (s *Server) JoinGame(c *fiber.Ctx) error {
	game, err := s.lobbyService.JoinGame(c.Context(), c.Params("id"), username(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(game)
}
