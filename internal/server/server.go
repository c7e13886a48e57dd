// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"strings"
	"time"

	"banterhall/internal/config"
	"banterhall/internal/middleware"
	"banterhall/internal/models"
	"banterhall/internal/repository"
	"banterhall/internal/service"
	"banterhall/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          store.Store
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	gameRepo     repository.GameRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	feedbackRepo repository.FeedbackRepository
	messageRepo  repository.MessageRepository

	authService     *service.AuthService
	ledgerService   *service.LedgerService
	lobbyService    *service.LobbyService
	boardService    *service.BoardService
	feedbackService *service.FeedbackService
	messageService  *service.MessageService
}

// NewServer creates a new server instance, connecting to the record store.
func NewServer(cfg *config.Config) (*Server, error) {
	st, err := store.Connect(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, st, st.Client()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the store.
func NewServerWithDeps(cfg *config.Config, st store.Store, redisClient *redis.Client) *Server {
	s := &Server{
		config:         cfg,
		store:          st,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("banterhall-api"),
		userRepo:       repository.NewUserRepository(st),
		sessionRepo:    repository.NewSessionRepository(st),
		gameRepo:       repository.NewGameRepository(st),
		postRepo:       repository.NewPostRepository(st),
		commentRepo:    repository.NewCommentRepository(st),
		feedbackRepo:   repository.NewFeedbackRepository(st),
		messageRepo:    repository.NewMessageRepository(st),
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	s.authService = service.NewAuthService(s.userRepo, s.sessionRepo, sessionTTL, cfg.AdminUsername)
	s.ledgerService = service.NewLedgerService(s.userRepo)
	s.lobbyService = service.NewLobbyService(s.gameRepo, s.ledgerService)
	s.boardService = service.NewBoardService(s.postRepo, s.commentRepo, s.authService.IsAdmin)
	s.feedbackService = service.NewFeedbackService(s.feedbackRepo)
	s.messageService = service.NewMessageService(s.messageRepo, s.userRepo, s.ledgerService)

	return s
}

// LobbyService exposes the lobby service for the expiry sweeper.
func (s *Server) LobbyService() *service.LobbyService {
	return s.lobbyService
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and username
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Session-Token",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Banterhall Metrics Dashboard",
	}))

	// Auth routes
	api.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	api.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Protected routes
	protected := api.Group("", s.AuthRequired())
	protected.Post("/logout", s.Logout)
	protected.Get("/balance", s.GetBalance)
	protected.Post("/track-activity", s.TrackActivity)
	protected.Get("/user/stats", s.GetUserStats)

	// Game lobby routes
	protected.Get("/games", s.GetGames)
	protected.Post("/games", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_game"), s.CreateGame)
	protected.Post("/games/:id/join", s.JoinGame)

	// Banter board routes
	protected.Get("/posts", s.GetPosts)
	protected.Post("/posts", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_post"), s.CreatePost)
	// Specific /:id/:resource routes BEFORE generic /:id route
	protected.Post("/posts/:id/vote", s.VotePost)
	protected.Get("/posts/:id/comments", s.GetComments)
	protected.Post("/posts/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	protected.Post("/posts/:postId/comments/:commentId/vote", s.VoteComment)
	protected.Delete("/posts/:postId/comments/:commentId", s.DeleteComment)
	protected.Delete("/posts/:id", s.DeletePost)

	// Feedback routes
	protected.Post("/feedback", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "feedback"), s.SubmitFeedback)
	protected.Get("/feedback", s.GetMyFeedback)

	// Message routes
	protected.Get("/messages", s.GetMessages)
	protected.Post("/messages/:id/read", s.MarkMessageRead)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/users", s.AdminGetUsers)
	admin.Post("/message", s.AdminSendMessage)
	admin.Post("/adjust-coins", s.AdminAdjustCoins)
	admin.Get("/games", s.AdminGetGames)
	admin.Delete("/games/:id", s.AdminCancelGame)
	admin.Get("/feedback", s.AdminGetFeedback)
	admin.Post("/feedback/:id/reply", s.AdminReplyFeedback)
	admin.Post("/feedback/:id/read", s.AdminMarkFeedbackRead)
}

// HealthCheck is a simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		storeStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"store": storeStatus,
		},
		"time": time.Now(),
	})
}

// sessionToken extracts the session token from the request. The custom
// header takes priority; a Bearer Authorization header is accepted for
// backwards compatibility.
func sessionToken(c *fiber.Ctx) string {
	if token := c.Get("X-Session-Token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthRequired returns the authentication middleware. It resolves the
// session token to a username stored in c.Locals("username").
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Unauthorized"))
		}

		session, err := s.authService.Authenticate(c.Context(), token)
		if err != nil {
			return respondError(c, err)
		}

		// Store username in context
		c.Locals("username", session.Username)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UsernameKey, session.Username)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that username is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Locals("username").(string)

		admin, err := s.authService.IsAdmin(c.Context(), username)
		if err != nil {
			return respondError(c, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Banterhall API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}
	return s.store.Close()
}
