// Package service implements the application's business logic.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"time"

	"banterhall/internal/middleware"
	"banterhall/internal/models"
	"banterhall/internal/observability"
	"banterhall/internal/repository"
	"banterhall/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// StartingBalance is the coin grant every new account receives.
const StartingBalance = 10

// AuthService handles signup, login, sessions, and user stats.
type AuthService struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	sessionTTL    time.Duration
	adminUsername string
}

// NewAuthService returns a new AuthService. A zero sessionTTL means sessions
// never expire.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sessionTTL time.Duration,
	adminUsername string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		sessionTTL:    sessionTTL,
		adminUsername: adminUsername,
	}
}

// AuthResult is the payload returned on successful signup or login.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Balance  int    `json:"balance"`
	IsAdmin  bool   `json:"isAdmin"`
}

type CredentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// newSessionToken returns an opaque 256-bit token.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *AuthService) issueSession(ctx context.Context, username, source string) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	session := &models.Session{
		Token:     token,
		Username:  username,
		LoginTime: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session, s.sessionTTL); err != nil {
		return "", err
	}
	observability.SessionsIssued.WithLabelValues(source).Inc()
	return token, nil
}

// Signup registers a new account and logs it in.
func (s *AuthService) Signup(ctx context.Context, in CredentialsInput) (*AuthResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Username: in.Username,
		Password: string(hashed),
		Balance:  StartingBalance,
		IsAdmin:  false,
		Stats: models.UserStats{
			LastLogin:   now,
			TotalLogins: 1,
		},
		CreatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueSession(ctx, user.Username, "signup")
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user signup successful", "username", user.Username)
	return &AuthResult{Token: token, Username: user.Username, Balance: user.Balance, IsAdmin: false}, nil
}

// Login verifies credentials, bumps login stats, and issues a session.
func (s *AuthService) Login(ctx context.Context, in CredentialsInput) (*AuthResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.Find(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}

	updated, err := s.userRepo.Update(ctx, user.Username, func(u *models.User) error {
		u.Stats.LastLogin = time.Now().UTC()
		u.Stats.TotalLogins++
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueSession(ctx, user.Username, "login")
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user login successful", "username", user.Username)
	return &AuthResult{Token: token, Username: updated.Username, Balance: updated.Balance, IsAdmin: updated.IsAdmin}, nil
}

// Logout invalidates the session token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}

// Authenticate resolves a session token to its session record.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.sessionRepo.Find(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, models.NewInvalidSessionError()
	}
	return session, nil
}

// IsAdmin reports whether the named user holds the admin flag.
func (s *AuthService) IsAdmin(ctx context.Context, username string) (bool, error) {
	user, err := s.userRepo.Find(ctx, username)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin, nil
}

// Balance returns the user's current coin balance.
func (s *AuthService) Balance(ctx context.Context, username string) (int, error) {
	user, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}

// TrackActivity adds a completed session's duration to the user's total time
// spent, in seconds.
func (s *AuthService) TrackActivity(ctx context.Context, username string, seconds int) error {
	if seconds < 0 {
		return models.NewValidationError("Session duration must not be negative")
	}
	_, err := s.userRepo.Update(ctx, username, func(u *models.User) error {
		u.Stats.TotalTimeSpent += seconds
		return nil
	})
	return err
}

// Stats returns the user's own stats payload.
func (s *AuthService) Stats(ctx context.Context, username string) (*models.UserStatsView, error) {
	user, err := s.userRepo.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	view := user.StatsView()
	return &view, nil
}

// ListUsers returns the admin view of every account except the bootstrap
// admin, most recently active first.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.AdminUserView, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.AdminUserView, 0, len(users))
	for i := range users {
		if users[i].Username == s.adminUsername {
			continue
		}
		views = append(views, users[i].AdminView())
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].LastLogin.After(views[j].LastLogin)
	})
	return views, nil
}
