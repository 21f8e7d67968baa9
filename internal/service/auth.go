package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/domain"
	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/id"
	"github.com/latateni/latateni-server/internal/store"
	"github.com/latateni/latateni-server/internal/validation"
)

// AuthService handles coach sign-in, token refresh, and sign-out.
type AuthService struct {
	store     *store.Store
	tokens    *auth.TokenService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(st *store.Store, tokens *auth.TokenService, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     st,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
	}
}

// LoginRequest carries the sign-in form fields.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on successful sign-in or refresh.
type LoginResult struct {
	Coach        *domain.Coach `json:"coach"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"` // Access token lifetime in seconds
}

// Login verifies credentials and opens a refresh-token session. Bad email
// and bad password produce the same message, so accounts can't be probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	invalidCredentials := apperrors.InvalidCredentials("Forkert email eller adgangskode")

	coach, err := s.store.Coaches.GetByIndex(ctx, "email", req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, fmt.Errorf("lookup coach: %w", err)
	}

	ok, err := auth.VerifyPassword(coach.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Info("failed login attempt", slog.String("email", req.Email))
		return nil, invalidCredentials
	}

	coach.LastLoginAt = time.Now()
	if err := s.store.Coaches.Update(ctx, coach.ID, coach); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	result, err := s.openSession(ctx, coach)
	if err != nil {
		return nil, err
	}

	s.logger.Info("coach logged in",
		slog.String("coach_id", coach.ID),
		slog.String("email", coach.Email))

	return result, nil
}

// Refresh rotates a refresh token: the old session is revoked and a new one
// opened. Expired or unknown tokens fail without side effects.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	session, err := s.store.Sessions.GetByIndex(ctx, "token", auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if session.IsExpired(time.Now()) {
		// Expired sessions are cleaned up on sight.
		_ = s.store.Sessions.Delete(ctx, session.ID)
		return nil, apperrors.TokenExpired("session expired, log in again")
	}

	coach, err := s.store.Coaches.Get(ctx, session.CoachID)
	if err != nil {
		return nil, fmt.Errorf("lookup coach: %w", err)
	}

	if err := s.store.Sessions.Delete(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("revoke session: %w", err)
	}

	return s.openSession(ctx, coach)
}

// Logout revokes the session behind a refresh token and returns the coach
// whose session was revoked, so the caller can tear down live state. Unknown
// tokens return an empty coach id; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (string, error) {
	session, err := s.store.Sessions.GetByIndex(ctx, "token", auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}

	if err := s.store.Sessions.Delete(ctx, session.ID); err != nil {
		return "", fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("coach logged out", slog.String("coach_id", session.CoachID))
	return session.CoachID, nil
}

// openSession issues a fresh token pair for the coach.
func (s *AuthService) openSession(ctx context.Context, coach *domain.Coach) (*LoginResult, error) {
	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	sessionID, err := id.Generate("sess")
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		CoachID:          coach.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokens.RefreshTokenDuration()),
		CreatedAt:        now,
	}
	if err := s.store.Sessions.Create(ctx, sessionID, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(coach)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &LoginResult{
		Coach:        sanitizeCoach(coach),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.AccessTokenDuration().Seconds()),
	}, nil
}

// sanitizeCoach strips fields that must not leave the server.
func sanitizeCoach(coach *domain.Coach) *domain.Coach {
	cp := *coach
	cp.PasswordHash = ""
	return &cp
}
