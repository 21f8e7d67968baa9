package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/domain"
	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/id"
	"github.com/latateni/latateni-server/internal/store"
	"github.com/latateni/latateni-server/internal/validation"
)

// AdminService provisions coach accounts. Only allow-listed admins reach
// these operations; the API layer enforces that.
type AdminService struct {
	store     *store.Store
	cfg       *config.Config
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(st *store.Store, cfg *config.Config, validator *validation.Validator, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:     st,
		cfg:       cfg,
		validator: validator,
		logger:    logger,
	}
}

// CreateCoachRequest carries the provisioning form fields.
type CreateCoachRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateCoach provisions a new coach account. An email on the admin
// allow-list yields an admin account. Creating a coach never touches the
// caller's own session. A taken email is surfaced specifically.
func (s *AdminService) CreateCoach(ctx context.Context, req CreateCoachRequest) (*domain.Coach, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	coachID, err := id.Generate("coach")
	if err != nil {
		return nil, fmt.Errorf("generate coach id: %w", err)
	}

	coach := &domain.Coach{
		ID:           coachID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsAdmin:      s.cfg.IsAdmin(req.Email),
		CreatedAt:    time.Now(),
	}

	if err := s.store.Coaches.Create(ctx, coachID, coach); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("Der findes allerede en konto med denne email")
		}
		return nil, fmt.Errorf("create coach: %w", err)
	}

	s.logger.Info("coach account created",
		slog.String("coach_id", coachID),
		slog.String("email", coach.Email),
		slog.Bool("is_admin", coach.IsAdmin))

	return sanitizeCoach(coach), nil
}

// ListCoaches returns every coach account, without password hashes.
func (s *AdminService) ListCoaches(ctx context.Context) ([]domain.Coach, error) {
	var coaches []domain.Coach
	for coach, err := range s.store.Coaches.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list coaches: %w", err)
		}
		coaches = append(coaches, *sanitizeCoach(coach))
	}
	return coaches, nil
}
