package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/domain"
	"github.com/latateni/latateni-server/internal/id"
	"github.com/latateni/latateni-server/internal/store"
)

// Bootstrap seeds the first admin account from config when no coach exists
// yet. Without it a fresh install has no account that could provision
// others. Runs once at startup; a populated store makes it a no-op.
func Bootstrap(ctx context.Context, st *store.Store, cfg *config.Config, logger *slog.Logger) error {
	count, err := st.Coaches.Count(ctx)
	if err != nil {
		return fmt.Errorf("count coaches: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Admin.BootstrapEmail == "" || cfg.Admin.BootstrapPassword == "" {
		logger.Warn("no coach accounts exist and no bootstrap admin is configured")
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.Admin.BootstrapPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	coachID, err := id.Generate("coach")
	if err != nil {
		return fmt.Errorf("generate coach id: %w", err)
	}

	coach := &domain.Coach{
		ID:           coachID,
		Email:        cfg.Admin.BootstrapEmail,
		PasswordHash: passwordHash,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}

	if err := st.Coaches.Create(ctx, coachID, coach); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info("bootstrap admin created",
		slog.String("coach_id", coachID),
		slog.String("email", coach.Email))
	return nil
}
