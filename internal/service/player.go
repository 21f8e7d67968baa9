// Package service implements the mutation gateways between the API and the
// store. Services validate input without I/O, fully prepare records
// (including image encoding) before issuing a single store write, and stamp
// ownership from the caller's verified identity.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/latateni/latateni-server/internal/domain"
	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/id"
	"github.com/latateni/latateni-server/internal/media"
	"github.com/latateni/latateni-server/internal/store"
	"github.com/latateni/latateni-server/internal/validation"
)

// PlayerService manages a coach's player profiles.
type PlayerService struct {
	store     *store.Store
	encoder   *media.Encoder
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPlayerService creates a new player service.
func NewPlayerService(st *store.Store, encoder *media.Encoder, validator *validation.Validator, logger *slog.Logger) *PlayerService {
	return &PlayerService{
		store:     st,
		encoder:   encoder,
		validator: validator,
		logger:    logger,
	}
}

// CreatePlayerRequest carries the player form fields. Tags is comma-separated
// free text; Image is an optional base64 data URI.
type CreatePlayerRequest struct {
	Name       string `json:"name" validate:"required"`
	Age        string `json:"age"`
	Height     string `json:"height"`
	Level      string `json:"level"`
	Rating     string `json:"rating"`
	Hand       string `json:"hand"`
	Grip       string `json:"grip"`
	Style      string `json:"style"`
	Spin       string `json:"spin"`
	Motivation string `json:"motivation"`
	Notes      string `json:"notes"`
	Tags       string `json:"tags"`
	Image      string `json:"image,omitempty"`
}

// Create validates the request, encodes the attached image if any, and
// writes the player in a single store operation. Validation failures happen
// before any I/O.
func (s *PlayerService) Create(ctx context.Context, ownerID string, req CreatePlayerRequest) (*domain.Player, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Image encoding completes before the write; a bad attachment fails the
	// whole create and nothing is stored.
	var image *domain.Image
	if req.Image != "" {
		encoded, err := s.encoder.EncodeDataURI(req.Image)
		if err != nil {
			return nil, apperrors.Validationf("invalid image: %v", err)
		}
		image = encoded
	}

	playerID, err := id.Generate("ply")
	if err != nil {
		return nil, fmt.Errorf("generate player id: %w", err)
	}

	player := &domain.Player{
		ID:         playerID,
		Name:       req.Name,
		Age:        req.Age,
		Height:     req.Height,
		Level:      req.Level,
		Rating:     req.Rating,
		Hand:       req.Hand,
		Grip:       req.Grip,
		Style:      req.Style,
		Spin:       req.Spin,
		Motivation: req.Motivation,
		Notes:      req.Notes,
		Tags:       domain.SplitCommaList(req.Tags),
		Image:      image,
		OwnerID:    ownerID,
		CreatedAt:  time.Now().UnixMilli(),
	}

	if err := s.store.Players.Create(ctx, playerID, player); err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	s.logger.Info("player created",
		slog.String("player_id", playerID),
		slog.String("owner_id", ownerID))

	return player, nil
}

// Get returns one of the coach's players. Players of other coaches are
// reported as not found.
func (s *PlayerService) Get(ctx context.Context, ownerID, playerID string) (*domain.Player, error) {
	player, err := s.store.Players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return player, nil
}

// List returns all of the coach's players in store iteration order.
func (s *PlayerService) List(ctx context.Context, ownerID string) ([]domain.Player, error) {
	return s.store.Players.ListByIndex(ctx, "owner", ownerID)
}

// Delete removes a player. The request must carry an explicit confirmation;
// deleting an unknown or foreign id fails without touching anything.
func (s *PlayerService) Delete(ctx context.Context, ownerID, playerID string, confirm bool) error {
	if !confirm {
		return apperrors.Validation("deletion requires confirmation")
	}

	if _, err := s.Get(ctx, ownerID, playerID); err != nil {
		return err
	}

	if err := s.store.Players.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.Info("player deleted",
		slog.String("player_id", playerID),
		slog.String("owner_id", ownerID))
	return nil
}
