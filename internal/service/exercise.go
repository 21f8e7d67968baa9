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

// ExerciseService manages a coach's exercise bank.
type ExerciseService struct {
	store     *store.Store
	encoder   *media.Encoder
	validator *validation.Validator
	logger    *slog.Logger
}

// NewExerciseService creates a new exercise service.
func NewExerciseService(st *store.Store, encoder *media.Encoder, validator *validation.Validator, logger *slog.Logger) *ExerciseService {
	return &ExerciseService{
		store:     st,
		encoder:   encoder,
		validator: validator,
		logger:    logger,
	}
}

// CreateExerciseRequest carries the exercise form fields.
type CreateExerciseRequest struct {
	Name        string `json:"name" validate:"required"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Benefits    string `json:"benefits"`
	Image       string `json:"image,omitempty"`
}

// Create validates and writes a new exercise.
func (s *ExerciseService) Create(ctx context.Context, ownerID string, req CreateExerciseRequest) (*domain.Exercise, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var image *domain.Image
	if req.Image != "" {
		encoded, err := s.encoder.EncodeDataURI(req.Image)
		if err != nil {
			return nil, apperrors.Validationf("invalid image: %v", err)
		}
		image = encoded
	}

	exerciseID, err := id.Generate("exr")
	if err != nil {
		return nil, fmt.Errorf("generate exercise id: %w", err)
	}

	exercise := &domain.Exercise{
		ID:          exerciseID,
		Name:        req.Name,
		Duration:    req.Duration,
		Description: req.Description,
		Benefits:    req.Benefits,
		Image:       image,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UnixMilli(),
	}

	if err := s.store.Exercises.Create(ctx, exerciseID, exercise); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}

	s.logger.Info("exercise created",
		slog.String("exercise_id", exerciseID),
		slog.String("owner_id", ownerID))

	return exercise, nil
}

// Get returns one of the coach's exercises.
func (s *ExerciseService) Get(ctx context.Context, ownerID, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.store.Exercises.Get(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return exercise, nil
}

// List returns all of the coach's exercises.
func (s *ExerciseService) List(ctx context.Context, ownerID string) ([]domain.Exercise, error) {
	return s.store.Exercises.ListByIndex(ctx, "owner", ownerID)
}

// Delete removes an exercise after explicit confirmation. Programs keep
// their embedded copies; deletion never cascades.
func (s *ExerciseService) Delete(ctx context.Context, ownerID, exerciseID string, confirm bool) error {
	if !confirm {
		return apperrors.Validation("deletion requires confirmation")
	}

	if _, err := s.Get(ctx, ownerID, exerciseID); err != nil {
		return err
	}

	if err := s.store.Exercises.Delete(ctx, exerciseID); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}

	s.logger.Info("exercise deleted",
		slog.String("exercise_id", exerciseID),
		slog.String("owner_id", ownerID))
	return nil
}
