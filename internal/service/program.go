package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/domain"
	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/id"
	"github.com/latateni/latateni-server/internal/store"
	"github.com/latateni/latateni-server/internal/validation"
)

// ProgramService manages training programs, including AI-generated ones.
type ProgramService struct {
	store     *store.Store
	assistant *ai.Assistant
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProgramService creates a new program service.
func NewProgramService(st *store.Store, assistant *ai.Assistant, validator *validation.Validator, logger *slog.Logger) *ProgramService {
	return &ProgramService{
		store:     st,
		assistant: assistant,
		validator: validator,
		logger:    logger,
	}
}

// SelectedExercise references an exercise chosen for a program, with an
// optional per-exercise focus note.
type SelectedExercise struct {
	ExerciseID string `json:"exercise_id" validate:"required"`
	Notes      string `json:"notes"`
}

// CreateProgramRequest carries the program form fields. At least one
// exercise must be selected; only the AI path creates exercise-less programs.
type CreateProgramRequest struct {
	Name          string             `json:"name" validate:"required"`
	TotalDuration string             `json:"total_duration"`
	Description   string             `json:"description"`
	Exercises     []SelectedExercise `json:"exercises" validate:"min=1,dive"`
}

// Create validates the request, resolves every selected exercise to a
// denormalized embedded copy, and writes the program in one operation.
// Selections referencing another coach's exercises are rejected.
func (s *ProgramService) Create(ctx context.Context, ownerID string, req CreateProgramRequest) (*domain.TrainingProgram, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	embedded := make([]domain.ProgramExercise, 0, len(req.Exercises))
	for _, sel := range req.Exercises {
		exercise, err := s.store.Exercises.Get(ctx, sel.ExerciseID)
		if err != nil {
			return nil, apperrors.Validationf("unknown exercise: %s", sel.ExerciseID)
		}
		if exercise.OwnerID != ownerID {
			return nil, apperrors.Validationf("unknown exercise: %s", sel.ExerciseID)
		}
		// Copy, not reference: later edits to the exercise bank must not
		// change existing programs.
		embedded = append(embedded, domain.ProgramExercise{
			ExerciseID:   exercise.ID,
			ExerciseName: exercise.Name,
			Duration:     exercise.Duration,
			Notes:        sel.Notes,
		})
	}

	programID, err := id.Generate("prg")
	if err != nil {
		return nil, fmt.Errorf("generate program id: %w", err)
	}

	program := &domain.TrainingProgram{
		ID:            programID,
		Name:          req.Name,
		TotalDuration: req.TotalDuration,
		Description:   req.Description,
		Exercises:     embedded,
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UnixMilli(),
	}

	if err := s.store.Programs.Create(ctx, programID, program); err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	s.logger.Info("program created",
		slog.String("program_id", programID),
		slog.String("owner_id", ownerID),
		slog.Int("exercises", len(embedded)))

	return program, nil
}

// GenerateAIProgramRequest carries the AI generation form fields.
type GenerateAIProgramRequest struct {
	Level    string `json:"level" validate:"required"`
	Duration string `json:"duration" validate:"required"`
	Focus    string `json:"focus" validate:"required"`
}

// CreateAI asks the assistant for a program over the coach's exercise bank
// and stores the result. The generated text becomes the description; the
// record is named after the focus and level, flagged as AI-made, and carries
// no embedded exercises.
func (s *ProgramService) CreateAI(ctx context.Context, ownerID string, req GenerateAIProgramRequest) (*domain.TrainingProgram, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exercises, err := s.store.Exercises.ListByIndex(ctx, "owner", ownerID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	text, err := s.assistant.GenerateProgram(ctx, ownerID, req.Level, req.Duration, req.Focus, exercises)
	if err != nil {
		return nil, err
	}

	programID, err := id.Generate("prg")
	if err != nil {
		return nil, fmt.Errorf("generate program id: %w", err)
	}

	program := &domain.TrainingProgram{
		ID:            programID,
		Name:          fmt.Sprintf("AI: %s (%s)", req.Focus, req.Level),
		TotalDuration: req.Duration,
		Description:   text,
		Exercises:     []domain.ProgramExercise{},
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UnixMilli(),
		IsAI:          true,
	}

	if err := s.store.Programs.Create(ctx, programID, program); err != nil {
		return nil, fmt.Errorf("create AI program: %w", err)
	}

	s.logger.Info("AI program created",
		slog.String("program_id", programID),
		slog.String("owner_id", ownerID),
		slog.String("focus", req.Focus))

	return program, nil
}

// Get returns one of the coach's programs.
func (s *ProgramService) Get(ctx context.Context, ownerID, programID string) (*domain.TrainingProgram, error) {
	program, err := s.store.Programs.Get(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return program, nil
}

// List returns all of the coach's programs.
func (s *ProgramService) List(ctx context.Context, ownerID string) ([]domain.TrainingProgram, error) {
	return s.store.Programs.ListByIndex(ctx, "owner", ownerID)
}

// Delete removes a program after explicit confirmation.
func (s *ProgramService) Delete(ctx context.Context, ownerID, programID string, confirm bool) error {
	if !confirm {
		return apperrors.Validation("deletion requires confirmation")
	}

	if _, err := s.Get(ctx, ownerID, programID); err != nil {
		return err
	}

	if err := s.store.Programs.Delete(ctx, programID); err != nil {
		return fmt.Errorf("delete program: %w", err)
	}

	s.logger.Info("program deleted",
		slog.String("program_id", programID),
		slog.String("owner_id", ownerID))
	return nil
}
