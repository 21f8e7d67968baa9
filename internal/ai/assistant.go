package ai

import (
	"context"
	"log/slog"

	"github.com/latateni/latateni-server/internal/domain"
)

// Generator produces text from a prompt. Satisfied by *Client; tests swap in
// a stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Assistant bundles the coach-facing AI helpers. Every helper checks the
// quota before touching the network and records usage only when the provider
// confirmed success.
type Assistant struct {
	generator Generator
	quota     *Quota
	logger    *slog.Logger
}

// NewAssistant creates an Assistant.
func NewAssistant(generator Generator, quota *Quota, logger *slog.Logger) *Assistant {
	return &Assistant{
		generator: generator,
		quota:     quota,
		logger:    logger,
	}
}

func (a *Assistant) generate(ctx context.Context, coachID, prompt string) (string, error) {
	if err := a.quota.Allow(ctx, coachID); err != nil {
		return "", err
	}

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := a.quota.RecordSuccess(ctx, coachID); err != nil {
		// The response is already in hand; losing one tick of bookkeeping is
		// better than failing the request.
		a.logger.Error("failed to record AI usage",
			slog.String("coach_id", coachID),
			slog.String("error", err.Error()))
	}

	return text, nil
}

// SuggestExercises recommends 3-5 exercises from the coach's catalog for a
// player.
func (a *Assistant) SuggestExercises(ctx context.Context, coachID string, player *domain.Player, exercises []domain.Exercise) (string, error) {
	return a.generate(ctx, coachID, SuggestExercisesPrompt(player, exercises))
}

// GenerateProgram produces the text of a training program for the given
// level, total duration, and focus area.
func (a *Assistant) GenerateProgram(ctx context.Context, coachID, level, duration, focus string, exercises []domain.Exercise) (string, error) {
	return a.generate(ctx, coachID, TrainingProgramPrompt(level, duration, focus, exercises))
}

// AnalyzePlayer produces a structured feedback write-up for a player.
func (a *Assistant) AnalyzePlayer(ctx context.Context, coachID string, player *domain.Player) (string, error) {
	return a.generate(ctx, coachID, AnalyzePlayerPrompt(player))
}

// DraftTheoryArticle produces article text for a topic. The draft is returned
// to the caller; nothing is written to the store.
func (a *Assistant) DraftTheoryArticle(ctx context.Context, coachID, topic string, tags []string) (string, error) {
	return a.generate(ctx, coachID, TheoryArticlePrompt(topic, tags))
}

// Remaining returns how many AI requests the coach has left today.
func (a *Assistant) Remaining(ctx context.Context, coachID string) (int, error) {
	return a.quota.Remaining(ctx, coachID)
}
