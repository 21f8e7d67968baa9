package ai

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/store"
)

// quotaWindow is the rolling window the daily limit applies to.
const quotaWindow = 24 * time.Hour

// Quota enforces the per-coach request cap. The counter and window start are
// persisted in the store, so the cap survives restarts. The counter is only
// incremented after a confirmed upstream success; failed calls cost nothing.
type Quota struct {
	store  *store.Store
	limit  int
	logger *slog.Logger
	now    func() time.Time
}

// NewQuota creates a quota enforcing limit requests per rolling 24h window.
func NewQuota(st *store.Store, limit int, logger *slog.Logger) *Quota {
	return &Quota{
		store:  st,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

// load reads the coach's quota, resetting it when the window has lapsed.
// The reset is persisted so Remaining and Allow agree across restarts.
func (q *Quota) load(ctx context.Context, coachID string) (*store.AIQuota, error) {
	quota, err := q.store.GetAIQuota(ctx, coachID)
	if err != nil {
		return nil, err
	}

	nowMs := q.now().UnixMilli()
	if nowMs-quota.WindowStart > quotaWindow.Milliseconds() {
		quota = &store.AIQuota{Count: 0, WindowStart: nowMs}
		if err := q.store.SetAIQuota(ctx, coachID, quota); err != nil {
			return nil, err
		}
	}
	return quota, nil
}

// Allow reports whether the coach may issue another request. It is checked
// before any network call; an exhausted quota never reaches the provider.
func (q *Quota) Allow(ctx context.Context, coachID string) error {
	quota, err := q.load(ctx, coachID)
	if err != nil {
		return err
	}

	if quota.Count >= q.limit {
		q.logger.Info("AI quota exhausted",
			slog.String("coach_id", coachID),
			slog.Int("count", quota.Count))
		return apperrors.QuotaExceeded("Du har nået dagens grænse for AI forespørgsler. Prøv igen i morgen!")
	}
	return nil
}

// RecordSuccess increments the coach's counter after a confirmed success.
func (q *Quota) RecordSuccess(ctx context.Context, coachID string) error {
	quota, err := q.load(ctx, coachID)
	if err != nil {
		return err
	}

	quota.Count++
	return q.store.SetAIQuota(ctx, coachID, quota)
}

// Remaining returns how many requests the coach has left in the current
// window.
func (q *Quota) Remaining(ctx context.Context, coachID string) (int, error) {
	quota, err := q.load(ctx, coachID)
	if err != nil {
		return 0, err
	}
	return max(q.limit-quota.Count, 0), nil
}
