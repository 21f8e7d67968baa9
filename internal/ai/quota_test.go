package ai

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/store"
)

func quotaStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "quota-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQuota_AllowUntilLimit(t *testing.T) {
	q := NewQuota(quotaStore(t), 3, discardLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Allow(ctx, "coach-1"))
		require.NoError(t, q.RecordSuccess(ctx, "coach-1"))
	}

	err := q.Allow(ctx, "coach-1")
	require.ErrorIs(t, err, apperrors.ErrQuotaExceeded)

	// Other coaches are unaffected.
	require.NoError(t, q.Allow(ctx, "coach-2"))
}

func TestQuota_OnlySuccessCounts(t *testing.T) {
	q := NewQuota(quotaStore(t), 2, discardLogger())
	ctx := context.Background()

	// Repeated checks without a recorded success never consume quota.
	for i := 0; i < 10; i++ {
		require.NoError(t, q.Allow(ctx, "coach-1"))
	}

	remaining, err := q.Remaining(ctx, "coach-1")
	require.NoError(t, err)
	require.Equal(t, 2, remaining)
}

func TestQuota_WindowReset(t *testing.T) {
	q := NewQuota(quotaStore(t), 1, discardLogger())
	ctx := context.Background()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return current }

	require.NoError(t, q.Allow(ctx, "coach-1"))
	require.NoError(t, q.RecordSuccess(ctx, "coach-1"))
	require.ErrorIs(t, q.Allow(ctx, "coach-1"), apperrors.ErrQuotaExceeded)

	// Just under 24h: still exhausted.
	current = current.Add(23 * time.Hour)
	require.ErrorIs(t, q.Allow(ctx, "coach-1"), apperrors.ErrQuotaExceeded)

	// Past the window: counter resets.
	current = current.Add(2 * time.Hour)
	require.NoError(t, q.Allow(ctx, "coach-1"))

	remaining, err := q.Remaining(ctx, "coach-1")
	require.NoError(t, err)
	require.Equal(t, 1, remaining)
}

func TestQuota_PersistsAcrossInstances(t *testing.T) {
	s := quotaStore(t)
	ctx := context.Background()

	q1 := NewQuota(s, 5, discardLogger())
	require.NoError(t, q1.RecordSuccess(ctx, "coach-1"))
	require.NoError(t, q1.RecordSuccess(ctx, "coach-1"))

	q2 := NewQuota(s, 5, discardLogger())
	remaining, err := q2.Remaining(ctx, "coach-1")
	require.NoError(t, err)
	require.Equal(t, 3, remaining)
}
