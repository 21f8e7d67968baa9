package sse_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/domain"
	"github.com/latateni/latateni-server/internal/live"
	"github.com/latateni/latateni-server/internal/sse"
	"github.com/latateni/latateni-server/internal/store"
)

func setupHandler(t *testing.T) (*sse.Handler, *store.Store) {
	t.Helper()

	dir, err := os.MkdirTemp("", "latateni-sse-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(dir, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	manager := sse.NewManager(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go manager.Start(ctx)

	liveManager := live.NewManager(st, logger, manager)
	t.Cleanup(liveManager.Close)

	return sse.NewHandler(manager, liveManager, logger), st
}

// streamRequest runs the handler with a short deadline and returns what was
// written to the stream before the request context expired.
func streamRequest(t *testing.T, h *sse.Handler, claims *auth.AccessClaims) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/stream", nil).WithContext(ctx)
	if claims != nil {
		req = req.WithContext(auth.ContextWithClaims(req.Context(), claims))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestHandler_RejectsUnauthenticated(t *testing.T) {
	h, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/stream", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ReplaysAllCollectionsOnConnect(t *testing.T) {
	h, st := setupHandler(t)
	ctx := context.Background()

	player := &domain.Player{ID: "ply-1", Name: "Mikkel", OwnerID: "coach-a"}
	require.NoError(t, st.Players.Create(ctx, player.ID, player))

	body := streamRequest(t, h, &auth.AccessClaims{CoachID: "coach-a", Email: "anna@club.dk"})

	assert.Contains(t, body, "event: connected")
	// At least one snapshot per collection: four from replay, plus any the
	// freshly bound watches push before the request deadline.
	assert.GreaterOrEqual(t, strings.Count(body, "event: snapshot"), 4)
	for _, collection := range []string{
		live.CollectionPlayers,
		live.CollectionExercises,
		live.CollectionPrograms,
		live.CollectionTheory,
	} {
		assert.Contains(t, body, `"collection":"`+collection+`"`)
	}
}

func TestHandler_StreamCarriesOnlyOwnCoachData(t *testing.T) {
	h, st := setupHandler(t)
	ctx := context.Background()

	mine := &domain.Player{ID: "ply-mine", Name: "Mikkel", OwnerID: "coach-a"}
	require.NoError(t, st.Players.Create(ctx, mine.ID, mine))
	theirs := &domain.Player{ID: "ply-theirs", Name: "Sofie", OwnerID: "coach-b"}
	require.NoError(t, st.Players.Create(ctx, theirs.ID, theirs))

	// First connect binds the session; snapshots may still be settling, so
	// connect twice and inspect the second stream's replay.
	claims := &auth.AccessClaims{CoachID: "coach-a", Email: "anna@club.dk"}
	streamRequest(t, h, claims)
	body := streamRequest(t, h, claims)

	assert.Contains(t, body, "ply-mine")
	assert.NotContains(t, body, "ply-theirs")
}
