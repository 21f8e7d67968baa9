package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/service"
	"github.com/latateni/latateni-server/internal/store"
)

func newPlayerService(t *testing.T) (*service.PlayerService, *testEnv) {
	env := newTestEnv(t)
	return service.NewPlayerService(env.store, env.encoder, env.validator, env.logger), env
}

func TestPlayerService_Create(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := context.Background()

	player, err := svc.Create(ctx, "coach-a", service.CreatePlayerRequest{
		Name:  "Anna Andersen",
		Level: "Øvet",
		Hand:  "Venstre",
		Tags:  " offensiv, spin , offensiv ",
	})
	require.NoError(t, err)

	require.NotEmpty(t, player.ID)
	require.Equal(t, "coach-a", player.OwnerID)
	require.NotZero(t, player.CreatedAt)

	// Comma list is trimmed and order-preserving; duplicates are kept as
	// entered.
	require.Equal(t, []string{"offensiv", "spin", "offensiv"}, player.Tags)

	stored, err := svc.Get(ctx, "coach-a", player.ID)
	require.NoError(t, err)
	require.Equal(t, player.Name, stored.Name)
}

func TestPlayerService_Create_RequiresName(t *testing.T) {
	svc, env := newPlayerService(t)

	_, err := svc.Create(context.Background(), "coach-a", service.CreatePlayerRequest{Tags: "a,b"})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	// Validation happens before any write.
	count, countErr := env.store.Players.Count(context.Background())
	require.NoError(t, countErr)
	require.Zero(t, count)
}

func TestPlayerService_Create_WithImage(t *testing.T) {
	svc, _ := newPlayerService(t)

	player, err := svc.Create(context.Background(), "coach-a", service.CreatePlayerRequest{
		Name:  "Anna",
		Image: pngDataURI(t, 40, 40),
	})
	require.NoError(t, err)
	require.NotNil(t, player.Image)
	require.Contains(t, player.Image.Data, "data:image/png;base64,")
	require.NotEmpty(t, player.Image.Placeholder)
}

func TestPlayerService_Create_BadImageWritesNothing(t *testing.T) {
	svc, env := newPlayerService(t)

	_, err := svc.Create(context.Background(), "coach-a", service.CreatePlayerRequest{
		Name:  "Anna",
		Image: "data:image/png;base64,bm90IGFuIGltYWdl",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	count, countErr := env.store.Players.Count(context.Background())
	require.NoError(t, countErr)
	require.Zero(t, count)
}

func TestPlayerService_Get_ForeignOwnerIsNotFound(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := context.Background()

	player, err := svc.Create(ctx, "coach-a", service.CreatePlayerRequest{Name: "Anna"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "coach-b", player.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPlayerService_Delete(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := context.Background()

	player, err := svc.Create(ctx, "coach-a", service.CreatePlayerRequest{Name: "Anna"})
	require.NoError(t, err)

	// Without confirmation nothing happens.
	err = svc.Delete(ctx, "coach-a", player.ID, false)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = svc.Get(ctx, "coach-a", player.ID)
	require.NoError(t, err)

	// Confirmed delete removes the record.
	require.NoError(t, svc.Delete(ctx, "coach-a", player.ID, true))
	_, err = svc.Get(ctx, "coach-a", player.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting an unknown id is an error, not a silent success.
	err = svc.Delete(ctx, "coach-a", "ply-missing", true)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPlayerService_Delete_ForeignOwner(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := context.Background()

	player, err := svc.Create(ctx, "coach-a", service.CreatePlayerRequest{Name: "Anna"})
	require.NoError(t, err)

	err = svc.Delete(ctx, "coach-b", player.ID, true)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Record untouched.
	_, err = svc.Get(ctx, "coach-a", player.ID)
	require.NoError(t, err)
}

func TestPlayerService_List_ScopedToOwner(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "coach-a", service.CreatePlayerRequest{Name: "Anna"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "coach-b", service.CreatePlayerRequest{Name: "Bo"})
	require.NoError(t, err)

	players, err := svc.List(ctx, "coach-a")
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, "Anna", players[0].Name)
}
