package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latateni/latateni-server/internal/store"
)

type TestEntity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"ownerId"`
}

func setupTestStore(t *testing.T) (*store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "entity-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func ownerEntity(s *store.Store) *store.Entity[TestEntity] {
	return store.NewEntity[TestEntity](s, "test:").
		WithIndex("owner", func(e *TestEntity) []string {
			if e.OwnerID == "" {
				return nil
			}
			return []string{e.OwnerID}
		})
}

func TestEntity_Create_Success(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	testData := &TestEntity{ID: "1", Name: "Forehand loop"}

	err := entity.Create(context.Background(), "1", testData)
	require.NoError(t, err)

	retrieved, err := entity.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, testData.ID, retrieved.ID)
	require.Equal(t, testData.Name, retrieved.Name)
}

func TestEntity_Create_AlreadyExists(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "first"})
	require.NoError(t, err)

	err = entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "second"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Get_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	_, err := entity.Get(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_UniqueIndex_Conflict(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:").
		WithUniqueIndexTransform("name",
			func(e *TestEntity) []string { return []string{e.Name} },
			nil)

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "dup"})
	require.NoError(t, err)

	err = entity.Create(context.Background(), "2", &TestEntity{ID: "2", Name: "dup"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_GetByIndex_Transform(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	lower := strings.ToLower

	entity := store.NewEntity[TestEntity](s, "test:").
		WithUniqueIndexTransform("name",
			func(e *TestEntity) []string { return []string{lower(e.Name)} },
			lower)

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "anna"})
	require.NoError(t, err)

	retrieved, err := entity.GetByIndex(context.Background(), "name", "ANNA")
	require.NoError(t, err)
	require.Equal(t, "1", retrieved.ID)
}

func TestEntity_ListByIndex_ScopedToValue(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := ownerEntity(s)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("a%d", i)
		require.NoError(t, entity.Create(ctx, id, &TestEntity{ID: id, Name: "mine", OwnerID: "coach-a"}))
	}
	require.NoError(t, entity.Create(ctx, "b0", &TestEntity{ID: "b0", Name: "theirs", OwnerID: "coach-b"}))

	mine, err := entity.ListByIndex(ctx, "owner", "coach-a")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for _, rec := range mine {
		require.Equal(t, "coach-a", rec.OwnerID)
	}

	theirs, err := entity.ListByIndex(ctx, "owner", "coach-b")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	require.Equal(t, "b0", theirs[0].ID)
}

func TestEntity_ListByIndex_EmptyOwner(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := ownerEntity(s)

	records, err := entity.ListByIndex(context.Background(), "owner", "nobody")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestEntity_Update_ReindexesOwner(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := ownerEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &TestEntity{ID: "1", Name: "x", OwnerID: "coach-a"}))
	require.NoError(t, entity.Update(ctx, "1", &TestEntity{ID: "1", Name: "x", OwnerID: "coach-b"}))

	old, err := entity.ListByIndex(ctx, "owner", "coach-a")
	require.NoError(t, err)
	require.Empty(t, old)

	moved, err := entity.ListByIndex(ctx, "owner", "coach-b")
	require.NoError(t, err)
	require.Len(t, moved, 1)
}

func TestEntity_Update_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Update(context.Background(), "missing", &TestEntity{ID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Delete_RemovesRecordAndIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := ownerEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &TestEntity{ID: "1", Name: "x", OwnerID: "coach-a"}))
	require.NoError(t, entity.Delete(ctx, "1"))

	_, err := entity.Get(ctx, "1")
	require.ErrorIs(t, err, store.ErrNotFound)

	records, err := entity.ListByIndex(ctx, "owner", "coach-a")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestEntity_Delete_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_List_SkipsIndexKeys(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := ownerEntity(s)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("r%d", i)
		require.NoError(t, entity.Create(ctx, id, &TestEntity{ID: id, Name: "n", OwnerID: "coach-a"}))
	}

	count, err := entity.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestStore_AIQuota_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Unknown coach starts at zero.
	quota, err := s.GetAIQuota(ctx, "coach-1")
	require.NoError(t, err)
	require.Equal(t, 0, quota.Count)
	require.Equal(t, int64(0), quota.WindowStart)

	err = s.SetAIQuota(ctx, "coach-1", &store.AIQuota{Count: 7, WindowStart: 1700000000000})
	require.NoError(t, err)

	quota, err = s.GetAIQuota(ctx, "coach-1")
	require.NoError(t, err)
	require.Equal(t, 7, quota.Count)
	require.Equal(t, int64(1700000000000), quota.WindowStart)

	// Quotas are per coach.
	other, err := s.GetAIQuota(ctx, "coach-2")
	require.NoError(t, err)
	require.Equal(t, 0, other.Count)
}
