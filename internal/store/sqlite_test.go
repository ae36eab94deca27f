package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/store"
	"github.com/nhle/schedule/tests/testutil"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load without prior data", func(t *testing.T) {
		s := testutil.NewTestStore(t)

		tasks, err := s.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("load after save returns the saved list", func(t *testing.T) {
		s := testutil.NewTestStore(t)

		want := []model.Task{
			testutil.Task("Standup", "Work", 3, "09:00"),
			testutil.Task("Gym", "Health", 1, "18:00"),
			testutil.Task("Standup", "Work", 3, "09:00"),
		}
		want[1].IsDeadline = true
		want[1].Completed = true
		want[1].Note = "leg day"
		want[1].Color = "#aabbcc"

		require.NoError(t, s.Save(ctx, want))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save overwrites", func(t *testing.T) {
		s := testutil.NewTestStore(t)

		require.NoError(t, s.Save(ctx, []model.Task{testutil.Task("a", "x", 1, "08:00")}))
		require.NoError(t, s.Save(ctx, nil))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)

		raw, ok, err := s.Get(ctx, s.Key())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "[]", raw)
	})

	t.Run("malformed content loads empty and is stashed", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		require.NoError(t, s.Set(ctx, store.DefaultKey, "{not json"))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)

		raw, ok, err := s.Get(ctx, store.DefaultKey+".corrupt")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "{not json", raw)
	})

	t.Run("drop corrupt stash", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		dropped, err := s.DropCorrupt(ctx)
		require.NoError(t, err)
		assert.False(t, dropped)

		require.NoError(t, s.Set(ctx, store.DefaultKey, "{not json"))
		_, err = s.Load(ctx)
		require.NoError(t, err)

		dropped, err = s.DropCorrupt(ctx)
		require.NoError(t, err)
		assert.True(t, dropped)

		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{store.DefaultKey}, keys)
	})

	t.Run("wrong shape loads empty", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		require.NoError(t, s.Set(ctx, store.DefaultKey, `[{"date": 5}]`))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("custom key", func(t *testing.T) {
		s := testutil.NewTestStore(t, store.WithKey("jadwal"))
		require.NoError(t, s.Save(ctx, []model.Task{testutil.Task("a", "x", 1, "08:00")}))

		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"jadwal"}, keys)
	})

	t.Run("delete key", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		require.NoError(t, s.Set(ctx, "k", "v"))
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))

		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "schedule.db")

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, []model.Task{testutil.Task("Standup", "Work", 3, "09:00")}))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Standup", got[0].Activity)
}

func TestSQLiteStoreInMemory(t *testing.T) {
	ctx := context.Background()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Save(ctx, []model.Task{testutil.Task("a", "x", 2, "07:00")}))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
