package testutil

import (
	"path/filepath"
	"testing"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/store"
)

// NewTestStore creates a SQLiteStore in a temporary directory with all
// migrations applied. It automatically closes the store when the test
// completes.
func NewTestStore(t *testing.T, opts ...store.Option) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "schedule.db"), opts...)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// Task builds a valid task with the given activity, category, priority and
// start time. Remaining fields carry fixed, valid values.
func Task(activity, category string, priority int, start string) model.Task {
	t := model.NewTask()
	t.Date = "2024-06-01"
	t.StartTime = start
	t.EndTime = "23:59"
	t.Activity = activity
	t.Category = category
	t.Priority = priority
	return t
}
