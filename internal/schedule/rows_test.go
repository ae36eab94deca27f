package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/tests/testutil"
)

func TestCategories(t *testing.T) {
	tasks := []model.Task{
		testutil.Task("a", "Work", 1, "09:00"),
		testutil.Task("b", "Home", 1, "09:00"),
		testutil.Task("c", "Work", 1, "09:00"),
		testutil.Task("d", "Gym", 1, "09:00"),
	}
	assert.Equal(t, []string{"Work", "Home", "Gym"}, Categories(tasks))
	assert.Equal(t, []string{}, Categories(nil))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, AllCategoriesLabel, CategoryLabel(AllCategories))
	assert.Equal(t, "Work", CategoryLabel("Work"))
}

func TestStars(t *testing.T) {
	tests := []struct {
		priority int
		want     string
	}{
		{1, "★☆☆☆☆"},
		{3, "★★★☆☆"},
		{5, "★★★★★"},
		{0, "☆☆☆☆☆"},
		{9, "★★★★★"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.priority), "priority %d", tt.priority)
	}
}

func TestBuildRowsSortsByPriorityThenStart(t *testing.T) {
	tasks := []model.Task{
		testutil.Task("late", "Work", 2, "14:00"),
		testutil.Task("low", "Work", 1, "07:00"),
		testutil.Task("early", "Work", 2, "08:30"),
		testutil.Task("top", "Home", 5, "23:00"),
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := BuildRows(tasks, AllCategories, now)
	require.Len(t, rows, 4)

	var got []string
	for _, r := range rows {
		got = append(got, r.Task.Activity)
	}
	assert.Equal(t, []string{"top", "early", "late", "low"}, got)
	assert.Equal(t, []int{3, 2, 0, 1}, []int{rows[0].Index, rows[1].Index, rows[2].Index, rows[3].Index})
}

func TestBuildRowsTieBreakIgnoresInsertionOrder(t *testing.T) {
	a := testutil.Task("a", "Work", 3, "10:00")
	b := testutil.Task("b", "Work", 3, "09:00")
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, tasks := range [][]model.Task{{a, b}, {b, a}} {
		rows := BuildRows(tasks, AllCategories, now)
		require.Len(t, rows, 2)
		assert.Equal(t, "b", rows[0].Task.Activity)
		assert.Equal(t, "a", rows[1].Task.Activity)
	}
}

func TestBuildRowsKeepsListOrderForEqualKeys(t *testing.T) {
	first := testutil.Task("same", "Work", 2, "09:00")
	second := testutil.Task("same", "Work", 2, "09:00")
	second.Note = "second"
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := BuildRows([]model.Task{first, second}, AllCategories, now)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, "second", rows[1].Task.Note)
}

func TestBuildRowsFiltersByCategory(t *testing.T) {
	tasks := []model.Task{
		testutil.Task("a", "Work", 1, "09:00"),
		testutil.Task("b", "Home", 1, "09:00"),
		testutil.Task("c", "Work", 4, "09:00"),
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := BuildRows(tasks, "Work", now)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, 0, rows[1].Index)

	assert.Empty(t, BuildRows(tasks, "Nope", now))
	assert.Len(t, BuildRows(tasks, AllCategories, now), 3)
}

func TestBuildRowsDeadline(t *testing.T) {
	deadline := testutil.Task("due", "Work", 1, "09:00")
	deadline.Date = "2024-06-04"
	deadline.IsDeadline = true
	plain := testutil.Task("plain", "Work", 1, "10:00")

	now := time.Date(2024, 6, 1, 18, 45, 0, 0, time.UTC)
	rows := BuildRows([]model.Task{deadline, plain}, AllCategories, now)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].HasDeadline)
	assert.Equal(t, 3, rows[0].DaysLeft)
	assert.False(t, rows[1].HasDeadline)
}

func TestDaysLeft(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		date string
		now  time.Time
		want int
	}{
		{"today plus three at midnight", "2024-06-04", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3},
		{"today plus three at noon", "2024-06-04", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), 3},
		{"today plus three just before midnight", "2024-06-04", time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC), 3},
		{"today", "2024-06-01", time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), 0},
		{"yesterday", "2024-05-31", time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), -1},
		{"across a month", "2024-07-01", time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC), 1},
		{"across spring forward", "2024-03-11", time.Date(2024, 3, 9, 20, 0, 0, 0, newYork), 2},
		{"across fall back", "2024-11-04", time.Date(2024, 11, 2, 1, 0, 0, 0, newYork), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysLeft(tt.date, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = DaysLeft("06/04/2024", time.Now())
	assert.Error(t, err)
}

func TestDeadlineText(t *testing.T) {
	assert.Equal(t, "Deadline: 2024-06-04 - 3 days left", DeadlineText("2024-06-04", 3))
	assert.Equal(t, "Deadline: 2024-06-02 - 1 day left", DeadlineText("2024-06-02", 1))
	assert.Equal(t, "Deadline: 2024-06-01 - due today", DeadlineText("2024-06-01", 0))
	assert.Equal(t, "Deadline: 2024-05-31 - 1 day overdue", DeadlineText("2024-05-31", -1))
	assert.Equal(t, "Deadline: 2024-05-29 - 3 days overdue", DeadlineText("2024-05-29", -3))
}

func TestCountdownLabel(t *testing.T) {
	assert.Equal(t, "3d left", CountdownLabel(3))
	assert.Equal(t, "due today", CountdownLabel(0))
	assert.Equal(t, "2d overdue", CountdownLabel(-2))
}
