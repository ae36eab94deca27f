package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nhle/schedule/internal/model"
)

// AllCategories is the filter value that selects every task.
const AllCategories = ""

// AllCategoriesLabel is how the AllCategories filter is shown.
const AllCategoriesLabel = "All categories"

// Star glyphs.
const (
	StarFilled = "★"
	StarEmpty  = "☆"
)

// Categories returns the distinct category values of tasks in first-seen
// order.
func Categories(tasks []model.Task) []string {
	seen := make(map[string]struct{}, len(tasks))
	out := []string{}
	for _, t := range tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

// CategoryLabel returns the display label of a filter value.
func CategoryLabel(category string) string {
	if category == AllCategories {
		return AllCategoriesLabel
	}
	return category
}

// Row is one rendered task.
type Row struct {
	// Index is the task's position in the full list.
	Index int
	Task  model.Task
	Stars string
	// DaysLeft is only meaningful when HasDeadline is set.
	DaysLeft    int
	HasDeadline bool
}

// BuildRows filters tasks by category and sorts them by priority, highest
// first, then by start time. Ties keep list order.
func BuildRows(tasks []model.Task, category string, now time.Time) []Row {
	rows := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		if category != AllCategories && t.Category != category {
			continue
		}
		r := Row{Index: i, Task: t, Stars: Stars(t.Priority)}
		if t.IsDeadline {
			if days, err := DaysLeft(t.Date, now); err == nil {
				r.DaysLeft = days
				r.HasDeadline = true
			}
		}
		rows = append(rows, r)
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		if a.Task.Priority != b.Task.Priority {
			return b.Task.Priority - a.Task.Priority
		}
		return strings.Compare(a.Task.StartTime, b.Task.StartTime)
	})
	return rows
}

// Stars renders priority as five glyphs with the first priority filled.
func Stars(priority int) string {
	priority = max(0, min(priority, model.PriorityMax))
	return strings.Repeat(StarFilled, priority) + strings.Repeat(StarEmpty, model.PriorityMax-priority)
}

// DaysLeft returns the whole days from now until the local midnight that
// starts date, rounded up. Since now falls within today this is the number
// of calendar days between today and date.
func DaysLeft(date string, now time.Time) (int, error) {
	due, err := time.ParseInLocation(model.DateLayout, date, now.Location())
	if err != nil {
		return 0, fmt.Errorf("parsing date %q: %w", date, err)
	}
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int((dueDay.Unix() - today.Unix()) / 86400), nil
}

// CountdownLabel is the short countdown shown beside a row.
func CountdownLabel(daysLeft int) string {
	switch {
	case daysLeft == 0:
		return "due today"
	case daysLeft < 0:
		return fmt.Sprintf("%dd overdue", -daysLeft)
	default:
		return fmt.Sprintf("%dd left", daysLeft)
	}
}

// DeadlineText describes a deadline and its countdown.
func DeadlineText(date string, daysLeft int) string {
	switch {
	case daysLeft == 0:
		return fmt.Sprintf("Deadline: %s - due today", date)
	case daysLeft == 1:
		return fmt.Sprintf("Deadline: %s - 1 day left", date)
	case daysLeft == -1:
		return fmt.Sprintf("Deadline: %s - 1 day overdue", date)
	case daysLeft < 0:
		return fmt.Sprintf("Deadline: %s - %d days overdue", date, -daysLeft)
	default:
		return fmt.Sprintf("Deadline: %s - %d days left", date, daysLeft)
	}
}
