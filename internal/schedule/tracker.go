// Package schedule holds the application state of the tracker: the ordered
// task list, its derived category index, the filtered row view and the
// controller that turns form and modal actions into list mutations.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/store"
)

// ErrIndexOutOfRange is returned for a list position that does not exist.
var ErrIndexOutOfRange = errors.New("task index out of range")

// Tracker owns the task list. Every mutation is written to the store before
// it becomes visible; a failed save leaves the list untouched.
type Tracker struct {
	store      store.Store
	tasks      []model.Task
	categories []string
	filter     string
	now        func() time.Time
	log        zerolog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now for deadline countdowns.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the tracker's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// New hydrates a Tracker from s.
func New(ctx context.Context, s store.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: s,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	tasks, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	t.tasks = tasks
	t.refresh()

	t.log.Debug().Int("count", len(tasks)).Msg("tracker hydrated")
	return t, nil
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Len returns the number of tasks.
func (t *Tracker) Len() int {
	return len(t.tasks)
}

// Tasks returns a copy of the list in stored order.
func (t *Tracker) Tasks() []model.Task {
	return slices.Clone(t.tasks)
}

// At returns a copy of the task at list position i.
func (t *Tracker) At(i int) (model.Task, error) {
	if err := t.checkIndex(i); err != nil {
		return model.Task{}, err
	}
	return t.tasks[i], nil
}

// Add appends task to the list.
func (t *Tracker) Add(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	next := append(slices.Clone(t.tasks), task)
	if err := t.commit(ctx, next); err != nil {
		return err
	}
	t.log.Debug().Int("index", len(next)-1).Str("activity", task.Activity).Msg("task added")
	return nil
}

// Replace overwrites the task at list position i in one step.
func (t *Tracker) Replace(ctx context.Context, i int, task model.Task) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return err
	}
	next := slices.Clone(t.tasks)
	next[i] = task
	if err := t.commit(ctx, next); err != nil {
		return err
	}
	t.log.Debug().Int("index", i).Str("activity", task.Activity).Msg("task replaced")
	return nil
}

// Delete removes the task at list position i. The remaining tasks keep
// their relative order.
func (t *Tracker) Delete(ctx context.Context, i int) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	next := slices.Delete(slices.Clone(t.tasks), i, i+1)
	if err := t.commit(ctx, next); err != nil {
		return err
	}
	t.log.Debug().Int("index", i).Msg("task deleted")
	return nil
}

// SetCompleted sets the completed flag of the task at list position i.
func (t *Tracker) SetCompleted(ctx context.Context, i int, completed bool) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	next := slices.Clone(t.tasks)
	next[i].Completed = completed
	if err := t.commit(ctx, next); err != nil {
		return err
	}
	t.log.Debug().Int("index", i).Bool("completed", completed).Msg("task completion set")
	return nil
}

// Clear removes every task.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.commit(ctx, []model.Task{}); err != nil {
		return err
	}
	t.log.Debug().Msg("tasks cleared")
	return nil
}

// SetAll replaces the whole list, validating every task first.
func (t *Tracker) SetAll(ctx context.Context, tasks []model.Task) error {
	for i, task := range tasks {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	next := slices.Clone(tasks)
	if next == nil {
		next = []model.Task{}
	}
	if err := t.commit(ctx, next); err != nil {
		return err
	}
	t.log.Debug().Int("count", len(next)).Msg("task list replaced")
	return nil
}

// Categories returns the distinct categories in first-seen order.
func (t *Tracker) Categories() []string {
	return slices.Clone(t.categories)
}

// Filter returns the selected category; AllCategories selects every task.
func (t *Tracker) Filter() string {
	return t.filter
}

// SetFilter selects a category. Unknown categories select every task.
func (t *Tracker) SetFilter(category string) {
	if category != AllCategories && !slices.Contains(t.categories, category) {
		category = AllCategories
	}
	t.filter = category
}

// CycleFilter advances the filter through the sentinel and each category,
// wrapping around, and returns the new selection.
func (t *Tracker) CycleFilter(step int) string {
	options := append([]string{AllCategories}, t.categories...)
	cur := slices.Index(options, t.filter)
	if cur < 0 {
		cur = 0
	}
	n := len(options)
	t.filter = options[((cur+step)%n+n)%n]
	return t.filter
}

// Rows renders the filtered, sorted view at the tracker clock's time.
func (t *Tracker) Rows() []Row {
	return BuildRows(t.tasks, t.filter, t.now())
}

func (t *Tracker) checkIndex(i int) error {
	if i < 0 || i >= len(t.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(t.tasks))
	}
	return nil
}

// commit persists next and, only on success, makes it the current list.
func (t *Tracker) commit(ctx context.Context, next []model.Task) error {
	if err := t.store.Save(ctx, next); err != nil {
		t.log.Error().Err(err).Msg("saving tasks")
		return fmt.Errorf("saving tasks: %w", err)
	}
	t.tasks = next
	t.refresh()
	return nil
}

func (t *Tracker) refresh() {
	t.categories = Categories(t.tasks)
	if t.filter != AllCategories && !slices.Contains(t.categories, t.filter) {
		t.filter = AllCategories
	}
}
