package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nhle/schedule/internal/model"
)

// ErrInvalidState is returned for an action the controller's mode does not
// allow, such as deleting with no task open.
var ErrInvalidState = errors.New("invalid controller state")

// NotePlaceholder is shown in place of an empty note.
const NotePlaceholder = "none"

// Mode is the controller state.
type Mode int

const (
	ModeClosed Mode = iota
	ModeViewing
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Draft holds the create/edit form values, including the star rating and
// color selection.
type Draft struct {
	Date       string
	StartTime  string
	EndTime    string
	Activity   string
	Note       string
	Category   string
	IsDeadline bool
	Color      string
	Priority   int
}

// NewDraft returns an empty form with the default rating and color.
func NewDraft() Draft {
	return Draft{Color: model.DefaultColor, Priority: model.PriorityMin}
}

// DraftFrom fills a form from an existing task.
func DraftFrom(t model.Task) Draft {
	return Draft{
		Date:       t.Date,
		StartTime:  t.StartTime,
		EndTime:    t.EndTime,
		Activity:   t.Activity,
		Note:       t.Note,
		Category:   t.Category,
		IsDeadline: t.IsDeadline,
		Color:      t.Color,
		Priority:   t.Priority,
	}
}

// Task builds an uncompleted task from the form values.
func (d Draft) Task() model.Task {
	color := d.Color
	if color != "" && !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return model.Task{
		Date:       strings.TrimSpace(d.Date),
		StartTime:  model.CanonicalTime(strings.TrimSpace(d.StartTime)),
		EndTime:    model.CanonicalTime(strings.TrimSpace(d.EndTime)),
		Activity:   strings.TrimSpace(d.Activity),
		Note:       d.Note,
		Category:   strings.TrimSpace(d.Category),
		IsDeadline: d.IsDeadline,
		Color:      strings.ToLower(color),
		Priority:   d.Priority,
	}
}

// Detail is the content of the task modal.
type Detail struct {
	Index     int
	TimeRange string
	Activity  string
	Note      string
	Category  string
	// Deadline is empty for tasks that are not deadlines.
	Deadline  string
	Color     string
	Priority  int
	Completed bool
}

// Controller drives the form and the task modal over a Tracker. It is not
// safe for concurrent use.
type Controller struct {
	tracker *Tracker
	mode    Mode
	index   int
	draft   Draft
	color   string
	log     zerolog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithDefaultColor sets the color a fresh draft starts with. Invalid values
// are ignored.
func WithDefaultColor(hex string) ControllerOption {
	return func(c *Controller) {
		if model.IsHexColor(hex) {
			c.color = normalizeHex(hex)
		}
	}
}

// NewController returns a closed controller with a fresh draft.
func NewController(t *Tracker, opts ...ControllerOption) *Controller {
	c := &Controller{
		tracker: t,
		mode:    ModeClosed,
		index:   -1,
		color:   model.DefaultColor,
		log:     t.log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.draft = c.newDraft()
	return c
}

func (c *Controller) newDraft() Draft {
	d := NewDraft()
	d.Color = c.color
	return d
}

func normalizeHex(hex string) string {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return strings.ToLower(hex)
}

// Tracker returns the controlled tracker.
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Mode returns the current state.
func (c *Controller) Mode() Mode { return c.mode }

// Index returns the tracked list position, or -1 when closed.
func (c *Controller) Index() int { return c.index }

// Draft returns the current form values.
func (c *Controller) Draft() Draft { return c.draft }

// SetDraft stores form values without submitting them.
func (c *Controller) SetDraft(d Draft) { c.draft = d }

// SelectPriority sets the draft's star rating.
func (c *Controller) SelectPriority(n int) error {
	if n < model.PriorityMin || n > model.PriorityMax {
		return fmt.Errorf("%w: priority %d out of range %d-%d",
			model.ErrInvalidTask, n, model.PriorityMin, model.PriorityMax)
	}
	c.draft.Priority = n
	return nil
}

// SelectColor sets the draft's color.
func (c *Controller) SelectColor(hex string) error {
	if !model.IsHexColor(hex) {
		return fmt.Errorf("%w: color %q is not #rrggbb", model.ErrInvalidTask, hex)
	}
	c.draft.Color = normalizeHex(hex)
	return nil
}

// Open shows the task at list position i.
func (c *Controller) Open(i int) error {
	if c.mode == ModeEditing {
		return fmt.Errorf("%w: cannot open a task while editing", ErrInvalidState)
	}
	if err := c.tracker.checkIndex(i); err != nil {
		return err
	}
	c.mode = ModeViewing
	c.index = i
	return nil
}

// Detail returns the modal content for the open task.
func (c *Controller) Detail() (Detail, error) {
	if c.mode != ModeViewing {
		return Detail{}, fmt.Errorf("%w: no task open", ErrInvalidState)
	}
	t, err := c.tracker.At(c.index)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Index:     c.index,
		TimeRange: t.TimeRange(),
		Activity:  t.Activity,
		Note:      t.Note,
		Category:  t.Category,
		Color:     t.Color,
		Priority:  t.Priority,
		Completed: t.Completed,
	}
	if strings.TrimSpace(d.Note) == "" {
		d.Note = NotePlaceholder
	}
	if t.IsDeadline {
		if days, err := DaysLeft(t.Date, c.tracker.Now()); err == nil {
			d.Deadline = DeadlineText(t.Date, days)
		}
	}
	return d, nil
}

// SetCompleted updates the open task's completed flag; the modal stays open.
func (c *Controller) SetCompleted(ctx context.Context, completed bool) error {
	if c.mode != ModeViewing {
		return fmt.Errorf("%w: no task open", ErrInvalidState)
	}
	return c.tracker.SetCompleted(ctx, c.index, completed)
}

// Edit loads the open task into the draft. The task stays in the list
// until Submit replaces it.
func (c *Controller) Edit() error {
	if c.mode != ModeViewing {
		return fmt.Errorf("%w: no task open", ErrInvalidState)
	}
	t, err := c.tracker.At(c.index)
	if err != nil {
		return err
	}
	c.draft = DraftFrom(t)
	c.mode = ModeEditing
	c.log.Debug().Int("index", c.index).Msg("editing task")
	return nil
}

// Submit saves d. While editing it replaces the edited task and keeps its
// completed flag; otherwise it appends a new task. On success the draft is
// reset and the controller closes. On failure nothing changes except that d
// becomes the current draft.
func (c *Controller) Submit(ctx context.Context, d Draft) error {
	c.draft = d
	task := d.Task()

	switch c.mode {
	case ModeClosed:
		if err := c.tracker.Add(ctx, task); err != nil {
			return err
		}
	case ModeEditing:
		prev, err := c.tracker.At(c.index)
		if err != nil {
			return err
		}
		task.Completed = prev.Completed
		if err := c.tracker.Replace(ctx, c.index, task); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: cannot submit while %s", ErrInvalidState, c.mode)
	}

	c.reset()
	return nil
}

// Delete removes the open task and closes the modal.
func (c *Controller) Delete(ctx context.Context) error {
	if c.mode != ModeViewing {
		return fmt.Errorf("%w: no task open", ErrInvalidState)
	}
	if err := c.tracker.Delete(ctx, c.index); err != nil {
		return err
	}
	c.mode = ModeClosed
	c.index = -1
	return nil
}

// ClearAll empties the list when confirmed and reports whether it did.
// Declining has no effect.
func (c *Controller) ClearAll(ctx context.Context, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if err := c.tracker.Clear(ctx); err != nil {
		return false, err
	}
	if c.mode != ModeClosed {
		c.reset()
	}
	return true, nil
}

// Cancel abandons the form: the draft is reset and an edit in progress is
// dropped, leaving the original task in place.
func (c *Controller) Cancel() {
	if c.mode == ModeEditing {
		c.log.Debug().Int("index", c.index).Msg("edit abandoned")
	}
	c.reset()
}

// Close leaves the modal without touching the list. Closing an edit
// abandons it like Cancel; otherwise the draft is kept.
func (c *Controller) Close() {
	if c.mode == ModeEditing {
		c.Cancel()
		return
	}
	c.mode = ModeClosed
	c.index = -1
}

func (c *Controller) reset() {
	c.mode = ModeClosed
	c.index = -1
	c.draft = c.newDraft()
}
