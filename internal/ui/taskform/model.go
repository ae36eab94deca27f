package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/schedule"
	"github.com/nhle/schedule/internal/theme"
)

// SubmitMsg is dispatched when the form is completed.
type SubmitMsg struct {
	Draft schedule.Draft
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// ColorPresets are offered as suggestions in the color field.
var ColorPresets = []string{
	model.DefaultColor,
	"#ff6b6b",
	"#ffa94d",
	"#ffd93d",
	"#6bcb77",
	"#5b9bd5",
	"#cc5de8",
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	date       string
	startTime  string
	endTime    string
	activity   string
	note       string
	category   string
	isDeadline bool
	color      string
	priority   int
}

func (fb *formBindings) load(d schedule.Draft) {
	fb.date = d.Date
	fb.startTime = d.StartTime
	fb.endTime = d.EndTime
	fb.activity = d.Activity
	fb.note = d.Note
	fb.category = d.Category
	fb.isDeadline = d.IsDeadline
	fb.color = d.Color
	fb.priority = d.Priority
	if fb.color == "" {
		fb.color = model.DefaultColor
	}
	if fb.priority < model.PriorityMin || fb.priority > model.PriorityMax {
		fb.priority = model.PriorityMin
	}
}

func (fb *formBindings) draft() schedule.Draft {
	return schedule.Draft{
		Date:       strings.TrimSpace(fb.date),
		StartTime:  strings.TrimSpace(fb.startTime),
		EndTime:    strings.TrimSpace(fb.endTime),
		Activity:   strings.TrimSpace(fb.activity),
		Note:       fb.note,
		Category:   strings.TrimSpace(fb.category),
		IsDeadline: fb.isDeadline,
		Color:      strings.TrimSpace(fb.color),
		Priority:   fb.priority,
	}
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	editMode   bool
	categories []string
	width      int
	height     int
}

// New creates a new task form model.
func New(width, height int) Model {
	fb := &formBindings{}
	fb.load(schedule.NewDraft())
	return Model{
		fb:     fb,
		width:  width,
		height: height,
	}
}

// StartCreate opens the form for a new task, prefilled from d.
func (m *Model) StartCreate(d schedule.Draft, categories []string) tea.Cmd {
	m.editMode = false
	return m.start(d, categories)
}

// StartEdit opens the form over an existing task's values.
func (m *Model) StartEdit(d schedule.Draft, categories []string) tea.Cmd {
	m.editMode = true
	return m.start(d, categories)
}

func (m *Model) start(d schedule.Draft, categories []string) tea.Cmd {
	m.categories = categories
	m.fb.load(d)
	m.form = m.buildForm()
	return m.form.Init()
}

// Draft returns the values currently in the form.
func (m Model) Draft() schedule.Draft {
	return m.fb.draft()
}

// Editing reports whether the form edits an existing task.
func (m Model) Editing() bool {
	return m.editMode
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		d := m.fb.draft()
		m.form = nil
		return m, func() tea.Msg { return SubmitMsg{Draft: d} }
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	swatch := lipgloss.NewStyle().
		Background(theme.Accent(m.fb.color)).
		Render("    ")

	content := titleStyle.Render(titleText) + "  " + swatch + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth()).WithHeight(m.formHeight())
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateLayout("Date", model.DateLayout, "YYYY-MM-DD")),
			huh.NewInput().
				Title("Start").
				Placeholder("HH:MM").
				Value(&m.fb.startTime).
				Validate(validateLayout("Start", model.TimeLayout, "HH:MM")),
			huh.NewInput().
				Title("End").
				Placeholder("HH:MM").
				Value(&m.fb.endTime).
				Validate(validateLayout("End", model.TimeLayout, "HH:MM")),
			huh.NewInput().
				Title("Activity").
				Placeholder("What is it?").
				Value(&m.fb.activity).
				Validate(validateRequired("Activity")),
			huh.NewText().
				Title("Note").
				Placeholder("Optional, markdown allowed").
				Value(&m.fb.note),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Placeholder("Work, Home, ...").
				Suggestions(m.categories).
				Value(&m.fb.category).
				Validate(validateRequired("Category")),
			huh.NewConfirm().
				Title("Deadline").
				Description("Count down the days until the date").
				Affirmative("Yes").
				Negative("No").
				Value(&m.fb.isDeadline),
			huh.NewInput().
				Title("Color").
				Placeholder(model.DefaultColor).
				Suggestions(ColorPresets).
				Value(&m.fb.color).
				Validate(validateColor),
			huh.NewSelect[int]().
				Title("Priority").
				Options(priorityOptions()...).
				Value(&m.fb.priority),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func priorityOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, model.PriorityMax)
	for p := model.PriorityMax; p >= model.PriorityMin; p-- {
		opts = append(opts, huh.NewOption(schedule.Stars(p), p))
	}
	return opts
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateLayout(fieldName, layout, hint string) func(string) error {
	required := validateRequired(fieldName)
	return func(s string) error {
		if err := required(s); err != nil {
			return err
		}
		if _, err := time.Parse(layout, strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("invalid %s, use %s", strings.ToLower(fieldName), hint)
		}
		return nil
	}
}

func validateColor(s string) error {
	if !model.IsHexColor(strings.TrimSpace(s)) {
		return fmt.Errorf("invalid color, use #rrggbb")
	}
	return nil
}
