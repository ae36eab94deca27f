package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ResultMsg reports the user's answer. Aborting the dialog counts as a no.
type ResultMsg struct {
	Confirmed bool
}

type formBindings struct {
	confirm bool
}

// Model is a yes/no dialog for destructive actions.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new confirm dialog model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// Start opens the dialog. The answer defaults to no.
func (m *Model) Start(title, description, affirmative string) tea.Cmd {
	m.fb.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
	return m.form.Init()
}

// Active reports whether the dialog is waiting for an answer.
func (m Model) Active() bool {
	return m.form != nil
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.form = nil
		return m, func() tea.Msg { return ResultMsg{Confirmed: false} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		confirmed := m.fb.confirm
		m.form = nil
		return m, func() tea.Msg { return ResultMsg{Confirmed: confirmed} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return ResultMsg{Confirmed: false} }
	}
	return m, cmd
}

// View renders the dialog centered in the content area.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m Model) formWidth() int {
	return max(30, min(m.width-8, 60))
}
