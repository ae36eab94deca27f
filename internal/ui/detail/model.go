package detail

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/schedule/internal/keys"
	"github.com/nhle/schedule/internal/schedule"
	"github.com/nhle/schedule/internal/theme"
)

// BackMsg signals the parent to close the modal.
type BackMsg struct{}

// ToggleCompletedMsg asks for the open task's completed flag to be set.
type ToggleCompletedMsg struct {
	Completed bool
}

// EditMsg asks for the open task to be loaded into the form.
type EditMsg struct{}

// DeleteMsg asks for the open task to be removed.
type DeleteMsg struct{}

// Model is the task modal.
type Model struct {
	detail   *schedule.Detail
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new modal model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(modalWidth(width), height-4)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.detail != nil {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Toggle):
			completed := !m.detail.Completed
			return m, func() tea.Msg { return ToggleCompletedMsg{Completed: completed} }

		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditMsg{} }

		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteMsg{} }
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the modal centered in the content area.
func (m Model) View() string {
	if m.detail == nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.HelpStyle.Render("No task selected"))
	}

	panel := theme.DetailPanelStyle.
		BorderForeground(theme.Accent(m.detail.Color)).
		Render(m.viewport.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// SetDetail shows d, keeping the scroll position when the same task is
// refreshed.
func (m *Model) SetDetail(d schedule.Detail) {
	same := m.detail != nil && m.detail.Index == d.Index
	m.detail = &d
	m.viewport.SetContent(m.renderContent())
	if !same {
		m.viewport.GotoTop()
	}
}

// Clear drops the shown task.
func (m *Model) Clear() {
	m.detail = nil
	m.viewport.SetContent("")
}

// SetSize updates the modal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = modalWidth(width)
	m.viewport.Height = max(height-4, 3)
	if m.detail != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

// modalWidth clamps the inner modal width between 30 and 80.
func modalWidth(termWidth int) int {
	return max(30, min(termWidth-8, 80))
}

// renderContent builds the modal body for the viewport.
func (m Model) renderContent() string {
	d := m.detail
	if d == nil {
		return ""
	}

	field := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, theme.LabelStyle.Render(label), value)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent(d.Color))

	sections := []string{
		titleStyle.Render(d.Activity),
		"",
		field("Time", d.TimeRange),
		field("Category", d.Category),
		field("Priority", theme.StarStyle.Render(schedule.Stars(d.Priority))),
	}
	if d.Deadline != "" {
		style := theme.DeadlineStyle
		if strings.Contains(d.Deadline, "overdue") {
			style = theme.OverdueStyle
		}
		sections = append(sections, field("Deadline", style.Render(strings.TrimPrefix(d.Deadline, "Deadline: "))))
	}

	check := "[ ]"
	if d.Completed {
		check = "[x]"
	}
	sections = append(sections, field("Done", check))

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	sections = append(sections, "", sepStyle.Render(strings.Repeat("─", modalWidth(m.width)-2)), "")
	sections = append(sections, theme.LabelStyle.Render("Note"), renderNote(d.Note, modalWidth(m.width)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNote renders the note as markdown. The placeholder and notes that
// fail to render are shown as plain text.
func renderNote(note string, width int) string {
	if note == schedule.NotePlaceholder {
		return theme.HelpStyle.Render(note)
	}

	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return note
	}
	out, err := r.Render(note)
	if err != nil {
		return note
	}
	return strings.Trim(out, "\n")
}
