package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/schedule/internal/keys"
	"github.com/nhle/schedule/internal/schedule"
	"github.com/nhle/schedule/internal/theme"
)

// SelectedTaskMsg is sent when a user selects a row to open its task.
type SelectedTaskMsg struct {
	// Index is the task's position in the full list.
	Index int
}

// CycleFilterMsg asks for the category filter to move by Step.
type CycleFilterMsg struct {
	Step int
}

// NewTaskMsg asks for the create form.
type NewTaskMsg struct{}

// ClearAllMsg asks for the clear-all confirmation.
type ClearAllMsg struct{}

// Model is the main task list view component.
type Model struct {
	list          list.Model
	keys          *keys.KeyMap
	rows          []schedule.Row
	filter        string
	showCompleted bool
	width         int
	height        int
}

// New creates a new task list model.
func New(k *keys.KeyMap, showCompleted bool, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-1)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")

	return Model{
		list:          l,
		keys:          k,
		showCompleted: showCompleted,
		width:         width,
		height:        height,
	}
}

// SetRows replaces the displayed rows. filter is the category the rows were
// built for.
func (m *Model) SetRows(rows []schedule.Row, filter string) tea.Cmd {
	m.rows = rows
	m.filter = filter

	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		if r.Task.Completed && !m.showCompleted {
			continue
		}
		items = append(items, RowItem{Row: r})
	}
	return m.list.SetItems(items)
}

// ToggleShowCompleted shows or hides completed tasks.
func (m *Model) ToggleShowCompleted() tea.Cmd {
	m.showCompleted = !m.showCompleted
	return m.SetRows(m.rows, m.filter)
}

// ShowCompleted reports whether completed tasks are listed.
func (m Model) ShowCompleted() bool {
	return m.showCompleted
}

// Selected returns the row under the cursor.
func (m Model) Selected() (schedule.Row, bool) {
	item, ok := m.list.SelectedItem().(RowItem)
	if !ok {
		return schedule.Row{}, false
	}
	return item.Row, true
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		row, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{Index: row.Index}
		}

	case key.Matches(msg, m.keys.NextCategory):
		return m, func() tea.Msg { return CycleFilterMsg{Step: 1} }

	case key.Matches(msg, m.keys.PrevCategory):
		return m, func() tea.Msg { return CycleFilterMsg{Step: -1} }

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewTaskMsg{} }

	case key.Matches(msg, m.keys.ClearAll):
		return m, func() tea.Msg { return ClearAllMsg{} }

	case key.Matches(msg, m.keys.ShowCompleted):
		return m, m.ToggleShowCompleted()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the filter line and the task list.
func (m Model) View() string {
	filterLine := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Padding(0, 1).
		Render("Category: " + theme.FilterStyle.Render(schedule.CategoryLabel(m.filter)))

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, filterLine, m.renderEmptyState())
	}
	return lipgloss.JoinVertical(lipgloss.Left, filterLine, m.list.View())
}

// renderEmptyState shows guidance text when no rows are shown.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-1, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hidden := len(m.rows); hidden > 0 {
		return style.Render(fmt.Sprintf("All %d tasks here are completed.", hidden))
	}
	if m.filter != schedule.AllCategories {
		return style.Render("No tasks in this category.\nPress tab to change the filter.")
	}
	return style.Render("No tasks yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-1)
}
