package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/schedule"
	"github.com/nhle/schedule/internal/theme"
)

// RowItem wraps a schedule.Row so it can be used in a bubbles/list.
type RowItem struct {
	Row schedule.Row
}

// FilterValue returns the string used for fuzzy filtering.
func (i RowItem) FilterValue() string { return i.Row.Task.Activity }

// ItemDelegate implements list.ItemDelegate for task rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(RowItem)
	if !ok {
		return
	}
	fmt.Fprint(w, RenderRow(ri.Row, m.Width(), index == m.Index()))
}

// RenderRow draws a row as one line: time window, activity and category,
// then the star rating and any deadline countdown. The background is the
// task color tint with a full-color left border.
func RenderRow(r schedule.Row, width int, selected bool) string {
	t := r.Task

	pointer := " "
	if selected {
		pointer = "▸"
	}

	body := fmt.Sprintf("%s | %s | %s", t.TimeRange(), t.Activity, t.Category)
	if t.Completed {
		body = theme.DimmedStyle.Render(body)
	}
	text := pointer + " " + body

	stars := renderStars(t.Priority)

	countdown := ""
	if r.HasDeadline {
		countdown = "  " + theme.CountdownStyle(r.DaysLeft).Render(schedule.CountdownLabel(r.DaysLeft))
	}

	right := stars + countdown
	gap := width - lipgloss.Width(text) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	line := text + strings.Repeat(" ", gap) + right

	style := theme.RowStyle(t.Color)
	if width > 2 {
		style = style.Width(width - 1)
	}
	if selected {
		style = style.Inherit(theme.SelectedItemStyle).PaddingLeft(theme.SelectedItemStyle.GetPaddingLeft())
	} else {
		style = style.PaddingLeft(theme.ListItemStyle.GetPaddingLeft())
	}
	return style.Render(line)
}

func renderStars(priority int) string {
	priority = max(0, min(priority, model.PriorityMax))
	return theme.StarStyle.Render(strings.Repeat(schedule.StarFilled, priority)) +
		theme.EmptyStarStyle.Render(strings.Repeat(schedule.StarEmpty, model.PriorityMax-priority))
}
