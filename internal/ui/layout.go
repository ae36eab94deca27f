package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/schedule/internal/theme"
)

const (
	headerRows = 1
	statusRows = 1
)

// Layout splits the terminal into a one-line header, the content area and
// a one-line status bar.
type Layout struct {
	Width  int
	Height int
}

// NewLayout returns the layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth is the width handed to the active view.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight is the number of rows left between the header and the
// status bar. It is never negative.
func (l Layout) ContentHeight() int {
	return max(l.Height-headerRows-statusRows, 0)
}

// RenderHeader shows the title on the left and the summary flush right.
func (l Layout) RenderHeader(title, summary string) string {
	return l.bar(theme.HeaderStyle, title, summary)
}

// RenderStatusBar shows keyboard hints or a status message.
func (l Layout) RenderStatusBar(hints string) string {
	return l.bar(theme.StatusBarStyle, hints, "")
}

// RenderErrorBar shows msg in the error colors.
func (l Layout) RenderErrorBar(msg string) string {
	return l.bar(theme.ErrorStatusStyle, msg, "")
}

// bar renders left and right in style and paints the gap between them with
// the style's background, so the line spans exactly the layout width.
func (l Layout) bar(style lipgloss.Style, left, right string) string {
	head := style.Render(left)
	var tail string
	if right != "" {
		tail = style.Render(right)
	}

	gap := max(l.Width-lipgloss.Width(head)-lipgloss.Width(tail), 0)
	fill := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.NewStyle().MaxWidth(l.Width).Render(head + fill + tail)
}

// RenderWithFrame stacks the header, content and status bar. Once the
// terminal size is known the content is padded or cut to ContentHeight so
// the status bar stays on the bottom row.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	if l.Height > 0 {
		content = fitRows(content, l.ContentHeight())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func fitRows(s string, rows int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
