package command

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/schedule/internal/theme"
)

// Palette command names.
const (
	CmdNew    = "new"
	CmdFilter = "filter"
	CmdClear  = "clear"
	CmdHelp   = "help"
	CmdQuit   = "quit"
)

var aliases = map[string]string{
	"n":   CmdNew,
	"add": CmdNew,
	"f":   CmdFilter,
	"cat": CmdFilter,
	"h":   CmdHelp,
	"q":   CmdQuit,
}

// Names lists the palette commands.
func Names() []string {
	return []string{CmdNew, CmdFilter + " [category]", CmdClear, CmdHelp, CmdQuit}
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg struct {
	Name string
	Arg  string
}

// CancelMsg is emitted when the palette is dismissed.
type CancelMsg struct{}

// Parse splits palette input into a command and its argument. Unknown
// commands keep their name so the caller can report them.
func Parse(input string) CommandMsg {
	input = strings.TrimSpace(input)
	name, arg, _ := strings.Cut(input, " ")
	name = strings.ToLower(name)
	if full, ok := aliases[name]; ok {
		name = full
	}
	return CommandMsg{Name: name, Arg: strings.TrimSpace(arg)}
}

// Known reports whether c names a palette command.
func (c CommandMsg) Known() bool {
	return slices.Contains([]string{CmdNew, CmdFilter, CmdClear, CmdHelp, CmdQuit}, c.Name)
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "new, filter <category>, clear, help, quit"
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// SetCategories offers "filter <category>" completions.
func (m *Model) SetCategories(categories []string) {
	suggestions := []string{CmdNew, CmdFilter, CmdClear, CmdHelp, CmdQuit}
	for _, c := range categories {
		suggestions = append(suggestions, CmdFilter+" "+c)
	}
	m.input.SetSuggestions(suggestions)
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			input := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if input == "" {
				return m, nil
			}
			parsed := Parse(input)
			return m, func() tea.Msg { return parsed }

		case "esc":
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()

	content := lipgloss.JoinVertical(lipgloss.Left, title, input)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
