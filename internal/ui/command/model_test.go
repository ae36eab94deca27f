package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  CommandMsg
		known bool
	}{
		{"new", CommandMsg{Name: CmdNew}, true},
		{"  add ", CommandMsg{Name: CmdNew}, true},
		{"filter Work", CommandMsg{Name: CmdFilter, Arg: "Work"}, true},
		{"f  Side projects ", CommandMsg{Name: CmdFilter, Arg: "Side projects"}, true},
		{"filter", CommandMsg{Name: CmdFilter}, true},
		{"CLEAR", CommandMsg{Name: CmdClear}, true},
		{"q", CommandMsg{Name: CmdQuit}, true},
		{"sync now", CommandMsg{Name: "sync", Arg: "now"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, got.Known())
		})
	}
}

func TestEnterEmitsParsedCommand(t *testing.T) {
	m := New(80, 10)
	for _, r := range "filter Home" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: CmdFilter, Arg: "Home"}, cmd())
	assert.Empty(t, m.input.Value())
}

func TestEnterOnEmptyInputDoesNothing(t *testing.T) {
	m := New(80, 10)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEscCancels(t *testing.T) {
	m := New(80, 10)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}
