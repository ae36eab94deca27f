package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/schedule/internal/keys"
	"github.com/nhle/schedule/internal/schedule"
	"github.com/nhle/schedule/internal/ui"
	"github.com/nhle/schedule/internal/ui/command"
	"github.com/nhle/schedule/internal/ui/confirm"
	"github.com/nhle/schedule/internal/ui/detail"
	helpview "github.com/nhle/schedule/internal/ui/help"
	"github.com/nhle/schedule/internal/ui/taskform"
	"github.com/nhle/schedule/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewConfirm
	ViewHelp
	ViewCommand
)

// Options configures the root model.
type Options struct {
	ShowCompleted bool
	Logger        zerolog.Logger
}

// Model is the root Bubble Tea model that manages view routing, layout and
// the schedule controller. Every controller call runs inside Update, so a
// mutation is saved before the next message is handled.
type Model struct {
	ctx          context.Context
	ctrl         *schedule.Controller
	log          zerolog.Logger
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	taskList     tasklist.Model
	detail       detail.Model
	form         taskform.Model
	confirm      confirm.Model
	helpView     helpview.Model
	commandView  command.Model
	ready        bool
	status       string
	statusErr    bool
}

// New creates a new root application model over ctrl.
func New(ctx context.Context, ctrl *schedule.Controller, opts Options) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		ctx:         ctx,
		ctrl:        ctrl,
		log:         opts.Logger,
		currentView: ViewList,
		keys:        k,
		taskList:    tasklist.New(k, opts.ShowCompleted, 80, 22),
		detail:      detail.New(k, 80, 22),
		form:        taskform.New(80, 22),
		confirm:     confirm.New(80, 22),
		helpView:    helpview.New(k, 80, 22),
		commandView: command.New(80, 22),
	}
	m.refreshRows()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.form.SetSize(contentWidth, contentHeight)
		m.confirm.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tasklist.SelectedTaskMsg:
		return m, m.openTask(msg.Index)

	case tasklist.CycleFilterMsg:
		m.ctrl.Tracker().CycleFilter(msg.Step)
		return m, m.refreshRows()

	case tasklist.NewTaskMsg:
		return m, m.startCreate()

	case tasklist.ClearAllMsg:
		return m, m.askClearAll()

	case detail.BackMsg:
		m.closeModal()
		return m, nil

	case detail.ToggleCompletedMsg:
		return m, m.setCompleted(msg.Completed)

	case detail.EditMsg:
		return m, m.startEdit()

	case detail.DeleteMsg:
		return m, m.deleteTask()

	case taskform.SubmitMsg:
		return m, m.submit(msg.Draft)

	case taskform.CancelMsg:
		m.cancelForm()
		return m, nil

	case confirm.ResultMsg:
		return m, m.clearAll(msg.Confirmed)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		m.statusErr = false

		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.currentView == ViewList {
				return m, m.quit()
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			if m.currentView == ViewList || m.currentView == ViewDetail {
				m.previousView = m.currentView
				m.currentView = ViewHelp
				return m, nil
			}

		case ":":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewCommand
				m.commandView.SetCategories(m.ctrl.Tracker().Categories())
				return m, m.commandView.Focus()
			}
		}

		switch m.currentView {
		case ViewHelp:
			if key.Matches(msg, m.keys.Back) {
				m.currentView = m.previousView
				return m, nil
			}
		case ViewForm:
			// huh only aborts on ctrl+c; esc abandons the form here.
			if key.Matches(msg, m.keys.Back) {
				m.cancelForm()
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewConfirm:
		m.confirm, cmd = m.confirm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Schedule", m.summary())
	content := m.renderContent()

	var statusBar string
	switch {
	case m.status != "" && m.statusErr:
		statusBar = m.layout.RenderErrorBar(m.status)
	case m.status != "":
		statusBar = m.layout.RenderStatusBar(m.status)
	default:
		statusBar = m.layout.RenderStatusBar(m.keyHints())
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewForm:
		return m.form.View()
	case ViewConfirm:
		return m.confirm.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// summary returns the header's task counts and active filter.
func (m Model) summary() string {
	tr := m.ctrl.Tracker()
	done := 0
	for _, t := range tr.Tasks() {
		if t.Completed {
			done++
		}
	}
	s := fmt.Sprintf("%d tasks, %d done", tr.Len(), done)
	if f := tr.Filter(); f != schedule.AllCategories {
		s += " | " + f
	}
	return s
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		return "x toggle done | e edit | d delete | esc close"
	case ViewForm:
		if m.form.Editing() {
			return "enter next/submit | esc abandon edit"
		}
		return "enter next/submit | esc cancel"
	case ViewConfirm:
		return "←/→ choose | enter confirm | esc cancel"
	default:
		return "q quit | ? help | n new | enter open | tab category | H completed | X clear all"
	}
}

// setStatus shows msg in the status bar until the next key press.
func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

// setError shows err in the status bar until the next key press.
func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.log.Warn().Err(err).Msg("action failed")
}

// quit abandons any edit in progress and exits. The stored list is never
// touched by an unfinished edit.
func (m *Model) quit() tea.Cmd {
	if m.ctrl.Mode() == schedule.ModeEditing {
		m.ctrl.Cancel()
	}
	return tea.Quit
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Name {
	case command.CmdNew:
		return m.startCreate()
	case command.CmdFilter:
		tr := m.ctrl.Tracker()
		tr.SetFilter(c.Arg)
		if c.Arg != "" && tr.Filter() != c.Arg {
			m.setError(fmt.Errorf("unknown category %q", c.Arg))
		}
		return m.refreshRows()
	case command.CmdClear:
		return m.askClearAll()
	case command.CmdHelp:
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case command.CmdQuit:
		return m.quit()
	default:
		m.setError(fmt.Errorf("unknown command %q", c.Name))
		return nil
	}
}
