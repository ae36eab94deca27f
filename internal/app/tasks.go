package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/schedule/internal/schedule"
)

// refreshRows rebuilds the list from the tracker.
func (m *Model) refreshRows() tea.Cmd {
	tr := m.ctrl.Tracker()
	return m.taskList.SetRows(tr.Rows(), tr.Filter())
}

// refreshDetail re-reads the open task into the modal.
func (m *Model) refreshDetail() {
	d, err := m.ctrl.Detail()
	if err != nil {
		m.closeModal()
		return
	}
	m.detail.SetDetail(d)
}

func (m *Model) openTask(index int) tea.Cmd {
	if err := m.ctrl.Open(index); err != nil {
		m.setError(err)
		return nil
	}
	m.refreshDetail()
	m.previousView = ViewList
	m.currentView = ViewDetail
	return nil
}

func (m *Model) closeModal() {
	m.ctrl.Close()
	m.detail.Clear()
	m.currentView = ViewList
}

func (m *Model) setCompleted(completed bool) tea.Cmd {
	if err := m.ctrl.SetCompleted(m.ctx, completed); err != nil {
		m.setError(err)
		return nil
	}
	m.refreshDetail()
	return m.refreshRows()
}

func (m *Model) deleteTask() tea.Cmd {
	if err := m.ctrl.Delete(m.ctx); err != nil {
		m.setError(err)
		return nil
	}
	m.detail.Clear()
	m.currentView = ViewList
	m.setStatus("Task deleted")
	return m.refreshRows()
}

func (m *Model) startCreate() tea.Cmd {
	m.previousView = ViewList
	m.currentView = ViewForm
	return m.form.StartCreate(m.ctrl.Draft(), m.ctrl.Tracker().Categories())
}

// startEdit loads the open task into the form. The task stays in the list
// until the form is submitted.
func (m *Model) startEdit() tea.Cmd {
	if err := m.ctrl.Edit(); err != nil {
		m.setError(err)
		return nil
	}
	m.detail.Clear()
	m.previousView = ViewList
	m.currentView = ViewForm
	return m.form.StartEdit(m.ctrl.Draft(), m.ctrl.Tracker().Categories())
}

func (m *Model) submit(d schedule.Draft) tea.Cmd {
	editing := m.ctrl.Mode() == schedule.ModeEditing
	if err := m.ctrl.Submit(m.ctx, d); err != nil {
		m.setError(err)
		// Keep the user's input on screen.
		if editing {
			return m.form.StartEdit(d, m.ctrl.Tracker().Categories())
		}
		return m.form.StartCreate(d, m.ctrl.Tracker().Categories())
	}

	m.currentView = ViewList
	if editing {
		m.setStatus("Task updated")
	} else {
		m.setStatus("Task added")
	}
	return m.refreshRows()
}

// cancelForm leaves the form. An abandoned edit is dropped and the original
// task stays as it was; an abandoned create keeps its values for next time.
func (m *Model) cancelForm() {
	if m.ctrl.Mode() == schedule.ModeEditing {
		m.ctrl.Cancel()
		m.setStatus("Edit abandoned")
	} else {
		m.ctrl.SetDraft(m.form.Draft())
	}
	m.currentView = ViewList
}

func (m *Model) askClearAll() tea.Cmd {
	n := m.ctrl.Tracker().Len()
	if n == 0 {
		m.setStatus("Nothing to clear")
		return nil
	}
	m.previousView = m.currentView
	m.currentView = ViewConfirm
	return m.confirm.Start(
		"Delete all tasks?",
		fmt.Sprintf("All %d tasks will be removed.", n),
		"Yes, delete all",
	)
}

func (m *Model) clearAll(confirmed bool) tea.Cmd {
	m.currentView = ViewList
	cleared, err := m.ctrl.ClearAll(m.ctx, confirmed)
	if err != nil {
		m.setError(err)
		return nil
	}
	if !cleared {
		return nil
	}
	m.detail.Clear()
	m.setStatus("All tasks deleted")
	return m.refreshRows()
}
