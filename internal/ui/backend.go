package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-jump/internal/backend"
	"github.com/atomicstack/tmux-jump/internal/selection"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// OptionsMsg delivers reloaded configuration. A non-nil Err keeps the
// current options and is shown in the status line.
type OptionsMsg struct {
	Options selection.Options
	Err     error
}

type reloadDoneMsg struct{}

func waitForReload(ch <-chan OptionsMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return reloadDoneMsg{}
		}
		return msg
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent stores a fresh snapshot and lets the controller pick it
// up. Labels are recomputed only when panes came or went.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return nil
	}
	m.backendLastErr = ""
	if m.dispatcher == nil {
		return nil
	}
	res := m.dispatcher.Handle(evt)
	if !res.PanesUpdated {
		return nil
	}
	if res.MembershipChanged {
		m.ctrl.InvalidateLabels()
	}
	m.ctrl.Refresh()
	if !m.ctrl.Active() {
		return m.quit()
	}
	return m.ensurePreview(true)
}

func (m *Model) handleOptionsMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(OptionsMsg)
	if !ok {
		return nil
	}
	if update.Err != nil {
		m.setInfo(fmt.Sprintf("config reload failed: %v", update.Err))
	} else {
		m.ctrl.SetOptions(update.Options)
		if m.verbose {
			m.setInfo("config reloaded")
		}
	}
	if m.reloads != nil {
		return waitForReload(m.reloads)
	}
	return nil
}

func (m *Model) handleReloadDoneMsg(tea.Msg) tea.Cmd {
	m.reloads = nil
	return nil
}
