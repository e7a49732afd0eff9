package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-jump/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// keyStrings translates a key press into the key strings the controller
// binds. Pasted or batched runes become one key each.
func keyStrings(msg tea.KeyMsg) []string {
	switch msg.Type {
	case tea.KeySpace:
		return []string{" "}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return []string{msg.String()}
		}
		keys := make([]string, len(msg.Runes))
		for i, r := range msg.Runes {
			keys[i] = string(r)
		}
		return keys
	default:
		return []string{msg.String()}
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.quitting {
		return nil
	}
	for _, key := range keyStrings(keyMsg) {
		events.UI.Key(key, m.ctrl.Mode().String())
		m.ctrl.HandleKey(key)
		if !m.ctrl.Active() {
			break
		}
	}
	if err := m.ctrl.LastError(); err != nil {
		events.Action.Error(err)
	}
	if !m.ctrl.Active() {
		return m.quit()
	}
	m.noteInputChange()
	return m.ensurePreview(false)
}

func (m *Model) noteInputChange() {
	input := m.ctrl.RenderModel().Input
	if input != m.lastInput {
		m.lastInput = input
		m.filterCursorDirty = true
	}
}
