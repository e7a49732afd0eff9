package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/tmux"
)

type previewData struct {
	target  string
	label   string
	lines   []string
	err     string
	loading bool
	seq     int
}

type previewLoadedMsg struct {
	target string
	seq    int
	lines  []string
	err    error
}

var (
	panePreviewFn = tmux.PanePreview
)

// ensurePreview starts a capture of the pane the controller wants previewed.
// force recaptures the same pane, keeping the old lines until the new ones
// arrive.
func (m *Model) ensurePreview(force bool) tea.Cmd {
	if !m.previewEnabled {
		return nil
	}
	rm := m.ctrl.RenderModel()
	if rm.Preview == "" {
		m.preview = nil
		return nil
	}
	target := string(rm.Preview)
	if existing := m.preview; existing != nil && existing.target == target && (!force || existing.loading) {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	next := &previewData{
		target:  target,
		label:   rm.Path(rm.Preview),
		loading: true,
		seq:     seq,
	}
	if m.preview != nil && m.preview.target == target {
		next.lines = m.preview.lines
	}
	m.preview = next
	socket := m.socketPath
	lines := m.previewLines
	return func() tea.Msg {
		captured, err := panePreviewFn(socket, target, lines)
		return previewLoadedMsg{target: target, seq: seq, lines: captured, err: err}
	}
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	events.UI.Preview(update.target, len(update.lines), update.err)
	data := m.preview
	if data == nil || data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	if update.err != nil {
		data.err = update.err.Error()
		data.lines = nil
		return nil
	}
	data.err = ""
	data.lines = update.lines
	return nil
}
