// Package host adapts the tmux pane store to the selection controller.
package host

import (
	"fmt"

	"github.com/atomicstack/tmux-jump/internal/buffer"
	"github.com/atomicstack/tmux-jump/internal/logging"
	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/state"
	"github.com/atomicstack/tmux-jump/internal/tmux"
)

var (
	switchPaneFn = tmux.SwitchPane
	killPaneFn   = tmux.KillPane
)

// Tmux serves panes from a BufferStore and switches to or kills them on the
// server at Socket.
type Tmux struct {
	Socket   string
	ClientID string

	store state.BufferStore
	onEnd func(restore bool)
}

func NewTmux(socket, clientID string, store state.BufferStore) *Tmux {
	return &Tmux{Socket: socket, ClientID: clientID, store: store}
}

// OnSessionEnd registers fn to run when a selection session ends.
func (t *Tmux) OnSessionEnd(fn func(restore bool)) {
	t.onEnd = fn
}

func (t *Tmux) Snapshot() []buffer.Item {
	return t.store.Items()
}

func (t *Tmux) CurrentID() (buffer.ID, bool) {
	return t.store.CurrentID()
}

func (t *Tmux) AlternateID() (buffer.ID, bool) {
	return t.store.AlternateID()
}

// Activate switches the launching client to the pane.
func (t *Tmux) Activate(id buffer.ID) error {
	entry, ok := t.store.Lookup(id)
	if !ok {
		return fmt.Errorf("pane %s no longer exists", id)
	}
	events.Pane.Switch(entry.Target)
	if err := switchPaneFn(t.Socket, t.ClientID, entry.Target); err != nil {
		logging.Error(err)
		return fmt.Errorf("switch to %s: %w", entry.Target, err)
	}
	return nil
}

// Delete kills the pane.
func (t *Tmux) Delete(id buffer.ID) error {
	if _, ok := t.store.Lookup(id); !ok {
		return fmt.Errorf("pane %s no longer exists", id)
	}
	events.Pane.Kill(string(id))
	if err := killPaneFn(t.Socket, string(id)); err != nil {
		logging.Error(err)
		return err
	}
	return nil
}

func (t *Tmux) SessionEnded(restore bool) {
	if t.onEnd != nil {
		t.onEnd(restore)
	}
}
