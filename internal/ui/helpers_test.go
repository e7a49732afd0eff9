package ui

import (
	"errors"

	"github.com/atomicstack/tmux-jump/internal/buffer"
	"github.com/atomicstack/tmux-jump/internal/data/dispatcher"
	"github.com/atomicstack/tmux-jump/internal/selection"
	"github.com/atomicstack/tmux-jump/internal/state"
	"github.com/atomicstack/tmux-jump/internal/tmux"
)

// storeHost serves a BufferStore the way host.Tmux does, recording actions
// instead of talking to tmux.
type storeHost struct {
	store       state.BufferStore
	activateErr error
	activated   []buffer.ID
	deleted     []buffer.ID
}

func (h *storeHost) Snapshot() []buffer.Item         { return h.store.Items() }
func (h *storeHost) CurrentID() (buffer.ID, bool)   { return h.store.CurrentID() }
func (h *storeHost) AlternateID() (buffer.ID, bool) { return h.store.AlternateID() }

func (h *storeHost) Activate(id buffer.ID) error {
	if h.activateErr != nil {
		return h.activateErr
	}
	h.activated = append(h.activated, id)
	return nil
}

func (h *storeHost) Delete(id buffer.ID) error {
	h.deleted = append(h.deleted, id)
	return nil
}

var errSwitchFailed = errors.New("switch-client failed")

func testPanes(paths ...string) []tmux.Pane {
	panes := make([]tmux.Pane, len(paths))
	for i, p := range paths {
		id := "%" + string(rune('1'+i))
		panes[i] = tmux.Pane{ID: id, Target: "main:1." + string(rune('0'+i)), Path: p, Current: i == 0}
	}
	return panes
}

type fixture struct {
	host       *storeHost
	store      state.BufferStore
	dispatcher *dispatcher.Dispatcher
	ctrl       *selection.Controller
}

func newFixture(paths ...string) *fixture {
	store := state.NewBufferStore()
	disp := dispatcher.New(store)
	panes := testPanes(paths...)
	store.SetEntries(dispatcher.EntriesFromPanes(panes))
	if len(panes) > 0 {
		store.SetCurrent(buffer.ID(panes[0].ID), "")
	}
	h := &storeHost{store: store}
	return &fixture{
		host:       h,
		store:      store,
		dispatcher: disp,
		ctrl:       selection.New(h, selection.DefaultOptions()),
	}
}

func (f *fixture) model(action selection.Action, cfg Config) *Model {
	cfg.Dispatcher = f.dispatcher
	return NewModel(f.ctrl, action, cfg)
}
