package dispatcher

import (
	"slices"

	"github.com/atomicstack/tmux-jump/internal/backend"
	"github.com/atomicstack/tmux-jump/internal/buffer"
	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/state"
	"github.com/atomicstack/tmux-jump/internal/tmux"
)

// Result reports what a backend event changed.
type Result struct {
	PanesUpdated      bool
	MembershipChanged bool
	Added             []buffer.ID
	Removed           []buffer.ID
}

type Dispatcher struct {
	buffers state.BufferStore
}

func New(buffers state.BufferStore) *Dispatcher {
	return &Dispatcher{buffers: buffers}
}

// Handle stores the snapshot carried by evt. Errors leave the store as is.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	wasLoaded := d.buffers.Loaded()
	before := buffer.IDs(d.buffers.Items())

	entries := EntriesFromPanes(evt.Snapshot.Panes)
	d.buffers.SetEntries(entries)
	d.buffers.SetCurrent(buffer.ID(evt.Snapshot.CurrentID), buffer.ID(evt.Snapshot.LastID))
	res.PanesUpdated = true

	after := buffer.IDs(d.buffers.Items())
	if wasLoaded && !slices.Equal(before, after) {
		res.MembershipChanged = true
		res.Added, res.Removed = diff(before, after)
		events.Backend.Membership(toStrings(res.Added), toStrings(res.Removed))
	}
	return res
}

// EntriesFromPanes maps panes to store entries: the working directory is the
// name, the last pane is the alternate and window activity marks it modified.
func EntriesFromPanes(panes []tmux.Pane) []state.Entry {
	entries := make([]state.Entry, 0, len(panes))
	for _, p := range panes {
		if p.ID == "" {
			continue
		}
		entries = append(entries, state.Entry{
			Item: buffer.Item{
				ID:        buffer.ID(p.ID),
				Name:      p.Path,
				Current:   p.Current,
				Alternate: p.Last,
				Modified:  p.Activity,
			},
			Target:  p.Target,
			Session: p.Session,
			Command: p.Command,
		})
	}
	return entries
}

func diff(before, after []buffer.ID) (added, removed []buffer.ID) {
	for _, id := range after {
		if !slices.Contains(before, id) {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if !slices.Contains(after, id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}

func toStrings(ids []buffer.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
