package selection

import "github.com/atomicstack/tmux-jump/internal/buffer"

type fakeHost struct {
	items       []buffer.Item
	current     buffer.ID
	alternate   buffer.ID
	activateErr error
	deleteErr   error

	activated []buffer.ID
	deleted   []buffer.ID
	ended     []bool
}

func newFakeHost(names ...string) *fakeHost {
	h := &fakeHost{}
	for i, name := range names {
		h.items = append(h.items, buffer.Item{ID: paneID(i + 1), Name: name})
	}
	return h
}

func paneID(n int) buffer.ID {
	return buffer.ID("%" + string(rune('0'+n)))
}

func (h *fakeHost) Snapshot() []buffer.Item { return buffer.Clone(h.items) }

func (h *fakeHost) CurrentID() (buffer.ID, bool) { return h.current, h.current != "" }

func (h *fakeHost) AlternateID() (buffer.ID, bool) { return h.alternate, h.alternate != "" }

func (h *fakeHost) Activate(id buffer.ID) error {
	if h.activateErr != nil {
		return h.activateErr
	}
	h.activated = append(h.activated, id)
	return nil
}

func (h *fakeHost) Delete(id buffer.ID) error {
	if h.deleteErr != nil {
		return h.deleteErr
	}
	h.deleted = append(h.deleted, id)
	return nil
}

func (h *fakeHost) SessionEnded(restore bool) { h.ended = append(h.ended, restore) }

func itemIDs(items []buffer.Item) []buffer.ID { return buffer.IDs(items) }
