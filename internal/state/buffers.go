package state

import (
	"slices"

	"github.com/atomicstack/tmux-jump/internal/buffer"
)

// Entry is a pane as the selection sees it plus the tmux details needed to
// act on it.
type Entry struct {
	Item    buffer.Item
	Target  string
	Session string
	Command string
}

// BufferStore holds the latest pane snapshot. It is owned by the UI update
// loop and is not safe for concurrent use.
type BufferStore interface {
	Entries() []Entry
	Items() []buffer.Item
	Lookup(id buffer.ID) (Entry, bool)
	SetEntries([]Entry)
	CurrentID() (buffer.ID, bool)
	AlternateID() (buffer.ID, bool)
	SetCurrent(current, alternate buffer.ID)
	Loaded() bool
}

type bufferStore struct {
	entries   []Entry
	current   buffer.ID
	alternate buffer.ID
	loaded    bool
}

func NewBufferStore() BufferStore {
	return &bufferStore{}
}

func (s *bufferStore) Entries() []Entry {
	return slices.Clone(s.entries)
}

func (s *bufferStore) Items() []buffer.Item {
	items := make([]buffer.Item, len(s.entries))
	for i, e := range s.entries {
		items[i] = e.Item
	}
	return items
}

func (s *bufferStore) Lookup(id buffer.ID) (Entry, bool) {
	for _, e := range s.entries {
		if e.Item.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *bufferStore) SetEntries(entries []Entry) {
	s.entries = slices.Clone(entries)
	s.loaded = true
}

func (s *bufferStore) CurrentID() (buffer.ID, bool) {
	return s.current, s.current != ""
}

func (s *bufferStore) AlternateID() (buffer.ID, bool) {
	return s.alternate, s.alternate != ""
}

func (s *bufferStore) SetCurrent(current, alternate buffer.ID) {
	s.current = current
	s.alternate = alternate
}

func (s *bufferStore) Loaded() bool {
	return s.loaded
}
