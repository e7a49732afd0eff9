package label

import (
	"maps"
	"slices"

	"github.com/atomicstack/tmux-jump/internal/buffer"
)

// Cache memoises Assign against the ordered id sequence it was computed
// for. Flag or name changes on the same ids reuse the previous labels so they
// do not flicker while the user types.
type Cache struct {
	ids    []buffer.ID
	labels map[buffer.ID]string
	valid  bool
}

// Labels returns labels for entries, recomputing only when the id sequence
// differs from the cached one or the cache was invalidated.
func (c *Cache) Labels(entries []Entry) map[buffer.ID]string {
	ids := make([]buffer.ID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if !c.valid || !slices.Equal(c.ids, ids) {
		c.labels = Assign(entries)
		c.ids = ids
		c.valid = true
	}
	return maps.Clone(c.labels)
}

// Invalidate drops the cached assignment. Hosts call it when items are added
// or removed.
func (c *Cache) Invalidate() {
	c.valid = false
	c.ids = nil
	c.labels = nil
}
