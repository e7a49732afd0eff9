package buffer

// ID identifies an item owned by the host. The core compares ids but never
// dereferences them.
type ID string

// Item is one selectable entry supplied by the host.
type Item struct {
	ID        ID
	Name      string
	Current   bool
	Alternate bool
	Modified  bool
}

// IDs returns the ids of the supplied items in order.
func IDs(items []Item) []ID {
	ids := make([]ID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// IndexOf returns the position of id within items, or -1.
func IndexOf(items []Item, id ID) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Clone produces a shallow copy of the provided items.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
