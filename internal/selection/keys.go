package selection

import "slices"

// Keys maps Bubble Tea key strings to controller operations.
type Keys struct {
	Up        []string `toml:"up"`
	Down      []string `toml:"down"`
	Confirm   []string `toml:"confirm"`
	Cancel    []string `toml:"cancel"`
	Fuzzy     []string `toml:"fuzzy"`
	Backspace []string `toml:"backspace"`
}

// DefaultKeys returns the stock bindings.
func DefaultKeys() Keys {
	return Keys{
		Up:        []string{"up", "ctrl+p", "ctrl+k"},
		Down:      []string{"down", "ctrl+n", "ctrl+j"},
		Confirm:   []string{"enter"},
		Cancel:    []string{"esc", "ctrl+c"},
		Fuzzy:     []string{"/"},
		Backspace: []string{"backspace", "ctrl+h"},
	}
}

// Merge returns k with every empty binding list taken from fallback.
func (k Keys) Merge(fallback Keys) Keys {
	pick := func(a, b []string) []string {
		if len(a) == 0 {
			return slices.Clone(b)
		}
		return a
	}
	return Keys{
		Up:        pick(k.Up, fallback.Up),
		Down:      pick(k.Down, fallback.Down),
		Confirm:   pick(k.Confirm, fallback.Confirm),
		Cancel:    pick(k.Cancel, fallback.Cancel),
		Fuzzy:     pick(k.Fuzzy, fallback.Fuzzy),
		Backspace: pick(k.Backspace, fallback.Backspace),
	}
}

func bound(keys []string, key string) bool {
	return slices.Contains(keys, key)
}
