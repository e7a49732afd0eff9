// Package label assigns short, unique keyboard labels to a set of named
// items so each one can be picked with one or two keystrokes.
package label

import (
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-jump/internal/buffer"
)

// Placeholder is rendered in place of a label for items that could not be
// labelled.
const Placeholder = "?"

// the second label character is searched for among these rune offsets of the
// filename (positions 2–5).
const (
	pairScanFirst = 1
	pairScanLast  = 4
)

// Entry is the input to Assign: an item id and its filename.
type Entry struct {
	ID   buffer.ID
	Name string
}

// EntriesFromItems builds label entries from host items, using the filename
// component of each item's name.
func EntriesFromItems(items []buffer.Item) []Entry {
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Entry{ID: item.ID, Name: buffer.Filename(item.Name)}
	}
	return entries
}

type member struct {
	id    buffer.ID
	runes []rune
}

// Assign returns a label per id. Items whose filename starts with a unique
// word character get that character; colliding items all get two-character
// labels; items without any word character get a digit. Items that cannot
// be labelled are absent from the result.
//
// Labels stay prefix-free: a colliding item whose own letters are all taken
// draws its pair from the alphabet scan, skipping any first letter that is
// already a single-character label. For "x", "x", "alpha" the two x items
// get "ba" and "bb", not "ab" and "ac", because "a" labels alpha.
func Assign(entries []Entry) map[buffer.ID]string {
	labels := make(map[buffer.ID]string, len(entries))
	used := make(map[string]bool, len(entries))

	groups := make(map[rune][]member)
	var order []rune
	var deferred []buffer.ID
	for _, e := range entries {
		runes := []rune(strings.ToLower(e.Name))
		start := firstWordIndex(runes)
		if start < 0 {
			deferred = append(deferred, e.ID)
			continue
		}
		key := runes[start]
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], member{id: e.ID, runes: runes[start:]})
	}

	singles := make(map[rune]bool)
	for _, key := range order {
		group := groups[key]
		if len(group) != 1 {
			continue
		}
		l := string(key)
		labels[group[0].id] = l
		used[l] = true
		singles[key] = true
	}

	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		for _, m := range group {
			if l, ok := pairLabel(m.runes, used, singles); ok {
				labels[m.id] = l
				used[l] = true
			}
		}
	}

	for _, id := range deferred {
		if l, ok := digitLabel(used); ok {
			labels[id] = l
			used[l] = true
		}
	}
	return labels
}

func pairLabel(runes []rune, used map[string]bool, singles map[rune]bool) (string, bool) {
	first := runes[0]
	if len(runes) > 1 && isWord(runes[1]) {
		if l := string([]rune{first, runes[1]}); !used[l] {
			return l, true
		}
	}
	for i := pairScanFirst; i <= pairScanLast && i < len(runes); i++ {
		if !isWord(runes[i]) {
			continue
		}
		if l := string([]rune{first, runes[i]}); !used[l] {
			return l, true
		}
	}
	for a := 'a'; a <= 'z'; a++ {
		if singles[a] {
			continue
		}
		for b := 'a'; b <= 'z'; b++ {
			if l := string([]rune{a, b}); !used[l] {
				return l, true
			}
		}
	}
	return "", false
}

func digitLabel(used map[string]bool) (string, bool) {
	leading := make(map[rune]bool, len(used))
	for l := range used {
		for _, r := range l {
			leading[r] = true
			break
		}
	}
	for d := '0'; d <= '9'; d++ {
		if !leading[d] {
			return string(d), true
		}
	}
	return "", false
}

func firstWordIndex(runes []rune) int {
	for i, r := range runes {
		if isWord(r) {
			return i
		}
	}
	return -1
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsWordKey reports whether key is a single word character that may start or
// continue a label.
func IsWordKey(key string) bool {
	runes := []rune(key)
	return len(runes) == 1 && isWord(runes[0])
}

// Display returns the label for id or the placeholder when none was assigned.
func Display(labels map[buffer.ID]string, id buffer.ID) string {
	if l, ok := labels[id]; ok && l != "" {
		return l
	}
	return Placeholder
}
