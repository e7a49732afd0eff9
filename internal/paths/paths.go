// Package paths expands duplicate filenames into the shortest path suffix
// that tells them apart.
package paths

import (
	"strings"

	"github.com/atomicstack/tmux-jump/internal/buffer"
)

// Separator joins path segments in display paths.
const Separator = "/"

// MaxRounds bounds the expansion loop. Ties left after this many rounds are
// kept as they are.
const MaxRounds = 10

// Entry pairs an id with its components, filename first.
type Entry struct {
	ID         buffer.ID
	Components []string
}

// EntriesFromItems splits each item's name into components.
func EntriesFromItems(items []buffer.Item) []Entry {
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Entry{ID: item.ID, Components: buffer.Components(item.Name)}
	}
	return entries
}

// Disambiguate returns the display path for every id: the filename,
// prefixed with as many parent directories as are needed to make it unique.
// Entries with identical components stay tied at their full path.
func Disambiguate(entries []Entry) map[buffer.ID]string {
	depth := make([]int, len(entries))
	display := make([]string, len(entries))
	for i, e := range entries {
		display[i] = Join(e.Components, 0)
	}

	for round := 0; round < MaxRounds; round++ {
		groups := make(map[string][]int, len(entries))
		for i := range entries {
			groups[display[i]] = append(groups[display[i]], i)
		}
		changed := false
		for _, members := range groups {
			if len(members) < 2 {
				continue
			}
			for _, i := range members {
				if depth[i]+1 >= len(entries[i].Components) {
					continue
				}
				depth[i]++
				display[i] = Join(entries[i].Components, depth[i])
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	out := make(map[buffer.ID]string, len(entries))
	for i, e := range entries {
		out[e.ID] = display[i]
	}
	return out
}

// Join renders components[0..depth] root-to-leaf, e.g. "dir/file.txt" for
// ["file.txt", "dir"] at depth 1.
func Join(components []string, depth int) string {
	if len(components) == 0 {
		return buffer.Unnamed
	}
	if depth >= len(components) {
		depth = len(components) - 1
	}
	if depth < 0 {
		depth = 0
	}
	parts := make([]string, 0, depth+1)
	for i := depth; i >= 0; i-- {
		parts = append(parts, components[i])
	}
	return strings.Join(parts, Separator)
}
