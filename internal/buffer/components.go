package buffer

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Unnamed is the single component reported for an empty name.
const Unnamed = "?"

// Components splits a path-like name into segments ordered filename first:
// [filename, parent, grandparent, ...]. Splitting stops once taking the
// parent no longer changes the path.
func Components(name string) []string {
	if name == "" {
		return []string{Unnamed}
	}
	name = norm.NFC.String(name)
	p := filepath.Clean(name)
	var segments []string
	for {
		base := filepath.Base(p)
		if base == string(filepath.Separator) || base == "." {
			break
		}
		segments = append(segments, base)
		parent := filepath.Dir(p)
		if parent == p || parent == "." {
			break
		}
		p = parent
	}
	if len(segments) == 0 {
		return []string{name}
	}
	return segments
}

// Filename returns the first component of name.
func Filename(name string) string {
	return Components(name)[0]
}
