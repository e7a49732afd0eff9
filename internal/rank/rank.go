// Package rank orders candidate strings by how tightly they contain a query
// as a subsequence.
package rank

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultCutoff caps span and position contributions to a score.
const DefaultCutoff = 100

// Match is a candidate index and its score. Lower scores rank first.
type Match struct {
	Index int
	Score int
}

// Rank returns the candidates that contain query as an ordered subsequence,
// sorted by ascending score with ties kept in candidate order. An all
// lower-case query matches case-insensitively. An empty query matches
// nothing. A non-positive cutoff means DefaultCutoff.
func Rank(query string, candidates []string, cutoff int) []Match {
	if query == "" {
		return nil
	}
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	fold := isLower(query)
	q := []rune(query)

	var matches []Match
	for i, candidate := range candidates {
		if fold {
			candidate = strings.ToLower(candidate)
		}
		if !fuzzy.Match(query, candidate) {
			continue
		}
		first, last := tightest(q, []rune(candidate), cutoff)
		matches = append(matches, Match{Index: i, Score: Score(first, last, cutoff)})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return a.Score - b.Score
	})
	return matches
}

// Score computes cutoff*min(span, cutoff) + min(first, cutoff) for 1-based
// positions first and last.
func Score(first, last, cutoff int) int {
	return cutoff*min(last-first+1, cutoff) + min(first, cutoff)
}

// Indices returns the candidate indices of matches in ranked order.
func Indices(matches []Match) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

// tightest returns the 1-based first and last positions of the occurrence
// of q in c with the smallest capped span, preferring the leftmost start.
// c must already contain q as a subsequence.
func tightest(q, c []rune, cutoff int) (int, int) {
	n := len(q)
	lastRune := q[n-1]
	bestFirst, bestLast, bestSpan := 0, 0, cutoff+1
	for end := n - 1; end < len(c); end++ {
		if c[end] != lastRune {
			continue
		}
		start, ok := matchBackward(q[:n-1], c, end)
		if !ok {
			continue
		}
		if span := min(end-start+1, cutoff); span < bestSpan {
			bestFirst, bestLast, bestSpan = start+1, end+1, span
		}
	}
	return bestFirst, bestLast
}

// matchBackward matches prefix right to left ending before end, taking the
// nearest occurrence of each rune. It returns the 0-based start position.
func matchBackward(prefix, c []rune, end int) (int, bool) {
	pos := end
	for i := len(prefix) - 1; i >= 0; i-- {
		pos--
		for pos >= 0 && c[pos] != prefix[i] {
			pos--
		}
		if pos < 0 {
			return 0, false
		}
	}
	return pos, true
}

func isLower(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
