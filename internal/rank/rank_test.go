package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRankPrefersTightestSpan(t *testing.T) {
	got := Rank("ab", []string{"xaxbx", "abx", "xaxxbx"}, 0)
	require.Equal(t, []int{1, 0, 2}, Indices(got))
	require.Equal(t, []Match{
		{Index: 1, Score: 201},
		{Index: 0, Score: 302},
		{Index: 2, Score: 402},
	}, got)
}

func TestRankEmptyQueryMatchesNothing(t *testing.T) {
	require.Empty(t, Rank("", []string{"a", "b"}, 0))
}

func TestRankExcludesNonMatches(t *testing.T) {
	got := Rank("abc", []string{"ab", "cab", "a_b_c", "cba"}, 0)
	require.Equal(t, []int{2}, Indices(got))
}

func TestRankSmartCase(t *testing.T) {
	candidates := []string{"Makefile", "makefile", "MAKE"}

	lower := Rank("make", candidates, 0)
	require.Equal(t, []int{0, 1, 2}, Indices(lower))

	upper := Rank("Make", candidates, 0)
	require.Equal(t, []int{0}, Indices(upper))
}

func TestRankPrefersLeftmostOnTies(t *testing.T) {
	got := Rank("ab", []string{"xxab", "ab"}, 0)
	require.Equal(t, []int{1, 0}, Indices(got))
	require.Equal(t, 201, got[0].Score)
	require.Equal(t, 203, got[1].Score)
}

func TestRankFindsTightestOccurrenceInCandidate(t *testing.T) {
	// the first "b" yields span 5, the later "ab" yields span 2
	got := Rank("ab", []string{"axxxbab"}, 0)
	require.Len(t, got, 1)
	require.Equal(t, Score(6, 7, DefaultCutoff), got[0].Score)
}

func TestRankStableForEqualScores(t *testing.T) {
	got := Rank("go", []string{"go.mod", "go.sum", "go.work"}, 0)
	require.Equal(t, []int{0, 1, 2}, Indices(got))
}

func TestRankCutoffCapsContribution(t *testing.T) {
	long := "a" + strings.Repeat("x", 50) + "b"
	got := Rank("ab", []string{long}, 10)
	require.Len(t, got, 1)
	require.Equal(t, 10*10+1, got[0].Score)
}

func TestRankSubsequenceLaw(t *testing.T) {
	candidates := []string{
		"internal/label/label.go",
		"internal/rank/rank.go",
		"cmd/main.go",
		"README.md",
		"Lib/Rank.go",
	}
	for _, query := range []string{"rk", "lbl", "go", "rg", "Rk", "md"} {
		for _, m := range Rank(query, candidates, 0) {
			candidate := candidates[m.Index]
			if isLower(query) {
				candidate = strings.ToLower(candidate)
			}
			require.Truef(t, isSubsequence(query, candidate), "%q not a subsequence of %q", query, candidate)
		}
	}
}

func isSubsequence(q, c string) bool {
	qr := []rune(q)
	i := 0
	for _, r := range c {
		if i < len(qr) && r == qr[i] {
			i++
		}
	}
	return i == len(qr)
}

func TestRankGateRejectsOutOfOrderRunes(t *testing.T) {
	require.Empty(t, Rank("ba", []string{"abx", "a-b"}, 0))
	require.Equal(t, []int{1}, Indices(Rank("ba", []string{"abx", "b-a"}, 0)))
}

func TestTightestMeasuresMatchedCandidate(t *testing.T) {
	first, last := tightest([]rune("ab"), []rune("axxbab"), DefaultCutoff)
	require.Equal(t, 5, first)
	require.Equal(t, 6, last)

	first, last = tightest([]rune("éz"), []rune("xéyz"), DefaultCutoff)
	require.Equal(t, 2, first)
	require.Equal(t, 4, last)
}
