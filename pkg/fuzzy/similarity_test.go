package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	// Identity and containment hit the fixed containment score.
	assert.GreaterOrEqual(t, Similarity("스타벅스", "스타벅스"), 0.9)
	assert.Equal(t, ContainmentScore, Similarity("스타벅스", "스타"))
	assert.Equal(t, ContainmentScore, Similarity("Starbucks Coffee", "starbucks"))

	// A suffix is still literal containment.
	assert.Equal(t, ContainmentScore, Similarity("스타벅스", "타벅스"))

	// Near-miss with no containment falls through to the sequence ratio.
	assert.InDelta(t, 0.75, Similarity("스타벅스", "스타박스"), 1e-9)

	// Unrelated names score low.
	assert.Less(t, Similarity("스타벅스", "커피빈"), 0.3)
}

// The containment shortcut is directional: query-in-text only. Reversing
// the arguments must fall through to the ratio, not mirror the 0.9.
func TestSimilarityAsymmetry(t *testing.T) {
	forward := Similarity("스타벅스", "스타")
	reverse := Similarity("스타", "스타벅스")

	assert.Equal(t, ContainmentScore, forward)
	// "스타벅스" is not contained in "스타"; ratio = 2*2/(2+4).
	assert.InDelta(t, 2.0*2.0/6.0, reverse, 1e-9)
	assert.NotEqual(t, forward, reverse)
}

func TestSimilarityEmptyInputs(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "스타벅스"))
	// Empty query is contained in any text.
	assert.Equal(t, ContainmentScore, Similarity("스타벅스", ""))
}

func TestRatio(t *testing.T) {
	// difflib reference values.
	assert.InDelta(t, 0.75, ratio([]rune("abcd"), []rune("bcde")), 1e-9)
	assert.Equal(t, 1.0, ratio([]rune("같다"), []rune("같다")))
	assert.Equal(t, 0.0, ratio([]rune("abc"), []rune("xyz")))
	// 스타벅스 vs 스타박스: blocks 스타 + 스 around the substituted rune.
	assert.InDelta(t, 0.75, ratio([]rune("스타벅스"), []rune("스타박스")), 1e-9)
}

func TestMatch(t *testing.T) {
	cases := []struct {
		text  string
		query string
		want  bool
	}{
		{"스타벅스", "스타벅스", true}, // exact
		{"스타벅스", "스타", true},   // containment
		{"스타벅스", "스타박스", true}, // ratio above threshold
		{"스타벅스", "커피빈", false},
		{"", "스타벅스", false},
		{"Starbucks", "STAR", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Match(tc.text, tc.query, DefaultThreshold),
			"text %q query %q", tc.text, tc.query)
	}
}

// A jamo-only query contains no syllable blocks, and a syllable query is
// not a valid initials pattern, so the gate's initials branch never fires;
// such queries only match through containment or the ratio.
func TestMatchInitialsBranchUnreachable(t *testing.T) {
	assert.False(t, Match("스타벅스", "ㅅㅌㅂㅅ", DefaultThreshold))
	assert.False(t, Match("스타벅스", "ㅂㅅ", DefaultThreshold))
}

func TestMatchDegenerateThresholds(t *testing.T) {
	// threshold <= 0 accepts anything.
	assert.True(t, Match("스타벅스", "커피빈", 0))
	assert.True(t, Match("스타벅스", "커피빈", -3))
	// threshold > 1 accepts only containment.
	assert.True(t, Match("스타벅스", "스타", 1.5))
	assert.False(t, Match("스타벅스", "스타박스", 1.5))
}

type candidate struct {
	name string
}

func TestRankBySimilarity(t *testing.T) {
	items := []candidate{{"커피빈"}, {"스타박스"}, {"스타벅스"}}
	ranked := RankBySimilarity(items, func(c candidate) string { return c.name }, "스타벅스")

	assert.Equal(t, []candidate{{"스타벅스"}, {"스타박스"}, {"커피빈"}}, ranked)
	// Input order untouched.
	assert.Equal(t, []candidate{{"커피빈"}, {"스타박스"}, {"스타벅스"}}, items)
}

func TestRankBySimilarityStable(t *testing.T) {
	items := []candidate{{"커피빈"}, {""}, {""}, {"스타벅스"}}
	ranked := RankBySimilarity(items, func(c candidate) string { return c.name }, "스타벅스")

	assert.Equal(t, "스타벅스", ranked[0].name)
	// 커피빈 and the empty names all score 0 against the query and must
	// keep their input order.
	assert.Equal(t, "커피빈", ranked[1].name)
	assert.Equal(t, "", ranked[2].name)
	assert.Equal(t, "", ranked[3].name)
}
