/*
Package fuzzy scores string relevance for trademark search.

It combines three signals: literal case-folded containment, initial-consonant
pattern matching (via pkg/hangul), and a normalized sequence-similarity ratio.
Scores are in [0,1] and comparable across calls, so they double as a ranking
key. Everything here is pure and safe for concurrent use.
*/
package fuzzy

import "strings"

// ContainmentScore is returned when the folded query occurs literally
// inside the folded text. Containment outranks the generic ratio, which
// scores short queries inside long names poorly.
const ContainmentScore = 0.9

// Similarity computes a [0,1] similarity between text and query.
//
// Both strings are case-folded first. If the folded query is a substring of
// the folded text the score is ContainmentScore; the check is directional
// (query in text, never the reverse) and callers depend on that asymmetry.
// An empty query counts as contained in any non-empty text. Otherwise the
// score is the sequence ratio 2*M/T, where M is the total length of the
// longest common matching blocks and T the combined rune length. Two empty
// strings score 1.0.
func Similarity(text, query string) float64 {
	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if textLower != "" && strings.Contains(textLower, queryLower) {
		return ContainmentScore
	}
	return ratio([]rune(textLower), []rune(queryLower))
}

// ratio is the Ratcliff/Obershelp sequence ratio over runes: twice the
// number of matching characters across all matching blocks, divided by the
// total length of both sequences.
func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	matched := 0
	for _, blk := range matchingBlocks(a, b) {
		matched += blk.size
	}
	return 2.0 * float64(matched) / float64(total)
}

type block struct {
	a, b, size int
}

type span struct {
	alo, ahi, blo, bhi int
}

// matchingBlocks finds the non-overlapping matching blocks of a and b:
// the longest match of the whole sequences, then recursively the longest
// matches of the pieces to its left and right.
func matchingBlocks(a, b []rune) []block {
	// Positions of each rune in b, consulted when scanning a.
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	queue := []span{{0, len(a), 0, len(b)}}
	var blocks []block
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b2j, s)
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		if s.alo < m.a && s.blo < m.b {
			queue = append(queue, span{s.alo, m.a, s.blo, m.b})
		}
		if m.a+m.size < s.ahi && m.b+m.size < s.bhi {
			queue = append(queue, span{m.a + m.size, s.ahi, m.b + m.size, s.bhi})
		}
	}
	return blocks
}

// longestMatch finds the longest block where a[alo:ahi] and b[blo:bhi]
// agree, preferring the earliest position in a, then in b, on ties.
func longestMatch(a []rune, b2j map[rune][]int, s span) block {
	best := block{s.alo, s.blo, 0}
	// j2len[j] is the length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := s.alo; i < s.ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > best.size {
				best = block{i - k + 1, j - k + 1, k}
			}
		}
		j2len = newj2len
	}
	return best
}
