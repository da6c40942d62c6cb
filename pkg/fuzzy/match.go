package fuzzy

import (
	"github.com/haneulsoft/markserve/internal/utils"
	"github.com/haneulsoft/markserve/pkg/hangul"
)

// DefaultThreshold is the similarity cut-off used when callers have no
// configured value of their own.
const DefaultThreshold = 0.6

// Match decides whether text is relevant to query. Checks short-circuit
// in order:
//
//  1. literal case-folded containment of query in text,
//  2. initial-consonant pattern containment when the query contains Hangul,
//  3. Similarity(text, query) >= threshold.
//
// Step 2 never fires: ContainsHangul looks for syllable blocks while
// MatchesInitialPattern demands jamo-only input, and no query satisfies
// both. Callers that want working initials search check
// hangul.IsInitialPattern on the query themselves (see pkg/search).
//
// Thresholds outside [0,1] are accepted and behave degenerately: <= 0
// matches everything, > 1 matches only by containment.
func Match(text, query string, threshold float64) bool {
	if utils.ContainsIgnoreCase(text, query) {
		return true
	}
	if hangul.ContainsHangul(query) && hangul.MatchesInitialPattern(text, query) {
		return true
	}
	return Similarity(text, query) >= threshold
}
