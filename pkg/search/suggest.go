package search

import (
	"sort"
	"strings"

	edlib "github.com/hbollon/go-edlib"

	"github.com/haneulsoft/markserve/pkg/hangul"
)

// Suggestion is a "did you mean" candidate for a query that found nothing.
type Suggestion struct {
	Name  string
	Score float64
}

const (
	defaultSuggestLimit     = 5
	defaultSuggestThreshold = 0.75
)

// Suggest proposes indexed names close to the query, ordered by descending
// Jaro-Winkler similarity. Initial-consonant patterns get no suggestions;
// a pattern that found nothing has no near-miss spelling to offer.
func (e *Engine) Suggest(query string, limit int) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" || hangul.IsInitialPattern(query) {
		return nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	queryLower := strings.ToLower(query)

	var suggestions []Suggestion
	e.nameIndex().Names(func(name string) {
		if name == queryLower || hangul.IsInitialPattern(name) {
			return
		}
		score, err := edlib.StringsSimilarity(queryLower, name, edlib.JaroWinkler)
		if err != nil {
			return
		}
		if float64(score) >= defaultSuggestThreshold {
			suggestions = append(suggestions, Suggestion{Name: name, Score: float64(score)})
		}
	})

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
