package fuzzy

import "sort"

// RankBySimilarity returns items reordered by descending Similarity between
// query and the display name the accessor yields; ties keep their prior
// relative order. Callers pass an accessor rather than pre-extracted names
// so missing-name handling (empty string) stays in one place.
//
// Scores live in a scratch slice and the input slice is not modified, so
// candidates shared between concurrent requests are safe to rank.
//
// This is a refinement pass for small, already-filtered result sets; the
// primary retrieval path belongs to the store and index.
func RankBySimilarity[T any](items []T, name func(T) string, query string) []T {
	if len(items) < 2 {
		return append([]T(nil), items...)
	}
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = Similarity(name(item), query)
	}
	ranked := append([]T(nil), items...)
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	for i, idx := range order {
		ranked[i] = items[idx]
	}
	return ranked
}
