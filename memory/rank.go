package memory

import (
	"math"
	"sort"

	"github.com/zazilai/memoria/core"
)

const (
	// SimilarityThreshold is the minimum cosine similarity (exclusive) an
	// item must score against the query to be considered relevant.
	SimilarityThreshold = 0.7
	// MaxRanked caps how many items a ranking returns.
	MaxRanked = 3
)

// ScoredItem pairs a memory item with its similarity to the query.
type ScoredItem struct {
	core.MemoryItem
	Score float64
}

// Cosine computes the cosine similarity dot(a,b)/(|a|*|b|) in [-1,1]. It is
// well-defined only for non-zero vectors of equal length; any zero-norm or
// mismatched input scores 0 so a degenerate embedding can never divide by
// zero or fake relevance.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every item against the query vector, keeps those strictly
// above SimilarityThreshold, sorts them by descending similarity and returns
// at most MaxRanked. An empty result means the caller should fall back to
// profile-only context.
func Rank(query []float32, items []core.MemoryItem) []ScoredItem {
	scored := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		score := Cosine(query, item.Vector)
		if score > SimilarityThreshold {
			scored = append(scored, ScoredItem{MemoryItem: item, Score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > MaxRanked {
		scored = scored[:MaxRanked]
	}
	return scored
}
