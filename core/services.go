package core

import "context"

// Embedder converts text to a fixed-dimension vector. The same model and
// version must back stored items and queries or similarity scores are
// meaningless. Input longer than the embedder's limit is hard-truncated by
// the implementation.
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// Extractor maps a conversation turn to structured candidate facts, an
// optional city and an optional rolling-summary fragment.
//
// Extraction fails closed: on any failure of the underlying capability the
// implementation returns a zero ExtractionResult (HasMemorableInfo=false)
// instead of an error. A failed call is equivalent to "nothing memorable
// this turn"; there are no retries.
type Extractor interface {
	Extract(ctx context.Context, userMessage, assistantReply string) ExtractionResult
}

// SummaryMerger folds a new candidate summary into the current rolling
// summary, keeping only durable information. The returned string is always
// capped at the summary length limit. On failure the current summary is
// returned unchanged (fails closed).
type SummaryMerger interface {
	Merge(ctx context.Context, current, candidate string) string
}

// LocationClassifier answers whether a query would benefit from knowing the
// user's city. Failure defaults to false rather than propagating an error.
type LocationClassifier interface {
	NeedsLocation(ctx context.Context, query string) bool
}
