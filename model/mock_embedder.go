package model

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
)

// MockEmbedder is a deterministic in-memory Embedder for tests and local
// wiring. Identical texts always map to identical unit vectors, so
// self-similarity is 1; unrelated texts land on effectively random
// directions. Specific geometries can be pinned via the Vectors map.
type MockEmbedder struct {
	// Dim is the vector dimension (defaults to 8 when zero).
	Dim int
	// Vectors pins exact vectors for specific input texts, letting tests
	// choose similarity scores precisely.
	Vectors map[string][]float32
	// Err, when set, is returned by every Embed call.
	Err error
}

// Embed implements core.Embedder.
func (e *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	if v, ok := e.Vectors[text]; ok {
		out := make([]float32, len(v))
		copy(out, v)
		return out, nil
	}
	dim := e.Dim
	if dim <= 0 {
		dim = 8
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	vec := make([]float32, dim)
	var norm float64
	for i := range vec {
		vec[i] = float32(rng.NormFloat64())
		norm += float64(vec[i]) * float64(vec[i])
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		vec[0] = 1
		return vec, nil
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// Dimensions implements core.Embedder.
func (e *MockEmbedder) Dimensions() int {
	if e.Dim <= 0 {
		return 8
	}
	return e.Dim
}
