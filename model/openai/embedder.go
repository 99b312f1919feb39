package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

// MaxEmbedInputRunes is the hard cap applied to embedding input. Memory
// contents are already truncated at extraction; this cap also protects the
// query path from oversized messages.
const MaxEmbedInputRunes = 1000

// EmbedderOptions configure the OpenAI embedder adapter.
type EmbedderOptions struct {
	Model      openai.EmbeddingModel
	Dimensions int
}

// Embedder wraps the OpenAI Embeddings API behind the core.Embedder
// interface. Stored items and queries must use the same model or similarity
// scores are meaningless.
type Embedder struct {
	client *openai.Client
	opts   EmbedderOptions
}

// NewEmbedder creates a new OpenAI embedder using the official client (API
// key from the environment).
func NewEmbedder(optFns ...func(o *EmbedderOptions)) *Embedder {
	client := openai.NewClient()
	return NewEmbedderFromClient(&client, optFns...)
}

// NewEmbedderFromClient creates a new OpenAI embedder from an existing client.
func NewEmbedderFromClient(client *openai.Client, optFns ...func(o *EmbedderOptions)) *Embedder {
	opts := EmbedderOptions{
		Model:      openai.EmbeddingModelTextEmbedding3Small,
		Dimensions: 1536,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Embedder{client: client, opts: opts}
}

// Embed converts a single text (hard-truncated to MaxEmbedInputRunes) to an
// embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if runes := []rune(text); len(runes) > MaxEmbedInputRunes {
		text = string(runes[:MaxEmbedInputRunes])
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: e.opts.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	src := resp.Data[0].Embedding
	vec := make([]float32, len(src))
	for i, v := range src {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int { return e.opts.Dimensions }
