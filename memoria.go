// Package memoria provides a high-level façade over the memory engine and
// service abstractions (document store, model providers, embedder & logging)
// for a per-user semantic memory subsystem. Most applications interact with
// this package by:
//  1. Creating a Memoria via New() (optionally overriding default in-memory services)
//  2. Recording conversation turns (RecordTurn / RecordTurnAsync)
//  3. Retrieving personalized context before answer generation (RetrieveContext)
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments supply a durable DocumentStore, a real
// model provider (model/openai or model/anthropic) and a matching Embedder.
package memoria

import (
	"context"

	"github.com/zazilai/memoria/core"
	"github.com/zazilai/memoria/engine"
	"github.com/zazilai/memoria/extract"
	"github.com/zazilai/memoria/locate"
	"github.com/zazilai/memoria/logging"
	"github.com/zazilai/memoria/model"
	"github.com/zazilai/memoria/store"
	"github.com/zazilai/memoria/summary"
)

// Options configures the Memoria instance.
type Options struct {
	// DocumentStore persists profiles and memory items (defaults to the
	// in-memory implementation).
	DocumentStore core.DocumentStore

	// Model drives the generative collaborators: extraction, summary merge
	// and location classification (defaults to a mock for local testing).
	Model model.Model

	// Embedder maps text to vectors. Stored items and queries must share
	// the same embedder across a deployment (defaults to a mock).
	Embedder core.Embedder

	// EngineConfig tunes capacity, confidence gate and call timeouts.
	EngineConfig engine.Config

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Memoria is the high-level façade aggregating the memory engine and its
// collaborators.
type Memoria struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new Memoria instance with optional overrides. Any unset
// service is initialized with an in-memory or mock implementation.
func New(optFns ...func(o *Options)) *Memoria {
	opts := Options{
		DocumentStore: store.NewInMemoryStore(),
		Model:         model.NewMockModel("local"),
		Embedder:      &model.MockEmbedder{},
		EngineConfig:  engine.DefaultConfig,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	eng := engine.New(
		opts.DocumentStore,
		opts.Embedder,
		extract.New(opts.Model, func(o *extract.Options) { o.Logger = opts.Logger }),
		summary.New(opts.Model, func(o *summary.Options) { o.Logger = opts.Logger }),
		locate.NewClassifier(opts.Model, func(o *locate.ClassifierOptions) { o.Logger = opts.Logger }),
		func(o *engine.Options) {
			o.Config = opts.EngineConfig
			o.Logger = opts.Logger
		},
	)

	return &Memoria{opts: opts, engine: eng}
}

// RecordTurn runs the write path for one conversation turn and returns the
// user's rolling summary after the turn.
func (m *Memoria) RecordTurn(ctx context.Context, userID, userMessage, assistantReply string) (string, error) {
	return m.engine.RecordTurn(ctx, userID, userMessage, assistantReply)
}

// RecordTurnAsync runs the write path detached from the reply; its outcome
// never gates the user-visible response.
func (m *Memoria) RecordTurnAsync(userID, userMessage, assistantReply string) {
	m.engine.RecordTurnAsync(userID, userMessage, assistantReply)
}

// RetrieveContext returns the context block for a query: ranked memories
// when any clear the similarity threshold, profile-only basic context
// otherwise. Must complete (or time out to the fallback) before the reply
// is generated.
func (m *Memoria) RetrieveContext(ctx context.Context, userID, query string) (string, error) {
	return m.engine.RetrieveContext(ctx, userID, query)
}

// GetCity returns the user's city, inferring and self-healing it from the
// rolling summary when no explicit city has been written.
func (m *Memoria) GetCity(ctx context.Context, userID string) string {
	return m.engine.GetCity(ctx, userID)
}

// NeedsLocation reports whether a query would benefit from the user's city.
func (m *Memoria) NeedsLocation(ctx context.Context, query string) bool {
	return m.engine.NeedsLocation(ctx, query)
}
