package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zazilai/memoria/core"
	"github.com/zazilai/memoria/locate"
	"github.com/zazilai/memoria/logging"
	"github.com/zazilai/memoria/memory"
)

// Config holds the tunable policy knobs of the engine.
type Config struct {
	// Capacity is the per-user memory item bound.
	Capacity int
	// MinConfidence gates persistence of extracted candidates.
	MinConfidence float64
	// CallTimeout bounds each external call (extraction, embedding, merge,
	// classification). On expiry the call's fail-closed default applies.
	CallTimeout time.Duration
}

// DefaultConfig mirrors the production policy: 20 items per user, 0.7
// admission confidence, 10s per external call.
var DefaultConfig = Config{
	Capacity:      memory.DefaultCapacity,
	MinConfidence: 0.7,
	CallTimeout:   10 * time.Second,
}

// Options configure engine construction.
type Options struct {
	Config Config
	Logger logging.Logger
}

// Engine implements the exposed memory operations. All collaborators are
// passed in explicitly; the engine holds no ambient client state.
type Engine struct {
	docs       core.DocumentStore
	vectors    *memory.VectorStore
	embedder   core.Embedder
	extractor  core.Extractor
	merger     core.SummaryMerger
	classifier core.LocationClassifier
	cfg        Config
	logger     logging.Logger
}

// New wires an Engine from its collaborators.
func New(
	docs core.DocumentStore,
	embedder core.Embedder,
	extractor core.Extractor,
	merger core.SummaryMerger,
	classifier core.LocationClassifier,
	optFns ...func(o *Options),
) *Engine {
	opts := Options{Config: DefaultConfig, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config.Capacity <= 0 {
		opts.Config.Capacity = DefaultConfig.Capacity
	}
	if opts.Config.CallTimeout <= 0 {
		opts.Config.CallTimeout = DefaultConfig.CallTimeout
	}

	vectors := memory.NewVectorStore(docs, func(o *memory.VectorStoreOptions) {
		o.Capacity = opts.Config.Capacity
		o.Logger = opts.Logger
	})

	return &Engine{
		docs:       docs,
		vectors:    vectors,
		embedder:   embedder,
		extractor:  extractor,
		merger:     merger,
		classifier: classifier,
		cfg:        opts.Config,
		logger:     opts.Logger,
	}
}

// RecordTurn runs the write path for one conversation turn and returns the
// user's summary after the turn (unchanged when nothing merged). The
// returned error is reserved for caller-side context cancellation; every
// collaborator failure is absorbed by its fail-closed default.
func (e *Engine) RecordTurn(ctx context.Context, userID, userMessage, assistantReply string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	result := e.extractor.Extract(callCtx, userMessage, assistantReply)
	cancel()

	currentSummary := ""
	if profile, err := e.docs.GetProfile(ctx, userID); err == nil {
		currentSummary = profile.MemorySummary
	} else if !errors.Is(err, core.ErrProfileNotFound) {
		e.logger.Warn("profile read failed, treating as empty", "user_id", userID, "error", err)
	}

	if result.Empty() {
		return currentSummary, ctx.Err()
	}

	e.appendMemories(ctx, userID, result.Memories)

	delta := core.ProfileDelta{}
	if result.City != "" {
		delta.City = &result.City
	}
	updatedSummary := currentSummary
	if result.Summary != "" {
		callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
		updatedSummary = e.merger.Merge(callCtx, currentSummary, result.Summary)
		cancel()
		if updatedSummary != currentSummary {
			delta.MemorySummary = &updatedSummary
		}
	}
	if !delta.IsZero() {
		if _, err := e.docs.MergeProfile(ctx, userID, delta); err != nil {
			e.logger.Warn("profile write failed", "user_id", userID, "error", err)
			return currentSummary, ctx.Err()
		}
	}
	return updatedSummary, ctx.Err()
}

// RecordTurnAsync runs the write path detached from the reply: its outcome
// never gates the user-visible response, so callers may fire it after
// responding. The parent context is deliberately not inherited; the work
// must survive the request's cancellation.
func (e *Engine) RecordTurnAsync(userID, userMessage, assistantReply string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*e.cfg.CallTimeout)
		defer cancel()
		if _, err := e.RecordTurn(ctx, userID, userMessage, assistantReply); err != nil {
			e.logger.Warn("async turn recording interrupted", "user_id", userID, "error", err)
		}
	}()
}

// appendMemories embeds and stores every candidate that clears the
// confidence gate. Each candidate fails independently: one bad embedding
// call never blocks the rest.
func (e *Engine) appendMemories(ctx context.Context, userID string, candidates []core.CandidateMemory) {
	for _, cand := range candidates {
		if cand.Confidence < e.cfg.MinConfidence {
			e.logger.Debug("candidate below confidence gate", "user_id", userID, "confidence", cand.Confidence)
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
		start := time.Now()
		vector, err := e.embedder.Embed(callCtx, cand.Content)
		cancel()
		if err != nil {
			e.logger.Warn("embedding failed, skipping candidate", "user_id", userID, "duration", time.Since(start), "error", err)
			continue
		}

		item := core.MemoryItem{
			ID:        uuid.New().String(),
			Content:   cand.Content,
			Type:      cand.Type,
			Vector:    vector,
			Timestamp: time.Now(),
		}
		if err := e.vectors.Append(ctx, userID, item); err != nil {
			e.logger.Warn("memory append failed", "user_id", userID, "error", err)
			continue
		}
		e.logger.Debug("memory stored", "user_id", userID, "type", item.Type.String())
	}
}

// RetrieveContext runs the read path: it embeds the query, ranks the user's
// items and renders the context block. When nothing clears the similarity
// threshold, or when embedding or the store fails, it falls back to the
// profile-only basic context. The result may be empty for a brand-new user;
// it is never an error.
func (e *Engine) RetrieveContext(ctx context.Context, userID, query string) (string, error) {
	profile := e.loadProfile(ctx, userID)
	city := e.resolveCity(ctx, profile)

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	queryVector, err := e.embedder.Embed(callCtx, query)
	cancel()
	if err != nil {
		e.logger.Warn("query embedding failed, using basic context", "user_id", userID, "error", err)
		return memory.BasicContext(city, profile.MemorySummary), ctx.Err()
	}

	items, err := e.vectors.All(ctx, userID)
	if err != nil {
		e.logger.Warn("memory load failed, using basic context", "user_id", userID, "error", err)
		return memory.BasicContext(city, profile.MemorySummary), ctx.Err()
	}

	ranked := memory.Rank(queryVector, items)
	if len(ranked) == 0 {
		return memory.BasicContext(city, profile.MemorySummary), ctx.Err()
	}
	e.logger.Debug("ranked context built", "user_id", userID, "items", len(ranked), "top_score", ranked[0].Score)
	return memory.RankedContext(city, ranked), ctx.Err()
}

// GetCity returns the user's city, preferring the explicit profile field and
// falling back to regex inference over the rolling summary. Returns "" when
// neither source yields one.
func (e *Engine) GetCity(ctx context.Context, userID string) string {
	return e.resolveCity(ctx, e.loadProfile(ctx, userID))
}

// NeedsLocation reports whether the query would benefit from the user's
// city, for callers deciding whether to attach the city line before answer
// generation. Classifier failure defaults to false.
func (e *Engine) NeedsLocation(ctx context.Context, query string) bool {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()
	return e.classifier.NeedsLocation(callCtx, query)
}

// loadProfile reads the profile, degrading any failure to an empty profile.
func (e *Engine) loadProfile(ctx context.Context, userID string) *core.UserProfile {
	profile, err := e.docs.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, core.ErrProfileNotFound) {
			e.logger.Warn("profile read failed, treating as empty", "user_id", userID, "error", err)
		}
		return &core.UserProfile{UserID: userID}
	}
	return profile
}

// resolveCity prefers the explicit city field. When absent it tries the
// summary regex and, on a hit, persists the inferred city back to the
// profile so later reads skip the inference (self-healing cache). The
// regex path never overrides an explicit write.
func (e *Engine) resolveCity(ctx context.Context, profile *core.UserProfile) string {
	if profile.City != "" {
		return profile.City
	}
	city := locate.CityFromSummary(profile.MemorySummary)
	if city == "" {
		return ""
	}
	if _, err := e.docs.MergeProfile(ctx, profile.UserID, core.ProfileDelta{City: &city}); err != nil {
		e.logger.Warn("city self-heal write failed", "user_id", profile.UserID, "error", err)
	}
	return city
}
