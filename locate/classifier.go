package locate

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/zazilai/memoria/logging"
	"github.com/zazilai/memoria/model"
)

const systemPrompt = `Você decide se uma pergunta de usuário se beneficia de saber a cidade onde ele mora.
Exemplos que precisam: clima, eventos locais, restaurantes, "perto de mim".
Exemplos que não precisam: matemática, fatos gerais, conversas pessoais.
Responda SOMENTE "sim" ou "não".`

// defaultCacheTTL bounds how long a classification is reused for the same
// query text.
const defaultCacheTTL = 10 * time.Minute

// ClassifierOptions configure the location-need classifier.
type ClassifierOptions struct {
	// CacheTTL bounds reuse of a cached answer (defaults to 10 minutes;
	// negative disables caching).
	CacheTTL time.Duration
	Logger   logging.Logger
}

// Classifier implements core.LocationClassifier on top of a model.Model,
// memoizing answers per normalized query in a TTL-bound ristretto cache so
// repeated identical queries don't pay for a model round trip.
type Classifier struct {
	model  model.Model
	cache  *ristretto.Cache
	ttl    time.Duration
	logger logging.Logger
}

// NewClassifier creates a Classifier backed by the given model.
func NewClassifier(m model.Model, optFns ...func(o *ClassifierOptions)) *Classifier {
	opts := ClassifierOptions{CacheTTL: defaultCacheTTL, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	var cache *ristretto.Cache
	if opts.CacheTTL >= 0 {
		// Cache holds tiny booleans; sizes are generous for any realistic
		// query volume within the TTL window.
		c, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 1 << 14,
			MaxCost:     1 << 12,
			BufferItems: 64,
		})
		if err == nil {
			cache = c
		} else {
			opts.Logger.Warn("classifier cache disabled", "error", err)
		}
	}

	return &Classifier{model: m, cache: cache, ttl: opts.CacheTTL, logger: opts.Logger}
}

// NeedsLocation reports whether the query would benefit from the user's
// city. Any failure of the underlying call defaults to false: a missing
// city line degrades the reply, a propagated error would drop it.
func (c *Classifier) NeedsLocation(ctx context.Context, query string) bool {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return false
	}
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			if needs, ok := v.(bool); ok {
				return needs
			}
		}
	}

	start := time.Now()
	resp, err := c.model.Complete(ctx, model.Request{System: systemPrompt, User: query})
	if err != nil {
		c.logger.Warn("location classification failed, defaulting to false", "duration", time.Since(start), "error", err)
		return false
	}

	needs := parseAnswer(resp.Text)
	if c.cache != nil {
		c.cache.SetWithTTL(key, needs, 1, c.ttl)
	}
	return needs
}

// waitCache flushes pending cache writes. Test helper: ristretto applies
// Set operations asynchronously.
func (c *Classifier) waitCache() {
	if c.cache != nil {
		c.cache.Wait()
	}
}

func parseAnswer(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "sim") || strings.HasPrefix(s, "yes") || strings.HasPrefix(s, "true")
}
