// Package summary maintains the per-user rolling summary: a single short
// textual digest of durable facts. Merging is generative (not deterministic
// or idempotent), but the output is always hard-capped so the profile field
// can never grow past the contract length.
package summary

import (
	"context"
	"strings"
	"time"

	"github.com/zazilai/memoria/logging"
	"github.com/zazilai/memoria/model"
)

const (
	// TargetRunes is the soft length hint given to the merge instruction.
	TargetRunes = 150
	// MaxRunes is the hard cap enforced on every merge output, regardless
	// of what the model produces.
	MaxRunes = 200
)

const systemPrompt = `Você combina resumos sobre um usuário de um assistente pessoal.
Junte o resumo atual com a informação nova em um único resumo de até 150 caracteres.
Mantenha apenas informações duráveis (onde mora, preferências, família, trabalho).
Descarte perguntas, saudações e informações temporárias.
Não invente dados que não estejam nos resumos.
Responda SOMENTE com o resumo combinado, sem explicações.`

// Options configure the Merger.
type Options struct {
	Logger logging.Logger
}

// Merger implements core.SummaryMerger on top of a model.Model.
type Merger struct {
	model  model.Model
	logger logging.Logger
}

// New creates a Merger backed by the given model.
func New(m model.Model, optFns ...func(o *Options)) *Merger {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Merger{model: m, logger: opts.Logger}
}

// Merge folds the candidate into the current summary. On any failure the
// current summary is returned unchanged (capped); the rolling summary only
// ever moves forward on a successful merge.
func (m *Merger) Merge(ctx context.Context, current, candidate string) string {
	current = strings.TrimSpace(current)
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return Cap(current)
	}
	if current == "" {
		return Cap(candidate)
	}

	var payload strings.Builder
	payload.WriteString("Resumo atual: ")
	payload.WriteString(current)
	payload.WriteString("\nInformação nova: ")
	payload.WriteString(candidate)

	start := time.Now()
	resp, err := m.model.Complete(ctx, model.Request{System: systemPrompt, User: payload.String()})
	if err != nil {
		m.logger.Warn("summary merge failed, keeping current", "duration", time.Since(start), "error", err)
		return Cap(current)
	}
	merged := strings.TrimSpace(resp.Text)
	if merged == "" {
		return Cap(current)
	}
	return Cap(merged)
}

// Cap truncates a summary to MaxRunes, rune-safe. Exported because every
// writer of the MemorySummary profile field must respect the same bound.
func Cap(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxRunes {
		return s
	}
	return string(runes[:MaxRunes])
}
