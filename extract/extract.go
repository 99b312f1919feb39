// Package extract turns a conversation turn into structured candidate facts
// using a generative model. The extractor is the first stage of the write
// path: its output feeds the confidence gate, the profile city write and the
// rolling summary merge.
//
// Extraction fails closed. A model error, a timeout or malformed JSON all
// collapse to "nothing memorable this turn"; the caller never sees an error
// and there are no retries.
package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/zazilai/memoria/core"
	"github.com/zazilai/memoria/logging"
	"github.com/zazilai/memoria/model"
)

const (
	// maxReplyContext truncates the prior assistant reply passed along for
	// context; only a short tail of it helps disambiguate the user message.
	maxReplyContext = 200
	// maxContentRunes truncates each extracted fact before it is embedded
	// and stored.
	maxContentRunes = 1000
)

const systemPrompt = `Você é um sistema de extração de memórias para um assistente pessoal.
Analise a mensagem do usuário e extraia apenas fatos duráveis que valham a pena lembrar em conversas futuras (onde mora, preferências, família, trabalho, saúde).
Ignore saudações, perguntas e informações temporárias.

Responda SOMENTE com JSON neste formato, sem texto adicional:
{
  "hasMemorableInfo": true,
  "memories": [{"type": "personal", "content": "mora em Miami", "confidence": 0.9}],
  "city": "Miami",
  "summary": "mora em Miami, gosta de praia"
}

Regras:
- "type" deve ser um de: "city", "personal", "preference", "important".
- "confidence" entre 0 e 1: quão certo você está de que o fato é durável.
- "city" apenas se o usuário disser onde mora ou está; senão null.
- "summary" é uma frase curta com os fatos duráveis da mensagem; null se não houver.
- Se não houver nada memorável: {"hasMemorableInfo": false, "memories": []}`

// wire mirrors the JSON schema the prompt requests. Type tags arrive as
// strings and are mapped onto the closed enum, dropping unknown tags.
type wire struct {
	HasMemorableInfo bool `json:"hasMemorableInfo"`
	Memories         []struct {
		Type       string  `json:"type"`
		Content    string  `json:"content"`
		Confidence float64 `json:"confidence"`
	} `json:"memories"`
	City    string `json:"city"`
	Summary string `json:"summary"`
}

// Options configure the Extractor.
type Options struct {
	Logger logging.Logger
}

// Extractor implements core.Extractor on top of a model.Model.
type Extractor struct {
	model  model.Model
	logger logging.Logger
}

// New creates an Extractor backed by the given model.
func New(m model.Model, optFns ...func(o *Options)) *Extractor {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Extractor{model: m, logger: opts.Logger}
}

// Extract maps one turn to an ExtractionResult. Any failure returns the zero
// result: a single failed call is equivalent to "nothing memorable".
func (e *Extractor) Extract(ctx context.Context, userMessage, assistantReply string) core.ExtractionResult {
	var payload strings.Builder
	payload.WriteString("Mensagem do usuário: ")
	payload.WriteString(userMessage)
	if reply := truncateRunes(assistantReply, maxReplyContext); reply != "" {
		payload.WriteString("\nResposta anterior do assistente: ")
		payload.WriteString(reply)
	}

	start := time.Now()
	resp, err := e.model.Complete(ctx, model.Request{System: systemPrompt, User: payload.String()})
	if err != nil {
		e.logger.Warn("extraction call failed", "duration", time.Since(start), "error", err)
		return core.ExtractionResult{}
	}

	result, ok := parse(resp.Text)
	if !ok {
		e.logger.Warn("extraction returned unparseable output", "output_len", len(resp.Text))
		return core.ExtractionResult{}
	}
	e.logger.Debug("extraction completed", "duration", time.Since(start), "candidates", len(result.Memories))
	return result
}

// parse decodes the model output, tolerating code fences and unknown type
// tags. Returns ok=false only when the JSON itself is unusable.
func parse(raw string) (core.ExtractionResult, bool) {
	var w wire
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &w); err != nil {
		return core.ExtractionResult{}, false
	}

	result := core.ExtractionResult{
		HasMemorableInfo: w.HasMemorableInfo,
		City:             strings.TrimSpace(w.City),
		Summary:          strings.TrimSpace(w.Summary),
	}
	for _, m := range w.Memories {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		t, ok := core.ParseMemoryType(m.Type)
		if !ok {
			continue
		}
		result.Memories = append(result.Memories, core.CandidateMemory{
			Type:       t,
			Content:    truncateRunes(content, maxContentRunes),
			Confidence: m.Confidence,
		})
	}
	return result, true
}

// stripCodeFence removes a surrounding markdown fence if present; models
// often wrap JSON despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
