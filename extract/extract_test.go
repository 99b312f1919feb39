package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zazilai/memoria/core"
	"github.com/zazilai/memoria/model"
)

// Interface compliance (compile-time assertion)
var _ core.Extractor = (*Extractor)(nil)

func TestExtractor_ParsesWellFormedResult(t *testing.T) {
	m := model.NewMockModel("test")
	m.Fallback = `{
		"hasMemorableInfo": true,
		"memories": [
			{"type": "personal", "content": "mora em Miami e gosta de praia", "confidence": 0.9},
			{"type": "preference", "content": "prefere comida vegana", "confidence": 0.75}
		],
		"city": "Miami",
		"summary": "mora em Miami, gosta de praia"
	}`

	e := New(m)
	res := e.Extract(context.Background(), "Moro em Miami, adoro praia", "")

	require.True(t, res.HasMemorableInfo)
	require.Len(t, res.Memories, 2)
	assert.Equal(t, core.MemoryTypePersonal, res.Memories[0].Type)
	assert.Equal(t, "mora em Miami e gosta de praia", res.Memories[0].Content)
	assert.InDelta(t, 0.9, res.Memories[0].Confidence, 1e-9)
	assert.Equal(t, "Miami", res.City)
	assert.Equal(t, "mora em Miami, gosta de praia", res.Summary)
}

func TestExtractor_StripsCodeFence(t *testing.T) {
	m := model.NewMockModel("test")
	m.Fallback = "```json\n{\"hasMemorableInfo\": true, \"memories\": [{\"type\": \"important\", \"content\": \"tem consulta médica sexta\", \"confidence\": 0.8}]}\n```"

	res := New(m).Extract(context.Background(), "tenho consulta sexta", "")
	require.Len(t, res.Memories, 1)
	assert.Equal(t, core.MemoryTypeImportant, res.Memories[0].Type)
}

func TestExtractor_FailsClosedOnModelError(t *testing.T) {
	m := model.NewMockModel("test")
	m.Err = errors.New("timeout")

	res := New(m).Extract(context.Background(), "Moro em Miami", "")
	assert.False(t, res.HasMemorableInfo)
	assert.Empty(t, res.Memories)
	assert.True(t, res.Empty())
}

func TestExtractor_FailsClosedOnMalformedJSON(t *testing.T) {
	m := model.NewMockModel("test")
	m.Fallback = "desculpe, não consegui extrair nada"

	res := New(m).Extract(context.Background(), "oi", "")
	assert.True(t, res.Empty())
}

func TestExtractor_DropsUnknownTypesAndEmptyContent(t *testing.T) {
	m := model.NewMockModel("test")
	m.Fallback = `{
		"hasMemorableInfo": true,
		"memories": [
			{"type": "banana", "content": "tipo inválido", "confidence": 0.9},
			{"type": "personal", "content": "   ", "confidence": 0.9},
			{"type": "personal", "content": "toca violão", "confidence": 0.8}
		]
	}`

	res := New(m).Extract(context.Background(), "eu toco violão", "")
	require.Len(t, res.Memories, 1)
	assert.Equal(t, "toca violão", res.Memories[0].Content)
}

func TestExtractor_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("a", 1500)
	m := model.NewMockModel("test")
	m.Fallback = `{"hasMemorableInfo": true, "memories": [{"type": "personal", "content": "` + long + `", "confidence": 0.9}]}`

	res := New(m).Extract(context.Background(), "msg", "")
	require.Len(t, res.Memories, 1)
	assert.Len(t, []rune(res.Memories[0].Content), 1000)
}

func TestExtractor_TruncatesAssistantReplyContext(t *testing.T) {
	var captured string
	m := &capturingModel{response: `{"hasMemorableInfo": false, "memories": []}`, captured: &captured}

	New(m).Extract(context.Background(), "oi", strings.Repeat("r", 500))
	// The payload carries at most 200 runes of assistant reply.
	assert.Contains(t, captured, strings.Repeat("r", 200))
	assert.NotContains(t, captured, strings.Repeat("r", 201))
}

type capturingModel struct {
	response string
	captured *string
}

func (c *capturingModel) Complete(_ context.Context, req model.Request) (model.Response, error) {
	*c.captured = req.User
	return model.Response{Text: c.response}, nil
}

func (c *capturingModel) Info() model.Info { return model.Info{Name: "capturing", Provider: "mock"} }
