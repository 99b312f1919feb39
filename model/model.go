package model

import (
	"context"
	"fmt"
)

// Request captures the normalized input for a single-shot completion.
type Request struct {
	// System carries the task instructions (prompt template).
	System string `json:"system,omitempty"`
	// User carries the per-call payload the instructions operate on.
	User string `json:"user"`
}

// Response is the completed model output.
type Response struct {
	Text string `json:"text"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive the generative
// collaborators (Extractor, SummaryMerger, LocationClassifier).
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests and local
// wiring. Responses are keyed by the request's User payload; unmatched
// requests receive Fallback (or a generic echo when Fallback is empty).
type MockModel struct {
	info      Info
	responses map[string]string

	// Fallback is returned for payloads without a registered response.
	Fallback string
	// Err, when set, is returned by every Complete call. Used to exercise
	// fail-closed paths.
	Err error

	// Calls counts Complete invocations (not safe for concurrent use; test
	// helper only).
	Calls int
}

// NewMockModel constructs an empty MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a payload.
func (m *MockModel) AddResponse(user, response string) { m.responses[user] = response }

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (Response, error) {
	m.Calls++
	if m.Err != nil {
		return Response{}, m.Err
	}
	if resp, ok := m.responses[req.User]; ok {
		return Response{Text: resp}, nil
	}
	if m.Fallback != "" {
		return Response{Text: m.Fallback}, nil
	}
	return Response{Text: fmt.Sprintf("Mock response to: %s", req.User)}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
