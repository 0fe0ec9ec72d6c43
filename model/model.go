package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MediaRef references one image to include in a vision request. Exactly one of
// URL or Data should be set; MIMEType is required when Data is used.
type MediaRef struct {
	URL      string `json:"url,omitempty"`
	Data     []byte `json:"data,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

// Request captures the normalized model input produced by agents.
type Request struct {
	Instructions string     `json:"instructions"` // System prompt
	Prompt       string     `json:"prompt"`       // User prompt
	Media        []MediaRef `json:"media,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed output of a single model exchange.
type Response struct {
	Text  string      `json:"text"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name           string `json:"name"`
	Provider       string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsVision bool   `json:"supports_vision"`
}

// Model is the minimal interface required by agents to drive generation.
// Implementations must be safe for concurrent use; each call is independent.
type Model interface {
	Generate(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
//
// Responses resolve in priority order: an injected error, the scripted queue
// (consumed front to back), a canned response registered for the exact
// prompt, then a generic echo. All received requests are recorded for
// assertion.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	queue     []string
	err       error
	requests  []Request
}

// NewMockModel constructs a MockModel with vision support enabled.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info: Info{
			Name:           name,
			Provider:       provider,
			SupportsVision: true,
		},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Queue appends scripted responses returned in order regardless of prompt.
func (m *MockModel) Queue(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// FailWith makes every subsequent Generate call return err. Pass nil to clear.
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns a copy of all requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.err != nil {
		return Response{}, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return Response{Text: next}, nil
	}
	if resp, ok := m.responses[req.Prompt]; ok {
		return Response{Text: resp}, nil
	}
	return Response{Text: fmt.Sprintf("Mock response to: %s", strings.TrimSpace(req.Prompt))}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
