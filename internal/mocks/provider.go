package mocks

import (
	"context"
	"sync"

	"github.com/luminapath/lumina-api/internal/generation"
)

// MockProvider implements generation.Provider for testing.
//
// Behavior resolution order: GenerateFn if set, then the Script (consumed one
// outcome per call, last entry repeating), then the zero-value success.
type MockProvider struct {
	// NameValue is returned by Name. Defaults to "mock".
	NameValue string

	// GenerateFn allows test cases to fully script Generate behavior.
	GenerateFn func(ctx context.Context, prompt string) generation.Outcome

	// Script is a sequence of outcomes returned by successive calls. When
	// calls outnumber entries, the final entry repeats.
	Script []generation.Outcome

	// Call tracking for verification.
	mu      sync.Mutex
	calls   int
	prompts []string
}

// Name implements generation.Provider.
func (m *MockProvider) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

// Generate implements generation.Provider.
func (m *MockProvider) Generate(ctx context.Context, prompt string) generation.Outcome {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}

	if len(m.Script) > 0 {
		idx := call - 1
		if idx >= len(m.Script) {
			idx = len(m.Script) - 1
		}
		return m.Script[idx]
	}

	return generation.Success("mock text")
}

// Calls returns how many times Generate was invoked.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Prompts returns a copy of every prompt passed to Generate.
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// NewProviderWithOutcome creates a MockProvider that always returns the given
// outcome.
func NewProviderWithOutcome(name string, outcome generation.Outcome) *MockProvider {
	return &MockProvider{
		NameValue: name,
		Script:    []generation.Outcome{outcome},
	}
}
