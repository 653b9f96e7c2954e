package mocks

import (
	"context"
	"sync"

	"github.com/luminapath/lumina-api/internal/classifier"
)

// MockClassifier is a configurable test double for classifier.Classifier.
type MockClassifier struct {
	// ClassifyFn, when set, handles every Classify call.
	ClassifyFn func(ctx context.Context, imageBytes []byte, contentType string) (string, error)

	// Label and Err are returned when ClassifyFn is nil.
	Label string
	Err   error

	mu    sync.Mutex
	calls int
}

var _ classifier.Classifier = (*MockClassifier)(nil)

// Classify resolves via ClassifyFn when set, otherwise returns Label/Err.
func (m *MockClassifier) Classify(ctx context.Context, imageBytes []byte, contentType string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.ClassifyFn != nil {
		return m.ClassifyFn(ctx, imageBytes, contentType)
	}
	return m.Label, m.Err
}

// Calls returns how many times Classify was invoked.
func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
