package mocks

import (
	"context"
	"sync"

	"github.com/luminapath/lumina-api/internal/mail"
)

// MockMailer is a configurable test double for mail.Mailer.
type MockMailer struct {
	// SendErr is returned from every Send call.
	SendErr error

	mu   sync.Mutex
	sent []mail.Message
}

var _ mail.Mailer = (*MockMailer)(nil)

// Send records the message and returns SendErr.
func (m *MockMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if m.SendErr != nil {
		return m.SendErr
	}
	return nil
}

// Sent returns a copy of the messages passed to Send.
func (m *MockMailer) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}
