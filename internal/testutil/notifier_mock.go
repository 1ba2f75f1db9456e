package testutil

import (
	"context"
	"sync"
)

// MockNotifier is a notify.Notifier that records sent messages instead of
// dispatching them. Safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex
	// SendError is the error to return from Send
	SendError error

	messages []string
}

// NewMockNotifier creates an empty MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Send records the message and returns the configured error.
func (m *MockNotifier) Send(_ context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendError != nil {
		return m.SendError
	}
	m.messages = append(m.messages, message)
	return nil
}

// Messages returns a copy of the recorded messages.
func (m *MockNotifier) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}

// WithError configures the mock to fail every Send.
func (m *MockNotifier) WithError(err error) *MockNotifier {
	m.SendError = err
	return m
}
