package services

import (
	"context"
	"sync"
)

// MockEventPublisher is an in-memory EventPublisher for testing
type MockEventPublisher struct {
	events []OrderEvent
	mu     sync.RWMutex
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// PublishOrderEvent records the event instead of publishing it
func (m *MockEventPublisher) PublishOrderEvent(_ context.Context, event OrderEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	return nil
}

// Close is a no-op for the mock
func (m *MockEventPublisher) Close() error {
	return nil
}

// Published returns all recorded events (for testing assertions)
func (m *MockEventPublisher) Published() []OrderEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]OrderEvent, len(m.events))
	copy(events, m.events)
	return events
}

// Clear removes all recorded events
func (m *MockEventPublisher) Clear() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
