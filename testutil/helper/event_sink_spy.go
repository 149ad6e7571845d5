package helper

import (
	"sync"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// EventSinkSpy is a lending.EventSink which captures all published events for testing.
type EventSinkSpy struct {
	mu     sync.Mutex
	events lending.DomainEvents
}

// NewEventSinkSpy creates a new EventSinkSpy.
func NewEventSinkSpy() *EventSinkSpy {
	return &EventSinkSpy{events: make(lending.DomainEvents, 0)}
}

// Publish implements lending.EventSink.
func (s *EventSinkSpy) Publish(event lending.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
}

// Events returns a copy of all captured events in publishing order.
func (s *EventSinkSpy) Events() lending.DomainEvents {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(lending.DomainEvents(nil), s.events...)
}

// LastEvent returns the most recently published event, or nil.
func (s *EventSinkSpy) LastEvent() lending.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == 0 {
		return nil
	}

	return s.events[len(s.events)-1]
}
