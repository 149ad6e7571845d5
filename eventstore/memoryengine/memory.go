package memoryengine

import (
	"context"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
)

const (
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
}

// Option configures an EventStore.
type Option func(*EventStore)

// WithLogger sets the logger for the EventStore.
func WithLogger(logger Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

type sequencedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	payload        map[string]any
}

// EventStore keeps the journal in memory. It is safe for concurrent use.
type EventStore struct {
	mu     sync.RWMutex
	events []sequencedEvent
	logger Logger
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns the events matching the filter in sequence order and the highest matching sequence number.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	matching := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if matches(filter, stored) {
			matching = append(matching, stored.event)
			maxSequenceNumber = stored.sequenceNumber
		}
	}

	return matching, maxSequenceNumber, nil
}

// Append appends the events atomically if the highest sequence number matching the filter
// is still expectedMaxSequenceNumber, otherwise it fails with eventstore.ErrConcurrencyConflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	if len(events) == 0 {
		return eventstore.ErrNoEventsToAppend
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actual := eventstore.MaxSequenceNumberUint(0)
	for _, stored := range es.events {
		if matches(filter, stored) {
			actual = stored.sequenceNumber
		}
	}

	if actual != expectedMaxSequenceNumber {
		if es.logger != nil {
			es.logger.Info(logMsgConcurrencyConflict, logAttrExpectedSequence, expectedMaxSequenceNumber, logAttrActualSequence, actual)
		}

		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(es.events))
	appended := make([]sequencedEvent, 0, len(events))

	for _, event := range events {
		payload := make(map[string]any)
		if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
			return eventstore.ErrInvalidPayloadJSON
		}

		next++
		appended = append(appended, sequencedEvent{sequenceNumber: next, event: event, payload: payload})
	}

	es.events = append(es.events, appended...)

	if es.logger != nil {
		es.logger.Info(logMsgEventsAppended, logAttrEventCount, len(events))
	}

	return nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

func matches(filter eventstore.Filter, stored sequencedEvent) bool {
	occurredAt := stored.event.OccurredAt

	if from := filter.OccurredFrom(); !from.IsZero() && occurredAt.Before(from) {
		return false
	}

	if until := filter.OccurredUntil(); !until.IsZero() && occurredAt.After(until) {
		return false
	}

	if len(filter.Items()) == 0 {
		return true
	}

	return slices.ContainsFunc(filter.Items(), func(item eventstore.FilterItem) bool {
		return matchesItem(item, stored)
	})
}

func matchesItem(item eventstore.FilterItem, stored sequencedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	holds := func(predicate eventstore.FilterPredicate) bool {
		value, ok := stored.payload[predicate.Key()].(string)
		return ok && value == predicate.Val()
	}

	if item.AllPredicatesMustMatch() {
		for _, predicate := range item.Predicates() {
			if !holds(predicate) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(item.Predicates(), holds)
}
