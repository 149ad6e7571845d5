package memoryengine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/eventstore/memoryengine"
)

var dayZero = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func givenEvent(t *testing.T, eventType string, payloadJSON string, occurredAt time.Time) eventstore.StorableEvent {
	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, occurredAt, []byte(payloadJSON))
	require.NoError(t, err, "error in arranging test data")

	return event
}

func givenStoreWith(t *testing.T, events ...eventstore.StorableEvent) *memoryengine.EventStore {
	es := memoryengine.NewEventStore()
	require.NoError(t, es.Append(t.Context(), eventstore.BuildEventFilter().MatchingAnyEvent(), 0, events...))

	return es
}

func Test_Query_AppliesFilter(t *testing.T) {
	// arrange
	es := givenStoreWith(
		t,
		givenEvent(t, "MemberRegistered", `{"MemberID":"m-1"}`, dayZero),
		givenEvent(t, "ItemLentToMember", `{"MemberID":"m-1","ItemID":"A"}`, dayZero.Add(time.Hour)),
		givenEvent(t, "ItemLentToMember", `{"MemberID":"m-2","ItemID":"B"}`, dayZero.Add(2*time.Hour)),
		givenEvent(t, "ItemReturnedByMember", `{"MemberID":"m-1","ItemID":"A"}`, dayZero.Add(3*time.Hour)),
	)

	tests := []struct {
		name          string
		filter        eventstore.Filter
		expectedCount int
		expectedMax   eventstore.MaxSequenceNumberUint
	}{
		{name: "any event", filter: eventstore.BuildEventFilter().MatchingAnyEvent(), expectedCount: 4, expectedMax: 4},
		{
			name:          "event type",
			filter:        eventstore.BuildEventFilter().Matching().AnyEventTypeOf("ItemLentToMember").Finalize(),
			expectedCount: 2, expectedMax: 3,
		},
		{
			name: "event type and predicate",
			filter: eventstore.BuildEventFilter().Matching().
				AnyEventTypeOf("ItemLentToMember", "ItemReturnedByMember").
				AndAnyPredicateOf(eventstore.P("MemberID", "m-1")).
				Finalize(),
			expectedCount: 2, expectedMax: 4,
		},
		{
			name: "all predicates",
			filter: eventstore.BuildEventFilter().Matching().
				AllPredicatesOf(eventstore.P("MemberID", "m-2"), eventstore.P("ItemID", "A")).
				Finalize(),
			expectedCount: 0, expectedMax: 0,
		},
		{
			name:          "time window",
			filter:        eventstore.BuildEventFilter().MatchingAnyEvent().WithOccurredFrom(dayZero.Add(time.Hour)).WithOccurredUntil(dayZero.Add(2 * time.Hour)),
			expectedCount: 2, expectedMax: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, maxSeq, err := es.Query(t.Context(), tt.filter)

			require.NoError(t, err)
			assert.Len(t, events, tt.expectedCount)
			assert.Equal(t, tt.expectedMax, maxSeq)
		})
	}
}

func Test_Append_DetectsConcurrencyConflict(t *testing.T) {
	// arrange
	es := givenStoreWith(t, givenEvent(t, "MemberRegistered", `{"MemberID":"m-1"}`, dayZero))
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()
	_, maxSeq, err := es.Query(t.Context(), filter)
	require.NoError(t, err)

	// act
	firstErr := es.Append(t.Context(), filter, maxSeq, givenEvent(t, "MemberRegistered", `{"MemberID":"m-2"}`, dayZero))
	secondErr := es.Append(t.Context(), filter, maxSeq, givenEvent(t, "MemberRegistered", `{"MemberID":"m-3"}`, dayZero))

	// assert
	assert.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 2, es.Len())
}

func Test_Append_OnlyConflictsWithinTheFilteredStream(t *testing.T) {
	// arrange
	es := givenStoreWith(t, givenEvent(t, "ItemLentToMember", `{"ItemID":"A"}`, dayZero))
	itemB := eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("ItemID", "B")).Finalize()

	// act
	err := es.Append(t.Context(), itemB, 0, givenEvent(t, "ItemLentToMember", `{"ItemID":"B"}`, dayZero))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, es.Len())
}

func Test_Append_RejectsEmptyBatch(t *testing.T) {
	es := memoryengine.NewEventStore()

	err := es.Append(t.Context(), eventstore.BuildEventFilter().MatchingAnyEvent(), 0)

	assert.ErrorIs(t, err, eventstore.ErrNoEventsToAppend)
}
