package journal

import (
	"context"
	"slices"
	"time"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

// Open restores a Service from the full journal and attaches a Recorder to it,
// so that everything the Service does from now on can be flushed to the journal.
func Open(ctx context.Context, store EventStore, recorderOpts []RecorderOption, opts ...lending.Option) (*lending.Service, *Recorder, error) {
	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := store.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	if err != nil {
		return nil, nil, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, nil, err
	}

	recorder := NewRecorder(store, maxSequenceNumber, recorderOpts...)

	service, err := lending.Rebuild(history, append(slices.Clone(opts), lending.WithEventSink(recorder))...)
	if err != nil {
		return nil, nil, err
	}

	return service, recorder, nil
}

// Restore rebuilds a read-only view of the library from the full journal. It may read from a replica.
func Restore(ctx context.Context, store EventStore, opts ...lending.Option) (*lending.Service, error) {
	return restore(ctx, store, eventstore.BuildEventFilter().MatchingAnyEvent(), opts...)
}

// RestoreAsOf rebuilds the library as it was at until, from the events which occurred up to that instant.
func RestoreAsOf(ctx context.Context, store EventStore, until time.Time, opts ...lending.Option) (*lending.Service, error) {
	return restore(ctx, store, eventstore.BuildEventFilter().MatchingAnyEvent().WithOccurredUntil(until), opts...)
}

func restore(ctx context.Context, store EventStore, filter eventstore.Filter, opts ...lending.Option) (*lending.Service, error) {
	storableEvents, _, err := store.Query(eventstore.WithEventualConsistency(ctx), filter)
	if err != nil {
		return nil, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, err
	}

	return lending.Rebuild(history, opts...)
}

// MemberHistory returns the journaled loan activity of one member, including rejected operations.
func MemberHistory(ctx context.Context, store EventStore, memberID lending.MemberID) (lending.DomainEvents, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			lending.MemberRegisteredEventType,
			lending.ItemLentToMemberEventType,
			lending.ItemReturnedByMemberEventType,
			lending.LoanDateCorrectedEventType,
			lending.CheckoutFailedEventType,
			lending.ReturnFailedEventType,
		).
		AndAnyPredicateOf(eventstore.P("MemberID", memberID.String())).
		Finalize()

	storableEvents, _, err := store.Query(eventstore.WithEventualConsistency(ctx), filter)
	if err != nil {
		return nil, err
	}

	return DomainEventsFrom(storableEvents)
}
