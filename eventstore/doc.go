// Package eventstore provides the storage-agnostic abstractions of the lending journal.
//
// The journal is an append-only log of the domain events of the lending package. This package defines
// what an engine needs to know about them, nothing more:
//   - StorableEvent: event type, occurrence time, JSON payload and JSON metadata
//   - Filter: which events belong to a "dynamic event stream" (event types, payload predicates, time window)
//   - MaxSequenceNumberUint: the optimistic concurrency token of such a stream
//
// Typical usage, all events of one member:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			lending.ItemLentToMemberEventType,
//			lending.ItemReturnedByMemberEventType).
//		AndAnyPredicateOf(eventstore.P("MemberID", memberID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.Append(ctx, filter, maxSeq, newEvent)
package eventstore
