// Package journal connects the lending engine to an event store.
//
// The lending.Service only knows domain events and an EventSink. This package maps those events to
// eventstore.StorableEvent(s) and back, records them while the Service runs (Recorder) and restores
// a Service from the stored history (Open, Restore).
//
// Any engine with the Query/Append contract of the eventstore package can be used, e.g.
// postgresengine.EventStore or memoryengine.EventStore.
package journal
