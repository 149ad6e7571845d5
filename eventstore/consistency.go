package eventstore

import "context"

// ConsistencyLevel tells an engine with a read replica where to read from.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. It is the default, a Query which precedes an Append
	// must see all committed events or the Append will fail with ErrConcurrencyConflict.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica, e.g. for replaying the journal into a read-only report.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key of the consistency level.
const ConsistencyLevelKey contextKey = "eventstore.consistency_level"

// WithStrongConsistency returns a context which routes Query to the primary.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context which allows Query to use a replica.
//
//	ctx = eventstore.WithEventualConsistency(ctx)
//	events, maxSeq, err := store.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context, StrongConsistency if none is set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String returns "strong", "eventual" or "unknown".
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
