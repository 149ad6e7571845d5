package journal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

const (
	logMsgFlushed         = "journal flushed"
	logMsgFlushConflicted = "journal flush rejected, the journal was changed by another writer"
	logMsgFlushOvertaken  = "journal flushed, but another writer appended right after"
	logMsgRefreshFailed   = "journal flushed, but reading back the max sequence number failed"
	logAttrEventCount     = "event_count"
	logAttrMaxSequence    = "max_sequence"
	logAttrCorrelationID  = "correlation_id"
	logAttrError          = "error"
)

// ErrRecordingFailed is returned by Flush when the pending events could not be mapped.
var ErrRecordingFailed = errors.New("recording domain events failed")

type pendingEvent struct {
	event    lending.DomainEvent
	metadata EventMetadata
}

// Recorder is a lending.EventSink which buffers the domain events of a Service and
// appends them to the journal on Flush.
//
// The whole journal is one stream: Flush only succeeds if nobody else appended since the Recorder
// last saw the journal, which preserves the single-writer guarantee of the Service across processes.
type Recorder struct {
	mu            sync.Mutex
	store         EventStore
	expected      eventstore.MaxSequenceNumberUint
	correlationID uuid.UUID
	lastMessageID uuid.UUID
	pending       []pendingEvent
	logger        Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithCorrelationID sets the correlation ID written into the metadata of all recorded events.
// Default: a random ID per Recorder.
func WithCorrelationID(id uuid.UUID) RecorderOption {
	return func(r *Recorder) {
		r.correlationID = id
	}
}

// WithRecorderLogger sets the logger of the Recorder.
func WithRecorderLogger(logger Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder creates a Recorder for a journal whose max sequence number is currently expected.
func NewRecorder(store EventStore, expected eventstore.MaxSequenceNumberUint, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:         store,
		expected:      expected,
		correlationID: uuid.New(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.lastMessageID = r.correlationID

	return r
}

// Publish implements lending.EventSink. Each event is caused by the one recorded before it.
func (r *Recorder) Publish(event lending.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messageID := uuid.New()
	r.pending = append(r.pending, pendingEvent{
		event:    event,
		metadata: BuildEventMetadata(messageID, r.lastMessageID, r.correlationID),
	})
	r.lastMessageID = messageID
}

// Pending returns the number of events waiting for Flush.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}

// Flush appends all pending events in one atomic append.
//
// On eventstore.ErrConcurrencyConflict the pending events are kept and the error is returned:
// the decisions behind them were made on a state which is no longer the journal's state,
// so the caller has to restore and decide again.
//
// After a successful append the Recorder reads back the new max sequence number. If another writer
// appended right after, or if reading back fails, the append still counts and Flush returns nil,
// but the Recorder keeps its old expected max sequence number and logs a warning.
// The next Flush then fails with eventstore.ErrConcurrencyConflict.
func (r *Recorder) Flush(ctx context.Context) error {
	ctx = eventstore.WithStrongConsistency(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return nil
	}

	storableEvents := make(eventstore.StorableEvents, 0, len(r.pending))
	oldest := r.pending[0].event.HasOccurredAt()

	for _, pending := range r.pending {
		storableEvent, err := StorableEventFrom(pending.event, pending.metadata)
		if err != nil {
			return errors.Join(ErrRecordingFailed, err)
		}

		storableEvents = append(storableEvents, storableEvent)
		oldest = earliest(oldest, pending.event.HasOccurredAt())
	}

	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	if err := r.store.Append(ctx, filter, r.expected, storableEvents...); err != nil {
		if errors.Is(err, eventstore.ErrConcurrencyConflict) {
			r.logWarn(logMsgFlushConflicted, logAttrMaxSequence, r.expected)
		}

		return err
	}

	r.pending = r.pending[:0]

	// Every event of this batch occurred at or after oldest, so the window contains the new maximum.
	window, maxSequenceNumber, err := r.store.Query(ctx, filter.WithOccurredFrom(oldest))
	if err != nil {
		r.logWarn(logMsgRefreshFailed, logAttrError, err.Error())

		return nil
	}

	if !r.endsWithOwnEvent(window) {
		// Keeping the old expected value makes the next Flush fail with a concurrency conflict.
		r.logWarn(logMsgFlushOvertaken, logAttrMaxSequence, maxSequenceNumber)

		return nil
	}

	r.expected = maxSequenceNumber
	r.logInfo(logMsgFlushed, logAttrEventCount, len(storableEvents), logAttrMaxSequence, maxSequenceNumber, logAttrCorrelationID, r.correlationID.String())

	return nil
}

func (r *Recorder) endsWithOwnEvent(window eventstore.StorableEvents) bool {
	if len(window) == 0 {
		return false
	}

	metadata, err := EventMetadataFrom(window[len(window)-1])
	if err != nil {
		return false
	}

	return metadata.MessageID == r.lastMessageID.String()
}

func (r *Recorder) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Recorder) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}

	return a
}
