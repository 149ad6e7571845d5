package eventstore

import (
	"errors"
)

var (
	ErrEmptyEventsTableName        = errors.New("empty events table name supplied")
	ErrNilDatabaseConnection       = errors.New("nil database connection supplied")
	ErrConcurrencyConflict         = errors.New("concurrency error, no rows were affected")
	ErrInvalidPayloadJSON          = errors.New("payload json is not valid")
	ErrInvalidMetadataJSON         = errors.New("metadata json is not valid")
	ErrEmptyEventType              = errors.New("event type must not be empty")
	ErrNoEventsToAppend            = errors.New("at least one event must be supplied")
	ErrBuildingQueryFailed         = errors.New("building the query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending the event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrCreatingSchemaFailed        = errors.New("creating the events table failed")
)

// MaxSequenceNumberUint is the highest sequence number of the events matching a Filter,
// 0 if no event matches. Append uses it as the optimistic concurrency token.
type MaxSequenceNumberUint = uint
