package lending

import (
	"time"
)

// ReturnFailedEventType is the event type identifier.
const ReturnFailedEventType = "ReturnFailed"

// ReturnFailed represents a return which was rejected because there was no matching active loan.
type ReturnFailed struct {
	MemberID    string
	ItemID      string
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildReturnFailed creates a new ReturnFailed event.
func BuildReturnFailed(
	memberID MemberID,
	itemID ItemIdentifier,
	reason FailureReason,
	occurredAt time.Time,
) ReturnFailed {

	return ReturnFailed{
		MemberID:    memberID.String(),
		ItemID:      itemID,
		FailureInfo: string(reason),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReturnFailed) IsEventType() string {
	return ReturnFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturnFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e ReturnFailed) IsErrorEvent() bool {
	return true
}
