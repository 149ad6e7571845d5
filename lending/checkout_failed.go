package lending

import (
	"time"
)

// CheckoutFailedEventType is the event type identifier.
const CheckoutFailedEventType = "CheckoutFailed"

// CheckoutFailed represents a checkout which was rejected due to business rule violations.
type CheckoutFailed struct {
	MemberID    string
	ItemID      string
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildCheckoutFailed creates a new CheckoutFailed event.
func BuildCheckoutFailed(
	memberID MemberID,
	itemID ItemIdentifier,
	reason FailureReason,
	occurredAt time.Time,
) CheckoutFailed {

	return CheckoutFailed{
		MemberID:    memberID.String(),
		ItemID:      itemID,
		FailureInfo: string(reason),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e CheckoutFailed) IsEventType() string {
	return CheckoutFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e CheckoutFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e CheckoutFailed) IsErrorEvent() bool {
	return true
}
