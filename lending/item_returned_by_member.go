package lending

import (
	"time"
)

// ItemReturnedByMemberEventType is the event type identifier.
const ItemReturnedByMemberEventType = "ItemReturnedByMember"

// ItemReturnedByMember represents a successful return.
type ItemReturnedByMember struct {
	LoanID     string
	MemberID   string
	ItemID     string
	ReturnedOn time.Time
	OccurredAt OccurredAt
}

// BuildItemReturnedByMember creates a new ItemReturnedByMember event.
func BuildItemReturnedByMember(loan Loan, returnedOn time.Time, occurredAt time.Time) ItemReturnedByMember {
	return ItemReturnedByMember{
		LoanID:     loan.ID().String(),
		MemberID:   loan.MemberID().String(),
		ItemID:     loan.ItemID(),
		ReturnedOn: ToDate(returnedOn),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemReturnedByMember) IsEventType() string {
	return ItemReturnedByMemberEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemReturnedByMember) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemReturnedByMember) IsErrorEvent() bool {
	return false
}
