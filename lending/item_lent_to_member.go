package lending

import (
	"time"
)

// ItemLentToMemberEventType is the event type identifier.
const ItemLentToMemberEventType = "ItemLentToMember"

// ItemLentToMember represents a successful checkout.
type ItemLentToMember struct {
	LoanID     string
	MemberID   string
	ItemID     string
	LoanDate   time.Time
	OccurredAt OccurredAt
}

// BuildItemLentToMember creates a new ItemLentToMember event.
func BuildItemLentToMember(loan Loan, occurredAt time.Time) ItemLentToMember {
	return ItemLentToMember{
		LoanID:     loan.ID().String(),
		MemberID:   loan.MemberID().String(),
		ItemID:     loan.ItemID(),
		LoanDate:   loan.LoanDate(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemLentToMember) IsEventType() string {
	return ItemLentToMemberEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemLentToMember) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemLentToMember) IsErrorEvent() bool {
	return false
}
