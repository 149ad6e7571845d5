package lending

import (
	"time"
)

// LoanDateCorrectedEventType is the event type identifier.
const LoanDateCorrectedEventType = "LoanDateCorrected"

// LoanDateCorrected represents a correction of the loan date of an active loan.
// The due date is not part of the event, it is always derived from the loan date.
type LoanDateCorrected struct {
	LoanID     string
	MemberID   string
	ItemID     string
	LoanDate   time.Time
	OccurredAt OccurredAt
}

// BuildLoanDateCorrected creates a new LoanDateCorrected event.
func BuildLoanDateCorrected(loan Loan, occurredAt time.Time) LoanDateCorrected {
	return LoanDateCorrected{
		LoanID:     loan.ID().String(),
		MemberID:   loan.MemberID().String(),
		ItemID:     loan.ItemID(),
		LoanDate:   loan.LoanDate(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanDateCorrected) IsEventType() string {
	return LoanDateCorrectedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanDateCorrected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanDateCorrected) IsErrorEvent() bool {
	return false
}
