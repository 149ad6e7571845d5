package lending

import (
	"fmt"
	"time"
)

// LoanPeriodDays is the fixed number of days between the loan date and the due date.
const LoanPeriodDays = 21

// Loan connects exactly one Member with exactly one Item by their identifiers.
//
// The due date is always derived from the loan date, which is why the fields are not exported:
// the only way to change the loan date is WithLoanDate, which re-derives the due date in the same step.
type Loan struct {
	id       LoanID
	memberID MemberID
	itemID   ItemIdentifier
	loanDate time.Time
	dueDate  time.Time
}

// ReturnedLoan is a Loan which was closed by a return.
type ReturnedLoan struct {
	Loan       Loan
	ReturnedOn time.Time
}

// BuildLoan creates a Loan dated on the calendar day of loanDate and due LoanPeriodDays later.
func BuildLoan(id LoanID, memberID MemberID, itemID ItemIdentifier, loanDate time.Time) Loan {
	day := ToDate(loanDate)

	return Loan{
		id:       id,
		memberID: memberID,
		itemID:   itemID,
		loanDate: day,
		dueDate:  dueDateFor(day),
	}
}

func dueDateFor(loanDate time.Time) time.Time {
	return loanDate.AddDate(0, 0, LoanPeriodDays)
}

// ID returns the loan identifier.
func (l Loan) ID() LoanID {
	return l.id
}

// MemberID returns the identifier of the borrowing member.
func (l Loan) MemberID() MemberID {
	return l.memberID
}

// ItemID returns the identifier of the lent item.
func (l Loan) ItemID() ItemIdentifier {
	return l.itemID
}

// LoanDate returns the calendar date the item was lent.
func (l Loan) LoanDate() time.Time {
	return l.loanDate
}

// DueDate returns the calendar date the item must be returned by.
func (l Loan) DueDate() time.Time {
	return l.dueDate
}

// IsZero reports whether l is the zero Loan, e.g. the Loan of a failed Result.
func (l Loan) IsZero() bool {
	return l.id == LoanID{}
}

// WithLoanDate returns a copy of the loan with a corrected loan date and the matching due date.
func (l Loan) WithLoanDate(loanDate time.Time) Loan {
	day := ToDate(loanDate)
	l.loanDate = day
	l.dueDate = dueDateFor(day)

	return l
}

// IsOverdue reports whether the due date lies strictly before today.
func (l Loan) IsOverdue(today time.Time) bool {
	return ToDate(today).After(l.dueDate)
}

// DaysOverdue returns how many days the loan is past its due date, or 0 if it is not overdue.
func (l Loan) DaysOverdue(today time.Time) int {
	if !l.IsOverdue(today) {
		return 0
	}

	return daysBetween(l.dueDate, today)
}

// String renders the loan for reports.
func (l Loan) String() string {
	return fmt.Sprintf(
		"Loan[%s]: member %s -> item %s (loaned: %s, due: %s)",
		l.id, l.memberID, l.itemID, l.loanDate.Format(time.DateOnly), l.dueDate.Format(time.DateOnly),
	)
}
