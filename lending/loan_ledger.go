package lending

import (
	"slices"
	"time"
)

// LoanLedger owns the active loans in ledger order and the history of returned loans.
//
// A LoanLedger is not safe for concurrent use on its own, the Service serializes access to it.
type LoanLedger struct {
	ids      IDGenerator
	active   []Loan
	returned []ReturnedLoan
}

// NewLoanLedger creates an empty LoanLedger which draws loan identifiers from ids.
func NewLoanLedger(ids IDGenerator) *LoanLedger {
	return &LoanLedger{
		ids:      ids,
		active:   make([]Loan, 0),
		returned: make([]ReturnedLoan, 0),
	}
}

// Create opens a new active loan dated loanDate and due LoanPeriodDays later.
// The loan identifier is unique among the active and the returned loans.
func (l *LoanLedger) Create(memberID MemberID, itemID ItemIdentifier, loanDate time.Time) Loan {
	loanID := l.ids.NewID()

	// a restored ledger may already hold identifiers the generator hands out again
	for l.taken(loanID) {
		loanID = l.ids.NewID()
	}

	loan := BuildLoan(loanID, memberID, itemID, loanDate)
	l.active = append(l.active, loan)

	return loan
}

// Remove closes the active loan with the given identifier and moves it to the history.
// Removing an absent loan is a no-op which returns false.
func (l *LoanLedger) Remove(loanID LoanID, returnedOn time.Time) (ReturnedLoan, bool) {
	pos := l.position(loanID)
	if pos < 0 {
		return ReturnedLoan{}, false
	}

	closed := ReturnedLoan{Loan: l.active[pos], ReturnedOn: ToDate(returnedOn)}
	l.active = slices.Delete(l.active, pos, pos+1)
	l.returned = append(l.returned, closed)

	return closed, true
}

// FindActive returns the active loan of this member for this item.
func (l *LoanLedger) FindActive(memberID MemberID, itemID ItemIdentifier) (Loan, bool) {
	for _, loan := range l.active {
		if loan.memberID == memberID && loan.itemID == itemID {
			return loan, true
		}
	}

	return Loan{}, false
}

// FindActiveByItem returns the active loan for this item, whoever borrowed it.
func (l *LoanLedger) FindActiveByItem(itemID ItemIdentifier) (Loan, bool) {
	for _, loan := range l.active {
		if loan.itemID == itemID {
			return loan, true
		}
	}

	return Loan{}, false
}

// ActiveByMember returns the active loans of this member in ledger order.
func (l *LoanLedger) ActiveByMember(memberID MemberID) []Loan {
	found := make([]Loan, 0)

	for _, loan := range l.active {
		if loan.memberID == memberID {
			found = append(found, loan)
		}
	}

	return found
}

// Overdue returns all active loans whose due date is strictly before today, in ledger order.
// Nothing is cached, the answer is recomputed from the due dates on every call.
func (l *LoanLedger) Overdue(today time.Time) []Loan {
	found := make([]Loan, 0)

	for _, loan := range l.active {
		if loan.IsOverdue(today) {
			found = append(found, loan)
		}
	}

	return found
}

// CorrectLoanDate replaces the loan date of an active loan, re-deriving its due date in the same step.
func (l *LoanLedger) CorrectLoanDate(loanID LoanID, loanDate time.Time) (Loan, bool) {
	pos := l.position(loanID)
	if pos < 0 {
		return Loan{}, false
	}

	l.active[pos] = l.active[pos].WithLoanDate(loanDate)

	return l.active[pos], true
}

// Active returns all active loans in ledger order.
func (l *LoanLedger) Active() []Loan {
	return slices.Clone(l.active)
}

// History returns all returned loans in the order they were returned.
func (l *LoanLedger) History() []ReturnedLoan {
	return slices.Clone(l.returned)
}

// Len returns the number of active loans.
func (l *LoanLedger) Len() int {
	return len(l.active)
}

// insert appends an already built loan, used when rebuilding from history.
// It refuses a loan whose identifier is already taken.
func (l *LoanLedger) insert(loan Loan) bool {
	if l.taken(loan.id) {
		return false
	}

	l.active = append(l.active, loan)

	return true
}

func (l *LoanLedger) taken(loanID LoanID) bool {
	if l.position(loanID) >= 0 {
		return true
	}

	return slices.ContainsFunc(l.returned, func(closed ReturnedLoan) bool {
		return closed.Loan.id == loanID
	})
}

func (l *LoanLedger) position(loanID LoanID) int {
	return slices.IndexFunc(l.active, func(loan Loan) bool {
		return loan.id == loanID
	})
}
