package lending

// FailureReason tells why a mutating operation was rejected.
type FailureReason string

const (
	// NoFailure is the reason of a successful Result.
	NoFailure FailureReason = ""

	// MemberNotFound - the referenced member does not exist.
	MemberNotFound FailureReason = "member not found"

	// ItemNotFound - the referenced item does not exist.
	ItemNotFound FailureReason = "item not found"

	// ItemUnavailable - the item is already lent.
	ItemUnavailable FailureReason = "item is not available"

	// LoanNotFound - there is no active loan for the member and item.
	LoanNotFound FailureReason = "loan not found"

	// DuplicateIdentifier - the catalog already holds an item with this identifier.
	DuplicateIdentifier FailureReason = "duplicate identifier"

	// EmptyIdentifier - the item has no identifier.
	EmptyIdentifier FailureReason = "empty identifier"
)

// Outcome discriminates a Result.
type Outcome string

const (
	successOutcome Outcome = "success"
	failureOutcome Outcome = "failure"
)

// Result represents the outcome of a mutating Service operation.
//
// Results should only be constructed using SuccessResult and FailureResult.
// On success, Loan and/or Item hold the state after the operation; on failure both are zero values
// and nothing was changed.
type Result struct {
	Outcome Outcome
	Reason  FailureReason
	Loan    Loan
	Item    Item
}

// SuccessResult creates a Result for an applied operation.
func SuccessResult(loan Loan, item Item) Result {
	return Result{
		Outcome: successOutcome,
		Reason:  NoFailure,
		Loan:    loan,
		Item:    item,
	}
}

// FailureResult creates a Result for a rejected operation.
func FailureResult(reason FailureReason) Result {
	return Result{
		Outcome: failureOutcome,
		Reason:  reason,
	}
}

// Succeeded reports whether the operation was applied.
func (r Result) Succeeded() bool {
	return r.Outcome == successOutcome
}

// Err returns the sentinel error matching the failure reason, or nil on success.
// Adapters use it with errors.Is to map outcomes to their transport, e.g. ErrItemNotFound -> 404.
func (r Result) Err() error {
	if r.Succeeded() {
		return nil
	}

	switch r.Reason {
	case MemberNotFound:
		return ErrMemberNotFound
	case ItemNotFound:
		return ErrItemNotFound
	case ItemUnavailable:
		return ErrItemUnavailable
	case LoanNotFound:
		return ErrLoanNotFound
	case DuplicateIdentifier:
		return ErrDuplicateIdentifier
	case EmptyIdentifier:
		return ErrEmptyIdentifier
	default:
		return nil
	}
}
