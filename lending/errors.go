package lending

import (
	"errors"
)

var (
	// ErrMemberNotFound is returned when the referenced member identifier does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrItemNotFound is returned when the referenced item identifier does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemUnavailable is returned when a checkout is attempted on an item with an active loan.
	ErrItemUnavailable = errors.New("item is currently not available")

	// ErrLoanNotFound is returned when there is no active loan for the member and item.
	ErrLoanNotFound = errors.New("no active loan found")

	// ErrDuplicateIdentifier is returned when an item with the same identifier is already in the catalog.
	ErrDuplicateIdentifier = errors.New("duplicate item identifier")

	// ErrEmptyIdentifier is returned when an item without identifier is added to the catalog.
	ErrEmptyIdentifier = errors.New("item identifier must not be empty")

	// ErrInconsistentHistory is returned by Rebuild when the event history violates the invariants.
	ErrInconsistentHistory = errors.New("event history is inconsistent")
)
