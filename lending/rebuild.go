package lending

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Rebuild creates a Service and replays the history of domain events into it, restoring identifiers,
// loan dates, borrow counters and the returned-loan history.
//
// Error events (rejected operations) do not change state and are skipped. Events are applied
// directly to the components, so a configured EventSink does not receive them again.
// A history which violates the invariants, e.g. lending an unknown item twice, yields ErrInconsistentHistory.
func Rebuild(history DomainEvents, opts ...Option) (*Service, error) {
	s := NewService(opts...)

	s.mu.Lock()
	defer s.mu.Unlock()

	for position, event := range history {
		if err := s.apply(event); err != nil {
			return nil, errors.Join(
				ErrInconsistentHistory,
				fmt.Errorf("event %d (%s): %w", position, event.IsEventType(), err),
			)
		}
	}

	return s, nil
}

// apply evolves the state by one event.
func (s *Service) apply(event DomainEvent) error { //nolint:gocognit // one branch per event type
	switch e := event.(type) {
	case ItemAddedToCatalog:
		return s.catalog.AddItem(BuildItem(e.ItemID, e.Title, e.Author, e.PublicationYear))

	case MemberRegistered:
		memberID, err := uuid.Parse(e.MemberID)
		if err != nil {
			return err
		}

		if !s.members.insert(Member{ID: memberID, FullName: e.FullName}) {
			return errors.New("member registered twice")
		}

	case ItemLentToMember:
		loanID, memberID, err := parseLoanReferences(e.LoanID, e.MemberID)
		if err != nil {
			return err
		}

		if _, ok := s.members.FindByIdentifier(memberID); !ok {
			return ErrMemberNotFound
		}

		item, ok := s.catalog.FindByIdentifier(e.ItemID)
		if !ok {
			return ErrItemNotFound
		}

		if !item.Available {
			return ErrItemUnavailable
		}

		if !s.ledger.insert(BuildLoan(loanID, memberID, e.ItemID, e.LoanDate)) {
			return errors.New("loan identifier used twice")
		}

		s.catalog.markOnLoan(e.ItemID)

	case ItemReturnedByMember:
		loanID, err := uuid.Parse(e.LoanID)
		if err != nil {
			return err
		}

		closed, ok := s.ledger.Remove(loanID, e.ReturnedOn)
		if !ok {
			return ErrLoanNotFound
		}

		s.catalog.markAvailable(closed.Loan.ItemID())

	case LoanDateCorrected:
		loanID, err := uuid.Parse(e.LoanID)
		if err != nil {
			return err
		}

		if _, ok := s.ledger.CorrectLoanDate(loanID, e.LoanDate); !ok {
			return ErrLoanNotFound
		}

	default:
		if !event.IsErrorEvent() {
			return fmt.Errorf("unsupported event type %s", event.IsEventType())
		}
	}

	return nil
}

func parseLoanReferences(loanID string, memberID string) (LoanID, MemberID, error) {
	parsedLoanID, err := uuid.Parse(loanID)
	if err != nil {
		return LoanID{}, MemberID{}, err
	}

	parsedMemberID, err := uuid.Parse(memberID)
	if err != nil {
		return LoanID{}, MemberID{}, err
	}

	return parsedLoanID, parsedMemberID, nil
}
