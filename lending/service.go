package lending

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const defaultLibraryName = "Library"

// Service orchestrates the Catalog, the MemberRegistry and the LoanLedger into atomic
// checkout and return transactions.
//
// All mutations are serialized by a single write lock over the whole engine, queries share a read lock.
// Therefore no caller can observe an Item marked unavailable without its active Loan, or vice versa.
// All operations are bounded in-memory computations, none of them blocks on I/O.
type Service struct {
	mu      sync.RWMutex
	name    string
	clock   Clock
	ids     IDGenerator
	catalog *Catalog
	members *MemberRegistry
	ledger  *LoanLedger
	logger  Logger
	metrics MetricsCollector
	sink    EventSink
}

// Option configures a Service.
type Option func(*Service)

// WithName sets the name of the library, used in Stats.
func WithName(name string) Option {
	return func(s *Service) {
		s.name = name
	}
}

// WithClock sets the time source for loan dates and overdue checks. Default: SystemClock.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithIDGenerator sets the source of member and loan identifiers. Default: RandomIDGenerator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) {
		s.ids = ids
	}
}

// WithLogger sets the logger for the Service.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector for the Service.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// WithEventSink sets the receiver of the domain events produced by the Service.
func WithEventSink(sink EventSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// NewService creates an empty Service with optional configuration.
func NewService(opts ...Option) *Service {
	s := &Service{
		name:  defaultLibraryName,
		clock: SystemClock{},
		ids:   RandomIDGenerator{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.catalog = NewCatalog()
	s.members = NewMemberRegistry(s.ids)
	s.ledger = NewLoanLedger(s.ids)

	return s
}

/***** Commands *****/

// AddItem loads an item into the catalog. It fails with DuplicateIdentifier or EmptyIdentifier.
func (s *Service) AddItem(item Item) Result {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var result Result

	err := s.catalog.AddItem(item)

	switch {
	case err == nil:
		added, _ := s.catalog.FindByIdentifier(item.Identifier)
		result = SuccessResult(Loan{}, added)
		s.publish(BuildItemAddedToCatalog(added, s.clock.Now()))
		s.logInfo(logMsgItemAdded, logAttrItemID, added.Identifier, logAttrTitle, added.Title)

	case errors.Is(err, ErrEmptyIdentifier):
		result = FailureResult(EmptyIdentifier)
		s.logWarn(logMsgItemRejected, logAttrItemID, item.Identifier, logAttrReason, result.Reason)

	default:
		result = FailureResult(DuplicateIdentifier)
		s.logWarn(logMsgItemRejected, logAttrItemID, item.Identifier, logAttrReason, result.Reason)
	}

	s.observe(operationAddItem, start, result)

	return result
}

// RegisterMember registers a new member with a fresh identifier. It always succeeds.
func (s *Service) RegisterMember(fullName string) Member {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	member := s.members.Register(fullName)
	s.publish(BuildMemberRegistered(member, s.clock.Now()))
	s.logInfo(logMsgMemberRegistered, logAttrMemberID, member.ID.String())
	s.observe(operationRegisterMember, start, SuccessResult(Loan{}, Item{}))

	return member
}

// Checkout lends the item to the member.
//
// Business Rules:
//
//	GIVEN: a member with memberID and an item with itemID
//	WHEN: Checkout is called
//	THEN: a Loan dated today and due in LoanPeriodDays is created, the item is OnLoan, its borrow count +1
//	ERROR: MemberNotFound if the member is not registered
//	ERROR: ItemNotFound if the item is not in the catalog
//	ERROR: ItemUnavailable if the item has an active loan (by anyone, including this member)
//
// A failed checkout leaves all state unchanged.
func (s *Service) Checkout(memberID MemberID, itemID ItemIdentifier) Result {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.checkout(memberID, itemID)
	s.observe(operationCheckout, start, result)

	return result
}

func (s *Service) checkout(memberID MemberID, itemID ItemIdentifier) Result {
	now := s.clock.Now()

	reject := func(reason FailureReason) Result {
		s.publish(BuildCheckoutFailed(memberID, itemID, reason, now))
		s.logWarn(logMsgCheckoutRejected, logAttrMemberID, memberID.String(), logAttrItemID, itemID, logAttrReason, reason)

		return FailureResult(reason)
	}

	if _, ok := s.members.FindByIdentifier(memberID); !ok {
		return reject(MemberNotFound)
	}

	item, ok := s.catalog.FindByIdentifier(itemID)
	if !ok {
		return reject(ItemNotFound)
	}

	if !item.Available {
		return reject(ItemUnavailable)
	}

	loan := s.ledger.Create(memberID, itemID, ToDate(now))
	item, _ = s.catalog.markOnLoan(itemID)

	s.publish(BuildItemLentToMember(loan, now))
	s.logInfo(
		logMsgCheckedOut,
		logAttrMemberID, memberID.String(),
		logAttrItemID, itemID,
		logAttrLoanID, loan.ID().String(),
		logAttrDueDate, loan.DueDate().Format(time.DateOnly),
	)

	return SuccessResult(loan, item)
}

// ReturnItem closes the member's active loan for the item and makes the item Available again.
//
// Business Rules:
//
//	GIVEN: an active loan of memberID for itemID
//	WHEN: ReturnItem is called
//	THEN: the loan moves to the history, the item is Available, its borrow count is unchanged
//	ERROR: LoanNotFound if there is no such active loan (never lent, or already returned)
func (s *Service) ReturnItem(memberID MemberID, itemID ItemIdentifier) Result {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.returnItem(memberID, itemID)
	s.observe(operationReturnItem, start, result)

	return result
}

func (s *Service) returnItem(memberID MemberID, itemID ItemIdentifier) Result {
	now := s.clock.Now()

	loan, ok := s.ledger.FindActive(memberID, itemID)
	if !ok {
		s.publish(BuildReturnFailed(memberID, itemID, LoanNotFound, now))
		s.logWarn(logMsgReturnRejected, logAttrMemberID, memberID.String(), logAttrItemID, itemID, logAttrReason, LoanNotFound)

		return FailureResult(LoanNotFound)
	}

	s.ledger.Remove(loan.ID(), now)
	item, _ := s.catalog.markAvailable(itemID)

	s.publish(BuildItemReturnedByMember(loan, now, now))
	s.logInfo(logMsgReturned, logAttrMemberID, memberID.String(), logAttrItemID, itemID, logAttrLoanID, loan.ID().String())

	return SuccessResult(loan, item)
}

// CorrectLoanDate corrects the loan date of the member's active loan for the item.
// The due date is re-derived in the same step. It fails with LoanNotFound.
func (s *Service) CorrectLoanDate(memberID MemberID, itemID ItemIdentifier, loanDate time.Time) Result {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var result Result

	loan, ok := s.ledger.FindActive(memberID, itemID)
	if ok {
		loan, _ = s.ledger.CorrectLoanDate(loan.ID(), loanDate)
		item, _ := s.catalog.FindByIdentifier(itemID)
		result = SuccessResult(loan, item)

		s.publish(BuildLoanDateCorrected(loan, s.clock.Now()))
		s.logInfo(
			logMsgLoanDateCorrected,
			logAttrLoanID, loan.ID().String(),
			logAttrDueDate, loan.DueDate().Format(time.DateOnly),
		)
	} else {
		result = FailureResult(LoanNotFound)
		s.logWarn(logMsgCorrectionFailed, logAttrMemberID, memberID.String(), logAttrItemID, itemID, logAttrReason, LoanNotFound)
	}

	s.observe(operationCorrectLoanDate, start, result)

	return result
}

/***** Queries *****/

// FindItem returns the item with exactly this identifier.
func (s *Service) FindItem(itemID ItemIdentifier) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog.FindByIdentifier(itemID)
}

// FindMember returns the member with exactly this identifier.
func (s *Service) FindMember(memberID MemberID) (Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.members.FindByIdentifier(memberID)
}

// FindLoan returns the member's active loan for the item.
func (s *Service) FindLoan(memberID MemberID, itemID ItemIdentifier) (Loan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.FindActive(memberID, itemID)
}

// FindLoanOfItem returns the active loan for the item, whoever borrowed it.
func (s *Service) FindLoanOfItem(itemID ItemIdentifier) (Loan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.FindActiveByItem(itemID)
}

// LoansOf returns the active loans of the member.
func (s *Service) LoansOf(memberID MemberID) []Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.ActiveByMember(memberID)
}

// SearchByTitle returns all items whose title contains query, ignoring case, in catalog order.
func (s *Service) SearchByTitle(query string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := s.catalog.SearchByTitle(query)
	s.logDebug(logMsgTitleSearch, logAttrQuery, query, logAttrHits, len(found))

	return found
}

// TopBorrowed returns up to n items ranked by borrow count, ties in catalog order.
func (s *Service) TopBorrowed(n int) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog.TopBorrowed(n)
}

// Items returns all items in catalog order.
func (s *Service) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog.Items()
}

// Members returns all members in registration order.
func (s *Service) Members() []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.members.Members()
}

// ActiveLoans returns all active loans in ledger order.
func (s *Service) ActiveLoans() []Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.Active()
}

// ReturnedLoans returns the history of returned loans.
func (s *Service) ReturnedLoans() []ReturnedLoan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.History()
}

// Overdue returns the active loans whose due date is strictly before today's date of the clock.
func (s *Service) Overdue() []Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.Overdue(Today(s.clock))
}

// OverdueLoan is a line of the overdue report.
type OverdueLoan struct {
	Loan        Loan
	MemberName  string
	ItemTitle   string
	DaysOverdue int
}

// String renders the line as "Loan[id]: Member -> Title (loaned: .., due: ..) OVERDUE by N days".
func (o OverdueLoan) String() string {
	return fmt.Sprintf(
		"Loan[%s]: %s -> %s (loaned: %s, due: %s) OVERDUE by %d days",
		o.Loan.ID(), o.MemberName, o.ItemTitle,
		o.Loan.LoanDate().Format(time.DateOnly), o.Loan.DueDate().Format(time.DateOnly),
		o.DaysOverdue,
	)
}

// OverdueReport resolves the overdue loans with member names, item titles and days overdue.
func (s *Service) OverdueReport() []OverdueLoan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := Today(s.clock)
	overdue := s.ledger.Overdue(today)
	report := make([]OverdueLoan, 0, len(overdue))

	for _, loan := range overdue {
		member, _ := s.members.FindByIdentifier(loan.MemberID())
		item, _ := s.catalog.FindByIdentifier(loan.ItemID())

		report = append(report, OverdueLoan{
			Loan:        loan,
			MemberName:  member.FullName,
			ItemTitle:   item.Title,
			DaysOverdue: loan.DaysOverdue(today),
		})
	}

	return report
}

// Stats is a summary of the library state.
type Stats struct {
	Name          string
	Items         int
	Members       int
	ActiveLoans   int
	ReturnedLoans int
}

// String renders the summary, one figure per line.
func (st Stats) String() string {
	return fmt.Sprintf(
		"Library: %s\nItems: %d\nMembers: %d\nActive Loans: %d\n",
		st.Name, st.Items, st.Members, st.ActiveLoans,
	)
}

// Stats returns a consistent summary of the library state.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Name:          s.name,
		Items:         s.catalog.Len(),
		Members:       s.members.Len(),
		ActiveLoans:   s.ledger.Len(),
		ReturnedLoans: len(s.ledger.returned),
	}
}

// Today returns the current calendar date of the Service's clock.
func (s *Service) Today() time.Time {
	return Today(s.clock)
}

func (s *Service) publish(event DomainEvent) {
	if s.sink != nil {
		s.sink.Publish(event)
	}
}
