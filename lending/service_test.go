package lending_test

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

const (
	effectiveJava = "978-0134685991"
	designPattern = "978-0201633610"
	cleanCode     = "978-0132350884"
)

func givenService(t *testing.T, opts ...lending.Option) (*lending.Service, *lending.ManualClock) {
	clock := GivenClockAtDayZero()
	opts = append([]lending.Option{lending.WithClock(clock)}, opts...)

	return GivenServiceWithItems(t, GivenItems(), opts...), clock
}

// assertAvailabilityMatchesLoans checks that every item is Available exactly when it has no active loan.
func assertAvailabilityMatchesLoans(t *testing.T, service *lending.Service) {
	t.Helper()

	for _, item := range service.Items() {
		_, onLoan := service.FindLoanOfItem(item.Identifier)
		assert.Equal(t, !onLoan, item.Available, "availability of %s", item.Identifier)
	}
}

func Test_Service_Checkout_Succeeds(t *testing.T) {
	// arrange
	service, _ := givenService(t)
	member := service.RegisterMember("Alice Smith")

	// act
	result := service.Checkout(member.ID, effectiveJava)

	// assert
	require.True(t, result.Succeeded())
	assert.NoError(t, result.Err())
	assert.Equal(t, member.ID, result.Loan.MemberID())
	assert.Equal(t, effectiveJava, result.Loan.ItemID())
	assert.Equal(t, lending.ToDate(DayZero), result.Loan.LoanDate())
	assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), result.Loan.DueDate())
	assert.False(t, result.Item.Available)
	assert.Equal(t, 1, result.Item.BorrowCount)

	loan, found := service.FindLoan(member.ID, effectiveJava)
	assert.True(t, found)
	assert.Equal(t, result.Loan, loan)
	assert.Equal(t, []lending.Loan{loan}, service.LoansOf(member.ID))
	assertAvailabilityMatchesLoans(t, service)
}

func Test_Service_CheckoutThenReturn_RestoresAvailabilityAndKeepsBorrowCount(t *testing.T) {
	// arrange
	service, clock := givenService(t)
	member := service.RegisterMember("Alice Smith")
	loan := GivenCheckedOut(t, service, member.ID, effectiveJava)
	clock.AdvanceDays(5)

	// act
	result := service.ReturnItem(member.ID, effectiveJava)

	// assert
	require.True(t, result.Succeeded())
	assert.Equal(t, loan, result.Loan)

	item, _ := service.FindItem(effectiveJava)
	assert.True(t, item.Available)
	assert.Equal(t, 1, item.BorrowCount)

	_, found := service.FindLoan(member.ID, effectiveJava)
	assert.False(t, found)
	assert.Empty(t, service.ActiveLoans())

	history := service.ReturnedLoans()
	require.Len(t, history, 1)
	assert.Equal(t, loan, history[0].Loan)
	assert.Equal(t, lending.ToDate(DayZero).AddDate(0, 0, 5), history[0].ReturnedOn)
	assertAvailabilityMatchesLoans(t, service)
}

func Test_Service_Checkout_ItemUnavailable_LeavesStateUnchanged(t *testing.T) {
	// arrange
	service, _ := givenService(t)
	alice := service.RegisterMember("Alice Smith")
	bob := service.RegisterMember("Bob Jones")
	loan := GivenCheckedOut(t, service, alice.ID, effectiveJava)

	testCases := []struct {
		name     string
		memberID lending.MemberID
	}{
		{name: "other member", memberID: bob.ID},
		{name: "same member again", memberID: alice.ID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := service.Checkout(tc.memberID, effectiveJava)

			// assert
			assert.False(t, result.Succeeded())
			assert.Equal(t, lending.ItemUnavailable, result.Reason)
			assert.ErrorIs(t, result.Err(), lending.ErrItemUnavailable)
			assert.True(t, result.Loan.IsZero())

			assert.Equal(t, []lending.Loan{loan}, service.ActiveLoans())
			item, _ := service.FindItem(effectiveJava)
			assert.Equal(t, 1, item.BorrowCount)
			assert.False(t, item.Available)
		})
	}
}

func Test_Service_Checkout_UnknownReferences_ChangeNothing(t *testing.T) {
	// arrange
	service, _ := givenService(t)
	member := service.RegisterMember("Alice Smith")

	testCases := []struct {
		name           string
		memberID       lending.MemberID
		itemID         lending.ItemIdentifier
		expectedReason lending.FailureReason
		expectedErr    error
	}{
		{name: "unknown member", memberID: GivenUniqueID(t), itemID: effectiveJava, expectedReason: lending.MemberNotFound, expectedErr: lending.ErrMemberNotFound},
		{name: "unknown item", memberID: member.ID, itemID: "000-0000000000", expectedReason: lending.ItemNotFound, expectedErr: lending.ErrItemNotFound},
		{name: "unknown member takes precedence", memberID: GivenUniqueID(t), itemID: "000-0000000000", expectedReason: lending.MemberNotFound, expectedErr: lending.ErrMemberNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := service.Checkout(tc.memberID, tc.itemID)

			// assert
			assert.False(t, result.Succeeded())
			assert.Equal(t, tc.expectedReason, result.Reason)
			assert.ErrorIs(t, result.Err(), tc.expectedErr)

			assert.Empty(t, service.ActiveLoans())
			for _, item := range service.Items() {
				assert.True(t, item.Available)
				assert.Equal(t, 0, item.BorrowCount)
			}
		})
	}
}

func Test_Service_ReturnItem_Twice_FailsWithLoanNotFound(t *testing.T) {
	// arrange
	service, _ := givenService(t)
	member := service.RegisterMember("Alice Smith")
	GivenCheckedOut(t, service, member.ID, effectiveJava)
	require.True(t, service.ReturnItem(member.ID, effectiveJava).Succeeded())

	// act
	result := service.ReturnItem(member.ID, effectiveJava)

	// assert
	assert.False(t, result.Succeeded())
	assert.Equal(t, lending.LoanNotFound, result.Reason)
	assert.ErrorIs(t, result.Err(), lending.ErrLoanNotFound)

	item, _ := service.FindItem(effectiveJava)
	assert.True(t, item.Available)
	assert.Len(t, service.ReturnedLoans(), 1)
}

func Test_Service_ReturnItem_ByOtherMember_FailsWithLoanNotFound(t *testing.T) {
	// arrange
	service, _ := givenService(t)
	alice := service.RegisterMember("Alice Smith")
	bob := service.RegisterMember("Bob Jones")
	loan := GivenCheckedOut(t, service, alice.ID, effectiveJava)

	// act
	result := service.ReturnItem(bob.ID, effectiveJava)

	// assert
	assert.Equal(t, lending.LoanNotFound, result.Reason)
	assert.Equal(t, []lending.Loan{loan}, service.ActiveLoans())
	assertAvailabilityMatchesLoans(t, service)
}

func Test_Service_TopBorrowed_RanksByBorrowCountWithStableTies(t *testing.T) {
	// arrange
	service := GivenServiceWithItems(t, []lending.Item{
		lending.BuildItem("A", "Alpha", "Author A", 2001),
		lending.BuildItem("B", "Beta", "Author B", 2002),
	})
	member := service.RegisterMember("Mia Miller")

	// act / assert
	GivenCheckedOut(t, service, member.ID, "A")
	assert.Equal(t, []lending.ItemIdentifier{"A", "B"}, identifiersOf(service.TopBorrowed(2)))

	GivenCheckedOut(t, service, member.ID, "B")
	assert.Equal(t, []lending.ItemIdentifier{"A"}, identifiersOf(service.TopBorrowed(1)))

	assert.Empty(t, service.TopBorrowed(0))
	assert.Len(t, service.TopBorrowed(7), 2)
}

func Test_Service_TopBorrowed_HigherCountFirst(t *testing.T) {
	// arrange
	service, _ := givenService(t)
	member := service.RegisterMember("Alice Smith")

	for range 3 {
		GivenCheckedOut(t, service, member.ID, cleanCode)
		require.True(t, service.ReturnItem(member.ID, cleanCode).Succeeded())
	}

	GivenCheckedOut(t, service, member.ID, designPattern)

	// act
	top := service.TopBorrowed(3)

	// assert
	assert.Equal(t, []lending.ItemIdentifier{cleanCode, designPattern, effectiveJava}, identifiersOf(top))
	assert.Equal(t, 3, top[0].BorrowCount)
}

func Test_Service_CorrectLoanDate_MakesLoanOverdue(t *testing.T) {
	// arrange
	service, _ := givenService(t)
	member := service.RegisterMember("Alice Smith")
	GivenCheckedOut(t, service, member.ID, effectiveJava)

	// act
	result := service.CorrectLoanDate(member.ID, effectiveJava, DayZero.AddDate(0, 0, -40))

	// assert
	require.True(t, result.Succeeded())
	assert.Equal(t, lending.ToDate(DayZero).AddDate(0, 0, -40), result.Loan.LoanDate())
	assert.Equal(t, lending.ToDate(DayZero).AddDate(0, 0, -19), result.Loan.DueDate())

	overdue := service.Overdue()
	require.Len(t, overdue, 1)
	assert.Equal(t, result.Loan, overdue[0])

	report := service.OverdueReport()
	require.Len(t, report, 1)
	assert.Equal(t, 19, report[0].DaysOverdue)
	assert.Equal(t, "Alice Smith", report[0].MemberName)
	assert.Equal(t, "Effective Java", report[0].ItemTitle)
	assert.Contains(t, report[0].String(), "OVERDUE by 19 days")
}

func Test_Service_CorrectLoanDate_WithoutLoan_FailsWithLoanNotFound(t *testing.T) {
	service, _ := givenService(t)
	member := service.RegisterMember("Alice Smith")

	result := service.CorrectLoanDate(member.ID, effectiveJava, DayZero)

	assert.Equal(t, lending.LoanNotFound, result.Reason)
	assert.Empty(t, service.ActiveLoans())
}

func Test_Service_Overdue_FollowsTheClock(t *testing.T) {
	// arrange
	service, clock := givenService(t)
	member := service.RegisterMember("Alice Smith")
	GivenCheckedOut(t, service, member.ID, effectiveJava)

	// act / assert
	clock.AdvanceDays(21)
	assert.Empty(t, service.Overdue(), "due today is not overdue")

	clock.AdvanceDays(1)
	assert.Len(t, service.Overdue(), 1)
	assert.Equal(t, 1, service.OverdueReport()[0].DaysOverdue)

	require.True(t, service.ReturnItem(member.ID, effectiveJava).Succeeded())
	assert.Empty(t, service.Overdue(), "returned loans are never overdue")
}

func Test_Service_AddItem(t *testing.T) {
	service, _ := givenService(t)

	testCases := []struct {
		name           string
		item           lending.Item
		expectedReason lending.FailureReason
	}{
		{name: "new item", item: lending.BuildItem("978-0596007126", "Head First Design Patterns", "Eric Freeman", 2004), expectedReason: lending.NoFailure},
		{name: "duplicate identifier", item: lending.BuildItem(effectiveJava, "Other", "Other", 2000), expectedReason: lending.DuplicateIdentifier},
		{name: "empty identifier", item: lending.BuildItem("", "Other", "Other", 2000), expectedReason: lending.EmptyIdentifier},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := service.AddItem(tc.item)

			assert.Equal(t, tc.expectedReason, result.Reason)
		})
	}

	assert.Equal(t, 6, service.Stats().Items)
}

func Test_Service_SearchByTitle(t *testing.T) {
	service, _ := givenService(t)

	found := service.SearchByTitle("design")

	assert.Equal(t, []lending.ItemIdentifier{designPattern, "978-1491950357"}, identifiersOf(found))
	assert.NotNil(t, service.SearchByTitle("Cooking"))
	assert.Empty(t, service.SearchByTitle("Cooking"))
}

func Test_Service_Stats(t *testing.T) {
	// arrange
	service, _ := givenService(t, lending.WithName("City Library"))
	alice := service.RegisterMember("Alice Smith")
	service.RegisterMember("Bob Jones")
	GivenCheckedOut(t, service, alice.ID, effectiveJava)
	GivenCheckedOut(t, service, alice.ID, cleanCode)
	require.True(t, service.ReturnItem(alice.ID, cleanCode).Succeeded())

	// act
	stats := service.Stats()

	// assert
	assert.Equal(t, lending.Stats{Name: "City Library", Items: 5, Members: 2, ActiveLoans: 1, ReturnedLoans: 1}, stats)
	assert.Equal(t, "Library: City Library\nItems: 5\nMembers: 2\nActive Loans: 1\n", stats.String())
}

func Test_Service_AvailabilityInvariant_HoldsAcrossMixedOperations(t *testing.T) {
	// arrange
	service, clock := givenService(t)
	alice := service.RegisterMember("Alice Smith")
	bob := service.RegisterMember("Bob Jones")

	// act
	service.Checkout(alice.ID, effectiveJava)
	service.Checkout(bob.ID, effectiveJava)
	service.Checkout(bob.ID, cleanCode)
	clock.AdvanceDays(3)
	service.ReturnItem(alice.ID, cleanCode)
	service.ReturnItem(alice.ID, effectiveJava)
	service.Checkout(bob.ID, effectiveJava)
	service.Checkout(alice.ID, "000-0000000000")
	service.ReturnItem(bob.ID, cleanCode)

	// assert
	assertAvailabilityMatchesLoans(t, service)
	assert.Len(t, service.ActiveLoans(), 1)
	assert.Len(t, service.ReturnedLoans(), 2)

	item, _ := service.FindItem(effectiveJava)
	assert.Equal(t, 2, item.BorrowCount)
}

func Test_Service_Checkout_ConcurrentRequestsForOneItem_ExactlyOneSucceeds(t *testing.T) {
	// arrange
	service, _ := givenService(t)

	const contenders = 32
	members := make([]lending.Member, contenders)
	for i := range members {
		members[i] = service.RegisterMember("Member")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	// act
	for _, member := range members {
		wg.Add(1)

		go func(memberID lending.MemberID) {
			defer wg.Done()

			if service.Checkout(memberID, effectiveJava).Succeeded() {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(member.ID)
	}

	wg.Wait()

	// assert
	assert.Equal(t, 1, successes)
	assert.Len(t, service.ActiveLoans(), 1)

	item, _ := service.FindItem(effectiveJava)
	assert.Equal(t, 1, item.BorrowCount)
	assertAvailabilityMatchesLoans(t, service)
}

func Test_Service_SeededIDGenerator_MakesRunsReproducible(t *testing.T) {
	first, _ := givenService(t, lending.WithIDGenerator(lending.NewSeededIDGenerator(2025)))
	second, _ := givenService(t, lending.WithIDGenerator(lending.NewSeededIDGenerator(2025)))

	memberA := first.RegisterMember("Alice Smith")
	memberB := second.RegisterMember("Alice Smith")
	loanA := GivenCheckedOut(t, first, memberA.ID, effectiveJava)
	loanB := GivenCheckedOut(t, second, memberB.ID, effectiveJava)

	assert.Equal(t, memberA, memberB)
	assert.Equal(t, loanA, loanB)
}

func Test_Service_Logging(t *testing.T) {
	// arrange
	handler := NewTestLogHandler(false)
	service, _ := givenService(t, lending.WithLogger(slog.New(handler)))
	member := service.RegisterMember("Alice Smith")

	// act
	service.Checkout(member.ID, effectiveJava)
	service.Checkout(member.ID, effectiveJava)
	service.ReturnItem(member.ID, cleanCode)
	service.SearchByTitle("java")

	// assert
	assert.True(t, handler.HasInfoLog("item added to catalog"))
	assert.True(t, handler.HasInfoLog("member registered"))
	assert.True(t, handler.HasInfoLog("item checked out"))
	assert.True(t, handler.HasWarnLogWithAttr("checkout rejected", "reason", string(lending.ItemUnavailable)))
	assert.True(t, handler.HasWarnLogWithAttr("return rejected", "item_id", cleanCode))
	assert.False(t, handler.HasInfoLog("item returned"))
	assert.True(t, handler.HasDebugLogWithAttr("title search", "query", "java"))
	assert.True(t, handler.HasDebugLogWithAttr("title search", "hits", "1"))
}

func Test_Service_Metrics(t *testing.T) {
	// arrange
	spy := NewMetricsCollectorSpy()
	service, _ := givenService(t, lending.WithMetrics(spy))
	member := service.RegisterMember("Alice Smith")

	// act
	service.Checkout(member.ID, effectiveJava)
	service.Checkout(GivenUniqueID(t), effectiveJava)

	// assert
	assert.True(t, spy.HasCounterWithLabels(lending.OperationCallsMetric, map[string]string{
		"operation": "checkout",
		"status":    lending.StatusSuccess,
	}))
	assert.True(t, spy.HasCounterWithLabels(lending.OperationCallsMetric, map[string]string{
		"operation": "checkout",
		"status":    lending.StatusFailure,
		"reason":    string(lending.MemberNotFound),
	}))

	activeLoans, recorded := spy.LastValue(lending.ActiveLoansMetric)
	assert.True(t, recorded)
	assert.Equal(t, float64(1), activeLoans)

	// 5 items + 1 member + 2 checkouts
	assert.Len(t, spy.DurationRecords(), 8)
	assert.Len(t, spy.CounterRecords(), 8)
}

func Test_Service_PublishesEventsInCommitOrder(t *testing.T) {
	// arrange
	sink := NewEventSinkSpy()
	service, _ := givenService(t, lending.WithEventSink(sink))
	member := service.RegisterMember("Alice Smith")

	// act
	service.Checkout(member.ID, effectiveJava)
	service.Checkout(member.ID, effectiveJava)
	service.CorrectLoanDate(member.ID, effectiveJava, DayZero.AddDate(0, 0, -2))
	service.ReturnItem(member.ID, effectiveJava)
	service.ReturnItem(member.ID, effectiveJava)

	// assert
	events := sink.Events()
	types := make([]string, 0, len(events))
	for _, event := range events[5:] {
		types = append(types, event.IsEventType())
	}

	assert.Equal(t, []string{
		lending.MemberRegisteredEventType,
		lending.ItemLentToMemberEventType,
		lending.CheckoutFailedEventType,
		lending.LoanDateCorrectedEventType,
		lending.ItemReturnedByMemberEventType,
		lending.ReturnFailedEventType,
	}, types)

	failed, ok := events[7].(lending.CheckoutFailed)
	require.True(t, ok)
	assert.True(t, failed.IsErrorEvent())
	assert.Equal(t, string(lending.ItemUnavailable), failed.FailureInfo)
	assert.Equal(t, lending.ReturnFailedEventType, sink.LastEvent().IsEventType())
}
