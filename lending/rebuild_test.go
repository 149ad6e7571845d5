package lending_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func givenRecordedHistory(t *testing.T) (*lending.Service, lending.DomainEvents) {
	sink := NewEventSinkSpy()
	service, clock := givenService(t, lending.WithEventSink(sink), lending.WithName("City Library"))

	alice := service.RegisterMember("Alice Smith")
	bob := service.RegisterMember("Bob Jones")
	GivenCheckedOut(t, service, alice.ID, effectiveJava)
	GivenCheckedOut(t, service, bob.ID, cleanCode)
	service.Checkout(bob.ID, effectiveJava)
	clock.AdvanceDays(4)
	require.True(t, service.ReturnItem(bob.ID, cleanCode).Succeeded())
	GivenCheckedOut(t, service, alice.ID, cleanCode)
	require.True(t, service.CorrectLoanDate(alice.ID, effectiveJava, DayZero.AddDate(0, 0, -40)).Succeeded())

	return service, sink.Events()
}

func Test_Rebuild_RestoresTheRecordedState(t *testing.T) {
	// arrange
	original, history := givenRecordedHistory(t)

	// act
	rebuilt, err := lending.Rebuild(history, lending.WithClock(GivenClockAtDayZero()), lending.WithName("City Library"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, original.Items(), rebuilt.Items())
	assert.Equal(t, original.Members(), rebuilt.Members())
	assert.Equal(t, original.ActiveLoans(), rebuilt.ActiveLoans())
	assert.Equal(t, original.ReturnedLoans(), rebuilt.ReturnedLoans())
	assert.Equal(t, original.Stats(), rebuilt.Stats())
	assert.Equal(t, original.TopBorrowed(2), rebuilt.TopBorrowed(2))
	assertAvailabilityMatchesLoans(t, rebuilt)
}

func Test_Rebuild_DoesNotRepublishToTheSink(t *testing.T) {
	// arrange
	_, history := givenRecordedHistory(t)
	sink := NewEventSinkSpy()

	// act
	rebuilt, err := lending.Rebuild(history, lending.WithEventSink(sink))

	// assert
	require.NoError(t, err)
	assert.Empty(t, sink.Events())

	member := rebuilt.RegisterMember("Carol White")
	assert.Len(t, sink.Events(), 1, "new operations are published")
	assert.True(t, rebuilt.Checkout(member.ID, designPattern).Succeeded())
	assert.Len(t, sink.Events(), 2)
}

func Test_Rebuild_ContinuesWhereTheHistoryEnds(t *testing.T) {
	// arrange
	_, history := givenRecordedHistory(t)
	rebuilt, err := lending.Rebuild(history, lending.WithClock(GivenClockAtDayZero()))
	require.NoError(t, err)

	alice := rebuilt.Members()[0]

	// act
	unavailable := rebuilt.Checkout(rebuilt.Members()[1].ID, effectiveJava)
	returned := rebuilt.ReturnItem(alice.ID, effectiveJava)

	// assert
	assert.Equal(t, lending.ItemUnavailable, unavailable.Reason)
	assert.True(t, returned.Succeeded())
	assert.Equal(t, 19, returned.Loan.DaysOverdue(DayZero))
}

func Test_Rebuild_WithTheSameSeed_KeepsLoanIdentifiersUnique(t *testing.T) {
	// arrange
	sink := NewEventSinkSpy()
	original, _ := givenService(t, lending.WithIDGenerator(lending.NewSeededIDGenerator(1)), lending.WithEventSink(sink))
	alice := original.RegisterMember("Alice Smith")
	lentBefore := GivenCheckedOut(t, original, alice.ID, effectiveJava)

	rebuilt, err := lending.Rebuild(
		sink.Events(),
		lending.WithClock(GivenClockAtDayZero()),
		lending.WithIDGenerator(lending.NewSeededIDGenerator(1)),
	)
	require.NoError(t, err)

	// act
	seen := map[lending.LoanID]bool{lentBefore.ID(): true}

	for range 3 {
		loan := GivenCheckedOut(t, rebuilt, alice.ID, cleanCode)
		assert.False(t, seen[loan.ID()], "loan identifier %s handed out twice", loan.ID())
		seen[loan.ID()] = true

		require.True(t, rebuilt.ReturnItem(alice.ID, cleanCode).Succeeded())
	}

	// assert
	stillLent, ok := rebuilt.FindLoan(alice.ID, effectiveJava)
	assert.True(t, ok)
	assert.Equal(t, lentBefore, stillLent)
	assert.Len(t, rebuilt.ReturnedLoans(), 3)
	assertAvailabilityMatchesLoans(t, rebuilt)
}

func Test_Rebuild_RejectsALoanIdentifierUsedTwice(t *testing.T) {
	memberID := GivenUniqueID(t)
	loanID := GivenUniqueID(t)

	history := lending.DomainEvents{
		lending.BuildItemAddedToCatalog(lending.BuildItem("A", "Alpha", "Author A", 2001), DayZero),
		lending.BuildItemAddedToCatalog(lending.BuildItem("B", "Beta", "Author B", 2002), DayZero),
		lending.BuildMemberRegistered(lending.Member{ID: memberID, FullName: "Alice Smith"}, DayZero),
		lending.BuildItemLentToMember(lending.BuildLoan(loanID, memberID, "A", DayZero), DayZero),
		lending.BuildItemLentToMember(lending.BuildLoan(loanID, memberID, "B", DayZero), DayZero),
	}

	rebuilt, err := lending.Rebuild(history)

	assert.Nil(t, rebuilt)
	assert.ErrorIs(t, err, lending.ErrInconsistentHistory)
}

func Test_Rebuild_EmptyHistory(t *testing.T) {
	rebuilt, err := lending.Rebuild(nil)

	require.NoError(t, err)
	assert.Equal(t, lending.Stats{Name: "Library"}, rebuilt.Stats())
}

func Test_Rebuild_InconsistentHistory(t *testing.T) {
	memberID := GivenUniqueID(t)
	member := lending.Member{ID: memberID, FullName: "Alice Smith"}
	item := lending.BuildItem("A", "Alpha", "Author A", 2001)
	loan := lending.BuildLoan(GivenUniqueID(t), memberID, "A", DayZero)

	testCases := []struct {
		name        string
		history     lending.DomainEvents
		expectedErr error
	}{
		{
			name: "lending an unknown item",
			history: lending.DomainEvents{
				lending.BuildMemberRegistered(member, DayZero),
				lending.BuildItemLentToMember(loan, DayZero),
			},
			expectedErr: lending.ErrItemNotFound,
		},
		{
			name: "lending to an unknown member",
			history: lending.DomainEvents{
				lending.BuildItemAddedToCatalog(item, DayZero),
				lending.BuildItemLentToMember(loan, DayZero),
			},
			expectedErr: lending.ErrMemberNotFound,
		},
		{
			name: "lending an item twice",
			history: lending.DomainEvents{
				lending.BuildItemAddedToCatalog(item, DayZero),
				lending.BuildMemberRegistered(member, DayZero),
				lending.BuildItemLentToMember(loan, DayZero),
				lending.BuildItemLentToMember(lending.BuildLoan(GivenUniqueID(t), memberID, "A", DayZero), DayZero),
			},
			expectedErr: lending.ErrItemUnavailable,
		},
		{
			name: "returning a loan which is not active",
			history: lending.DomainEvents{
				lending.BuildItemAddedToCatalog(item, DayZero),
				lending.BuildItemReturnedByMember(loan, DayZero, DayZero),
			},
			expectedErr: lending.ErrLoanNotFound,
		},
		{
			name: "adding an item twice",
			history: lending.DomainEvents{
				lending.BuildItemAddedToCatalog(item, DayZero),
				lending.BuildItemAddedToCatalog(item, DayZero),
			},
			expectedErr: lending.ErrDuplicateIdentifier,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rebuilt, err := lending.Rebuild(tc.history)

			assert.Nil(t, rebuilt)
			assert.ErrorIs(t, err, lending.ErrInconsistentHistory)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_Rebuild_SkipsErrorEvents(t *testing.T) {
	history := lending.DomainEvents{
		lending.BuildCheckoutFailed(GivenUniqueID(t), "A", lending.ItemNotFound, DayZero),
		lending.BuildReturnFailed(GivenUniqueID(t), "A", lending.LoanNotFound, DayZero),
	}

	rebuilt, err := lending.Rebuild(history)

	require.NoError(t, err)
	assert.Empty(t, rebuilt.ActiveLoans())
}
