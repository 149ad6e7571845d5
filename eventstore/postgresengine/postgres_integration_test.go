//go:build integration

package postgresengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/eventstore"
	"github.com/AntonStoeckl/library-lending-go/journal"
	"github.com/AntonStoeckl/library-lending-go/lending"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-lending-go/testutil/postgreswrapper"
)

func givenJournaledLibrary(t *testing.T, store journal.EventStore) *lending.Service {
	ctx := context.Background()
	clock := GivenClockAtDayZero()

	service, recorder, err := journal.Open(ctx, store, nil, lending.WithClock(clock))
	require.NoError(t, err)

	for _, item := range GivenItems() {
		require.True(t, service.AddItem(item).Succeeded())
	}

	alice := service.RegisterMember("Alice Smith")
	bob := service.RegisterMember("Bob Jones")
	GivenCheckedOut(t, service, alice.ID, "978-0134685991")
	GivenCheckedOut(t, service, bob.ID, "978-0132350884")
	clock.AdvanceDays(3)
	require.True(t, service.ReturnItem(bob.ID, "978-0132350884").Succeeded())
	require.NoError(t, recorder.Flush(ctx))

	return service
}

func Test_Integration_Journal_RestoresTheFlushedState(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	store := wrapper.GetEventStore()
	original := givenJournaledLibrary(t, store)

	// act
	restored, err := journal.Restore(context.Background(), store, lending.WithClock(GivenClockAtDayZero()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, original.Items(), restored.Items())
	assert.Equal(t, original.Members(), restored.Members())
	assert.Equal(t, original.ActiveLoans(), restored.ActiveLoans())
	assert.Equal(t, original.ReturnedLoans(), restored.ReturnedLoans())
}

func Test_Integration_Journal_SecondWriterIsRejected(t *testing.T) {
	// arrange
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	store := wrapper.GetEventStore()
	givenJournaledLibrary(t, store)

	first, firstRecorder, err := journal.Open(ctx, store, nil)
	require.NoError(t, err)
	second, secondRecorder, err := journal.Open(ctx, store, nil)
	require.NoError(t, err)

	first.RegisterMember("Carol White")
	require.NoError(t, firstRecorder.Flush(ctx))

	// act
	second.RegisterMember("Dave Brown")
	err = secondRecorder.Flush(ctx)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
}

func Test_Integration_MemberHistory_FiltersOnThePayload(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	store := wrapper.GetEventStore()
	service := givenJournaledLibrary(t, store)
	bob := service.Members()[1]

	// act
	history, err := journal.MemberHistory(context.Background(), store, bob.ID)

	// assert
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.IsType(t, lending.MemberRegistered{}, history[0])
	assert.IsType(t, lending.ItemLentToMember{}, history[1])
	assert.IsType(t, lending.ItemReturnedByMember{}, history[2])
}
