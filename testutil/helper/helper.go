package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// DayZero is the reference date of most scenarios: a fixed calendar day, so no test depends on the wall clock.
var DayZero = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

// GivenUniqueID returns a fresh time-ordered UUID.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

// GivenClockAtDayZero returns a ManualClock standing at DayZero.
func GivenClockAtDayZero() *lending.ManualClock {
	return lending.NewManualClock(DayZero)
}

// GivenItems returns the five items of the demo catalog in a fixed order.
func GivenItems() []lending.Item {
	return []lending.Item{
		lending.BuildItem("978-0134685991", "Effective Java", "Joshua Bloch", 2018),
		lending.BuildItem("978-0201633610", "Design Patterns", "Erich Gamma", 1994),
		lending.BuildItem("978-0132350884", "Clean Code", "Robert C. Martin", 2008),
		lending.BuildItem("978-1491950357", "Designing Data-Intensive Applications", "Martin Kleppmann", 2017),
		lending.BuildItem("978-0262033848", "Introduction to Algorithms", "Cormen, Leiserson, Rivest, Stein", 2009),
	}
}

// GivenServiceWithItems creates a Service with the given options and loads the items into its catalog.
func GivenServiceWithItems(t testing.TB, items []lending.Item, opts ...lending.Option) *lending.Service {
	service := lending.NewService(opts...)

	for _, item := range items {
		result := service.AddItem(item)
		assert.True(t, result.Succeeded(), "error in arranging test data")
	}

	return service
}

// GivenCheckedOut checks the item out to the member and fails the test if that is rejected.
func GivenCheckedOut(t testing.TB, service *lending.Service, memberID lending.MemberID, itemID lending.ItemIdentifier) lending.Loan {
	result := service.Checkout(memberID, itemID)
	assert.True(t, result.Succeeded(), "error in arranging test data: %s", result.Reason)

	return result.Loan
}
