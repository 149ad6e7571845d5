package lending

import (
	"time"
)

// ItemAddedToCatalogEventType is the event type identifier.
const ItemAddedToCatalogEventType = "ItemAddedToCatalog"

// ItemAddedToCatalog represents when an item is loaded into the catalog.
type ItemAddedToCatalog struct {
	ItemID          string
	Title           string
	Author          string
	PublicationYear int
	OccurredAt      OccurredAt
}

// BuildItemAddedToCatalog creates a new ItemAddedToCatalog event.
func BuildItemAddedToCatalog(item Item, occurredAt time.Time) ItemAddedToCatalog {
	return ItemAddedToCatalog{
		ItemID:          item.Identifier,
		Title:           item.Title,
		Author:          item.Author,
		PublicationYear: item.PublicationYear,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemAddedToCatalog) IsEventType() string {
	return ItemAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemAddedToCatalog) IsErrorEvent() bool {
	return false
}
