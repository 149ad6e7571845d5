package lending

import (
	"slices"
	"strings"
)

// Catalog owns the set of items in insertion order.
//
// A Catalog is not safe for concurrent use on its own, the Service serializes access to it.
type Catalog struct {
	items []*Item
	index map[ItemIdentifier]*Item
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		items: make([]*Item, 0),
		index: make(map[ItemIdentifier]*Item),
	}
}

// AddItem inserts the item as a fresh catalog entry: Available and never borrowed.
// It returns ErrEmptyIdentifier or ErrDuplicateIdentifier, in which case the catalog is unchanged.
func (c *Catalog) AddItem(item Item) error {
	if item.Identifier == "" {
		return ErrEmptyIdentifier
	}

	if _, exists := c.index[item.Identifier]; exists {
		return ErrDuplicateIdentifier
	}

	entry := BuildItem(item.Identifier, item.Title, item.Author, item.PublicationYear)
	c.items = append(c.items, &entry)
	c.index[entry.Identifier] = &entry

	return nil
}

// FindByIdentifier returns a copy of the item with exactly this identifier.
func (c *Catalog) FindByIdentifier(id ItemIdentifier) (Item, bool) {
	entry, ok := c.index[id]
	if !ok {
		return Item{}, false
	}

	return *entry, true
}

// SearchByTitle returns all items whose title contains query, ignoring case, in insertion order.
func (c *Catalog) SearchByTitle(query string) []Item {
	needle := strings.ToLower(query)
	found := make([]Item, 0)

	for _, entry := range c.items {
		if strings.Contains(strings.ToLower(entry.Title), needle) {
			found = append(found, *entry)
		}
	}

	return found
}

// TopBorrowed returns up to n items ordered by borrow count, highest first.
// Items with the same count keep their insertion order.
func (c *Catalog) TopBorrowed(n int) []Item {
	if n <= 0 {
		return make([]Item, 0)
	}

	ranked := c.Items()
	slices.SortStableFunc(ranked, func(a, b Item) int {
		return b.BorrowCount - a.BorrowCount
	})

	if n >= len(ranked) {
		return ranked
	}

	return ranked[:n]
}

// Items returns copies of all items in insertion order.
func (c *Catalog) Items() []Item {
	all := make([]Item, 0, len(c.items))
	for _, entry := range c.items {
		all = append(all, *entry)
	}

	return all
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// markOnLoan flips the item to OnLoan and counts the borrowing.
func (c *Catalog) markOnLoan(id ItemIdentifier) (Item, bool) {
	entry, ok := c.index[id]
	if !ok {
		return Item{}, false
	}

	entry.Available = false
	entry.BorrowCount++

	return *entry, true
}

// markAvailable flips the item back to Available. The borrow counter is never decremented.
func (c *Catalog) markAvailable(id ItemIdentifier) (Item, bool) {
	entry, ok := c.index[id]
	if !ok {
		return Item{}, false
	}

	entry.Available = true

	return *entry, true
}
