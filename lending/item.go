package lending

import (
	"fmt"
)

// Item is a single loanable unit of the catalog: one title, one copy.
//
// Items handed out by the Catalog and the Service are copies. Availability and
// the borrow counter change only through checkout and return.
type Item struct {
	Identifier      ItemIdentifier
	Title           string
	Author          string
	PublicationYear int
	Available       bool
	BorrowCount     int
}

// BuildItem creates a new Item which is Available and was never borrowed.
func BuildItem(identifier ItemIdentifier, title string, author string, publicationYear int) Item {
	return Item{
		Identifier:      identifier,
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
		Available:       true,
		BorrowCount:     0,
	}
}

// String renders the item as "Title (identifier) by Author [year]".
func (i Item) String() string {
	return fmt.Sprintf("%s (%s) by %s [%d]", i.Title, i.Identifier, i.Author, i.PublicationYear)
}
