package lending

import (
	"fmt"
)

// Member is a registered borrower. Members are immutable and never removed,
// so that the history of loans keeps pointing to existing members.
type Member struct {
	ID       MemberID
	FullName string
}

// String renders the member as "Full Name (id)".
func (m Member) String() string {
	return fmt.Sprintf("%s (%s)", m.FullName, m.ID)
}
