package lending

import (
	"time"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents when a new member is registered.
type MemberRegistered struct {
	MemberID   string
	FullName   string
	OccurredAt OccurredAt
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(member Member, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		MemberID:   member.ID.String(),
		FullName:   member.FullName,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberRegistered) IsEventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e MemberRegistered) IsErrorEvent() bool {
	return false
}
