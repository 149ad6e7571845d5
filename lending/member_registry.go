package lending

// MemberRegistry owns the set of registered members.
//
// A MemberRegistry is not safe for concurrent use on its own, the Service serializes access to it.
type MemberRegistry struct {
	ids     IDGenerator
	members []Member
	index   map[MemberID]Member
}

// NewMemberRegistry creates an empty MemberRegistry which draws identifiers from ids.
func NewMemberRegistry(ids IDGenerator) *MemberRegistry {
	return &MemberRegistry{
		ids:     ids,
		members: make([]Member, 0),
		index:   make(map[MemberID]Member),
	}
}

// Register stores a new member with a fresh identifier. It always succeeds,
// validating the name is the job of the adapters.
func (r *MemberRegistry) Register(fullName string) Member {
	member := Member{ID: r.ids.NewID(), FullName: fullName}

	// a colliding identifier would break lookups, draw again (never happens with random UUIDs)
	for _, taken := r.index[member.ID]; taken; _, taken = r.index[member.ID] {
		member.ID = r.ids.NewID()
	}

	r.insert(member)

	return member
}

// FindByIdentifier returns the member with exactly this identifier.
func (r *MemberRegistry) FindByIdentifier(id MemberID) (Member, bool) {
	member, ok := r.index[id]

	return member, ok
}

// Members returns all members in registration order.
func (r *MemberRegistry) Members() []Member {
	return append(make([]Member, 0, len(r.members)), r.members...)
}

// Len returns the number of members.
func (r *MemberRegistry) Len() int {
	return len(r.members)
}

func (r *MemberRegistry) insert(member Member) bool {
	if _, exists := r.index[member.ID]; exists {
		return false
	}

	r.members = append(r.members, member)
	r.index[member.ID] = member

	return true
}
