package models

// Group represents a set of members who split expenses evenly.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Lisbon trip").
	Name string

	// Description is optional free text.
	Description string

	// OwnerID is the member who created the group.
	OwnerID string

	// Members is the ordered member list, in join order.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is one participant of a group.
type Member struct {
	// ID identifies the member across groups.
	ID string

	// DisplayName is resolved from the member's token when they join.
	DisplayName string

	// JoinedAt is the Unix timestamp when the member joined the group.
	JoinedAt int64
}

// MemberIDs returns the member identifiers in group order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	for _, m := range g.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}
