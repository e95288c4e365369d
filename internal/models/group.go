package models

import "time"

// Group is a named list of members whose shared expenses are tracked together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Bali").
	Name string

	// Description is optional free text.
	Description string

	// Members is the ordered list of member display names.
	// Uniqueness is not enforced.
	Members []string

	// OwnerID is the user who created the group. Only the owner may read the
	// group or add expenses to it.
	OwnerID string

	// CreatedAt is when the group was created.
	CreatedAt time.Time
}

// IsOwnedBy reports whether userID owns the group.
func (g *Group) IsOwnedBy(userID string) bool {
	return userID != "" && g.OwnerID == userID
}
