package models

// Role is the side of a booking the current user acts as.
type Role string

const (
	// RoleAsker is the user who made the booking.
	RoleAsker Role = "asker"
	// RoleOfferer is the owner of the booked listing.
	RoleOfferer Role = "offerer"
)

// DefaultRole is used when the session carries no profile.
const DefaultRole = RoleAsker

// ParseRole validates a role name.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAsker, RoleOfferer:
		return Role(s), true
	}
	return "", false
}

// Opposite returns the other side of a booking.
func (r Role) Opposite() Role {
	if r == RoleOfferer {
		return RoleAsker
	}
	return RoleOfferer
}
