package domain

// Role represents a room member's role in a game
type Role string

const (
	RolePlayer    Role = "PLAYER"
	RoleSpectator Role = "SPECTATOR"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsSpectator returns true if this role is a non-scoring spectator
func (r Role) IsSpectator() bool {
	return r == RoleSpectator
}

// RoleFromWire collapses the wire representation into a single role value.
// Older clients send a bare spectator flag instead of the role field; the
// explicit field wins when both are present.
func RoleFromWire(role string, spectator bool) Role {
	switch Role(role) {
	case RolePlayer, RoleSpectator:
		return Role(role)
	}
	if spectator {
		return RoleSpectator
	}
	return RolePlayer
}
