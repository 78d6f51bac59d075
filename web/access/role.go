// Package access implements the authorization core of the miniblog panel:
// the role model, per-request caller identity, the allow/deny engine,
// resource ownership resolution and the comment visibility policy.
package access

// Role is the privilege level attached to a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// roleRanks orders the roles for the web panel's hierarchical guards.
var roleRanks = map[Role]int{
	RoleUser:      0,
	RoleModerator: 1,
	RoleAdmin:     2,
}

// Rank returns the hierarchy level of a role. An unrecognized role ranks
// below every known role, so it never satisfies a minimum-role requirement.
func Rank(r Role) int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// IsElevated reports whether the role belongs to the elevated set that may
// act on any resource regardless of owner. Moderator and admin carry equal
// privilege here; the strict ordering applies only to panel page guards.
func IsElevated(r Role) bool {
	return r == RoleModerator || r == RoleAdmin
}

// Valid reports whether r is one of the known roles.
func Valid(r Role) bool {
	_, ok := roleRanks[r]
	return ok
}
