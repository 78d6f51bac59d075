package access

// The engine answers allow/deny questions only. Denial is a normal boolean
// result, never an error; callers map it to 403 themselves. The two role
// comparison modes are intentionally distinct: the API treats moderator and
// admin as one elevated set, while the web panel compares strict ranks.
// They are kept as separate named checks rather than unified.

// AllowRoles reports whether the actor's role is one of the given roles.
// This is the exact-membership check used by API endpoints.
func AllowRoles(actor Identity, roles ...Role) bool {
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// AllowAtLeast reports whether the actor's role ranks at or above min.
// This is the hierarchical check used by web panel pages. An unknown min
// degrades to the lowest known rank, an unknown actor role ranks below it.
func AllowAtLeast(actor Identity, min Role) bool {
	required := Rank(min)
	if required < 0 {
		required = 0
	}
	return Rank(actor.Role) >= required
}

// AllowOwner reports whether the actor may act on a resource owned by
// ownerId: elevated roles always may, everyone else only on their own
// resources. A non-positive owner id cannot prove ownership and denies.
func AllowOwner(actor Identity, ownerId int) bool {
	if IsElevated(actor.Role) {
		return true
	}
	if ownerId <= 0 {
		return false
	}
	return actor.UserId == ownerId
}
