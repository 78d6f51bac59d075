package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowRoles(t *testing.T) {
	admin := Identity{UserId: 1, Role: RoleAdmin}
	moderator := Identity{UserId: 2, Role: RoleModerator}
	user := Identity{UserId: 3, Role: RoleUser}
	anonymous := Identity{}

	// Exact membership, no hierarchy: an admin is not let into a
	// moderator-only endpoint.
	assert.True(t, AllowRoles(admin, RoleAdmin))
	assert.False(t, AllowRoles(admin, RoleModerator))
	assert.True(t, AllowRoles(admin, RoleAdmin, RoleModerator))
	assert.True(t, AllowRoles(moderator, RoleAdmin, RoleModerator))
	assert.False(t, AllowRoles(user, RoleAdmin, RoleModerator))

	assert.False(t, AllowRoles(anonymous, RoleUser))
	assert.False(t, AllowRoles(user))
}

func TestAllowAtLeast(t *testing.T) {
	admin := Identity{UserId: 1, Role: RoleAdmin}
	moderator := Identity{UserId: 2, Role: RoleModerator}
	user := Identity{UserId: 3, Role: RoleUser}
	unknown := Identity{UserId: 4, Role: Role("owner")}

	assert.True(t, AllowAtLeast(admin, RoleModerator))
	assert.True(t, AllowAtLeast(admin, RoleAdmin))
	assert.True(t, AllowAtLeast(moderator, RoleModerator))
	assert.False(t, AllowAtLeast(moderator, RoleAdmin))
	assert.False(t, AllowAtLeast(user, RoleModerator))
	assert.True(t, AllowAtLeast(user, RoleUser))

	// An unknown actor role ranks below every requirement, including an
	// unknown minimum, which degrades to the lowest known rank.
	assert.False(t, AllowAtLeast(unknown, RoleUser))
	assert.False(t, AllowAtLeast(unknown, Role("nonsense")))
	assert.True(t, AllowAtLeast(user, Role("nonsense")))
}

func TestAllowOwner(t *testing.T) {
	admin := Identity{UserId: 1, Role: RoleAdmin}
	moderator := Identity{UserId: 2, Role: RoleModerator}
	owner := Identity{UserId: 7, Role: RoleUser}
	other := Identity{UserId: 8, Role: RoleUser}

	// Elevated roles override ownership
	assert.True(t, AllowOwner(admin, 7))
	assert.True(t, AllowOwner(moderator, 7))

	assert.True(t, AllowOwner(owner, 7))
	assert.False(t, AllowOwner(other, 7))

	// A non-positive owner id can never prove ownership
	assert.False(t, AllowOwner(owner, 0))
	assert.False(t, AllowOwner(Identity{UserId: 0, Role: RoleUser}, 0))
	assert.False(t, AllowOwner(other, -1))
	assert.True(t, AllowOwner(admin, 0))
}
