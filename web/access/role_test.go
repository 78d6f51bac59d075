package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	assert.Equal(t, 0, Rank(RoleUser))
	assert.Equal(t, 1, Rank(RoleModerator))
	assert.Equal(t, 2, Rank(RoleAdmin))

	// Unknown roles rank below every real role
	assert.Equal(t, -1, Rank(Role("")))
	assert.Equal(t, -1, Rank(Role("superuser")))
	assert.Equal(t, -1, Rank(Role("Admin")))
}

func TestIsElevated(t *testing.T) {
	assert.False(t, IsElevated(RoleUser))
	assert.True(t, IsElevated(RoleModerator))
	assert.True(t, IsElevated(RoleAdmin))
	assert.False(t, IsElevated(Role("")))
	assert.False(t, IsElevated(Role("owner")))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(RoleUser))
	assert.True(t, Valid(RoleModerator))
	assert.True(t, Valid(RoleAdmin))
	assert.False(t, Valid(Role("")))
	assert.False(t, Valid(Role("root")))
}
