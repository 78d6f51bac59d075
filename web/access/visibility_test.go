package access

import (
	"testing"

	"miniblog/database/model"

	"github.com/stretchr/testify/assert"
)

func TestVisibleTo(t *testing.T) {
	visible := &model.Comment{Id: 1, IsVisible: true}
	hidden := &model.Comment{Id: 2, IsVisible: false}

	// Anyone sees visible comments
	assert.True(t, VisibleTo(RoleUser, visible))
	assert.True(t, VisibleTo(Role(""), visible))
	assert.True(t, VisibleTo(RoleAdmin, visible))

	// Hidden comments are only readable by elevated roles
	assert.False(t, VisibleTo(RoleUser, hidden))
	assert.False(t, VisibleTo(Role(""), hidden))
	assert.True(t, VisibleTo(RoleModerator, hidden))
	assert.True(t, VisibleTo(RoleAdmin, hidden))
}
