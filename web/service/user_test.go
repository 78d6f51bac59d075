package service

import (
	"testing"

	"miniblog/database"
	"miniblog/database/model"
	"miniblog/web/entity"

	"github.com/stretchr/testify/assert"
)

func TestUserService(t *testing.T) {
	setup()
	defer teardown()

	db := database.GetDB()
	service := NewUserService(db)

	alice := &model.User{Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
	bob := &model.User{Username: "bob", Email: "bob@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(alice).Error)
	assert.NoError(t, db.Create(bob).Error)

	// The seeded admin account plus the two above
	users, err := service.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 3)

	// Update with role change
	role := model.RoleModerator
	updated, err := service.UpdateUser(alice, UserUpdate{Role: &role})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleModerator, updated.Role)

	badRole := "root"
	_, err = service.UpdateUser(alice, UserUpdate{Role: &badRole})
	assert.ErrorIs(t, err, entity.ErrValidation)

	// Renaming onto a taken username is a conflict
	taken := "bob"
	_, err = service.UpdateUser(alice, UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, entity.ErrConflict)

	// Delete
	assert.NoError(t, service.DeleteUser(bob.Id))
	_, err = service.GetUser(bob.Id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.ErrorIs(t, service.DeleteUser(9999), entity.ErrNotFound)
}

func TestStatsTotals(t *testing.T) {
	setup()
	defer teardown()

	db := database.GetDB()
	statsService := NewStatsService(db)

	author := &model.User{Username: "author", Email: "author@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(author).Error)
	postService := NewPostService(db)
	post, err := postService.CreatePost(author.Id, "hello", "world", nil)
	assert.NoError(t, err)
	commentService := NewCommentService(db)
	_, err = commentService.CreateComment(post.Id, author.Id, "hi")
	assert.NoError(t, err)

	stats, err := statsService.Totals()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.TotalComments)
	// Seeded admin plus the author
	assert.Equal(t, int64(2), stats.TotalUsers)
}
