package service

import (
	"os"
	"testing"

	"miniblog/database"
	"miniblog/database/model"
	"miniblog/web/access"
	"miniblog/web/entity"

	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
	os.Remove("test.db-wal")
	os.Remove("test.db-shm")
}

func seedPostWithComments(t *testing.T) (*model.Post, *model.Comment, *model.Comment) {
	db := database.GetDB()

	author := &model.User{Username: "author", Email: "author@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(author).Error)
	post := &model.Post{UserId: author.Id, Title: "hello", Content: "world", IsPublished: true}
	assert.NoError(t, db.Create(post).Error)

	visible := &model.Comment{PostId: post.Id, UserId: author.Id, Content: "first", IsVisible: true}
	hidden := &model.Comment{PostId: post.Id, UserId: author.Id, Content: "second", IsVisible: false}
	assert.NoError(t, db.Create(visible).Error)
	assert.NoError(t, db.Create(hidden).Error)
	return post, visible, hidden
}

func TestCommentVisibilityFilter(t *testing.T) {
	setup()
	defer teardown()

	service := NewCommentService(database.GetDB())
	post, visible, hidden := seedPostWithComments(t)

	// Ordinary viewers only see visible comments
	comments, err := service.ListForPost(post.Id, access.RoleUser)
	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, visible.Id, comments[0].Id)

	// Anonymous viewers get the same filter
	comments, err = service.ListForPost(post.Id, access.Role(""))
	assert.NoError(t, err)
	assert.Len(t, comments, 1)

	// Elevated viewers see hidden comments too
	comments, err = service.ListForPost(post.Id, access.RoleModerator)
	assert.NoError(t, err)
	assert.Len(t, comments, 2)

	// Single fetch follows the same rule
	_, err = service.GetComment(hidden.Id, access.RoleUser)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	got, err := service.GetComment(hidden.Id, access.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, "second", got.Content)

	// Listing for a missing post is not an empty list
	_, err = service.ListForPost(9999, access.RoleAdmin)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCommentHide(t *testing.T) {
	setup()
	defer teardown()

	service := NewCommentService(database.GetDB())
	_, visible, _ := seedPostWithComments(t)
	owner := access.Identity{UserId: visible.UserId, Role: access.RoleUser}
	stranger := access.Identity{UserId: visible.UserId + 100, Role: access.RoleUser}
	admin := access.Identity{UserId: 1, Role: access.RoleAdmin}

	// A non-owner without an elevated role is denied, and the denial is a
	// 403-shaped error even though the comment exists
	err := service.Hide(visible.Id, stranger)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	// The owner may hide, and the content survives
	err = service.Hide(visible.Id, owner)
	assert.NoError(t, err)
	got, err := service.GetComment(visible.Id, access.RoleAdmin)
	assert.NoError(t, err)
	assert.False(t, got.IsVisible)
	assert.Equal(t, "first", got.Content)

	// Hiding an already hidden comment is a plain overwrite for an
	// authorized caller
	err = service.Hide(visible.Id, admin)
	assert.NoError(t, err)

	// An unauthorized caller on a hidden comment is still denied, not told
	// the comment is missing
	err = service.Hide(visible.Id, stranger)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	// A missing comment is missing for everyone
	err = service.Hide(9999, admin)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCommentCreateAndUpdate(t *testing.T) {
	setup()
	defer teardown()

	service := NewCommentService(database.GetDB())
	post, _, _ := seedPostWithComments(t)
	owner := access.Identity{UserId: post.UserId, Role: access.RoleUser}
	stranger := access.Identity{UserId: post.UserId + 100, Role: access.RoleUser}

	// Comments are always created visible
	comment, err := service.CreateComment(post.Id, post.UserId, "a thought")
	assert.NoError(t, err)
	assert.True(t, comment.IsVisible)

	_, err = service.CreateComment(post.Id, post.UserId, "   ")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = service.CreateComment(9999, post.UserId, "orphan")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// Editing follows the same ownership rule as hiding
	updated, err := service.UpdateById(comment.Id, owner, "a better thought")
	assert.NoError(t, err)
	assert.Equal(t, "a better thought", updated.Content)

	_, err = service.UpdateById(comment.Id, stranger, "vandalism")
	assert.ErrorIs(t, err, entity.ErrForbidden)
	_, err = service.UpdateById(9999, owner, "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
