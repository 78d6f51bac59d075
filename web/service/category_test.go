package service

import (
	"testing"

	"miniblog/database"
	"miniblog/database/model"
	"miniblog/web/entity"

	"github.com/stretchr/testify/assert"
)

func TestCategoryService(t *testing.T) {
	setup()
	defer teardown()

	service := NewCategoryService(database.GetDB())

	// Create
	category, err := service.CreateCategory("go")
	assert.NoError(t, err)
	assert.Equal(t, "go", category.Name)

	_, err = service.CreateCategory("  ")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = service.CreateCategory("go")
	assert.ErrorIs(t, err, entity.ErrConflict)

	// Get by id and by name
	got, err := service.GetCategory(category.Id)
	assert.NoError(t, err)
	assert.Equal(t, "go", got.Name)
	got, err = service.GetCategoryByName("go")
	assert.NoError(t, err)
	assert.Equal(t, category.Id, got.Id)
	_, err = service.GetCategory(9999)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// Update, including a rename onto a taken name
	other, err := service.CreateCategory("web")
	assert.NoError(t, err)
	_, err = service.UpdateCategory(other.Id, "go")
	assert.ErrorIs(t, err, entity.ErrConflict)
	renamed, err := service.UpdateCategory(other.Id, "www")
	assert.NoError(t, err)
	assert.Equal(t, "www", renamed.Name)

	// Delete detaches the category from posts
	db := database.GetDB()
	author := &model.User{Username: "author", Email: "author@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(author).Error)
	postService := NewPostService(db)
	post, err := postService.CreatePost(author.Id, "tagged", "content", []int{category.Id})
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteCategory(category.Id))
	_, err = service.GetCategory(category.Id)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	fetched, err := postService.GetPost(post.Id)
	assert.NoError(t, err)
	assert.Len(t, fetched.Categories, 0)
}
