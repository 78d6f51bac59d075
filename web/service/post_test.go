package service

import (
	"testing"

	"miniblog/database"
	"miniblog/database/model"
	"miniblog/web/entity"

	"github.com/stretchr/testify/assert"
)

func TestPostLifecycle(t *testing.T) {
	setup()
	defer teardown()

	db := database.GetDB()
	postService := NewPostService(db)
	categoryService := NewCategoryService(db)

	author := &model.User{Username: "author", Email: "author@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(author).Error)

	golang, err := categoryService.CreateCategory("go")
	assert.NoError(t, err)

	// Create with categories
	post, err := postService.CreatePost(author.Id, "hello", "world", []int{golang.Id})
	assert.NoError(t, err)
	assert.True(t, post.IsPublished)
	assert.Len(t, post.Categories, 1)

	// Validation
	_, err = postService.CreatePost(author.Id, "  ", "content", nil)
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = postService.CreatePost(author.Id, "title", "", nil)
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = postService.CreatePost(author.Id, "title", "content", []int{9999})
	assert.ErrorIs(t, err, entity.ErrValidation)

	// Update through the already-fetched entity
	title := "hello again"
	unpublish := false
	post, err = postService.UpdatePost(post, PostUpdate{Title: &title, IsPublished: &unpublish})
	assert.NoError(t, err)
	assert.Equal(t, "hello again", post.Title)

	// An unpublished post vanishes from the public read path but stays
	// reachable for write paths
	_, err = postService.GetPublishedPost(post.Id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	fetched, err := postService.GetPost(post.Id)
	assert.NoError(t, err)
	assert.False(t, fetched.IsPublished)

	// Deletion takes the comments with it
	commentService := NewCommentService(db)
	comment, err := commentService.CreateComment(post.Id, author.Id, "bye")
	assert.NoError(t, err)
	assert.NoError(t, postService.DeletePost(fetched))
	_, err = postService.GetPost(post.Id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = commentService.GetComment(comment.Id, "admin")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestListPublished(t *testing.T) {
	setup()
	defer teardown()

	db := database.GetDB()
	postService := NewPostService(db)

	author := &model.User{Username: "author", Email: "author@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(author).Error)

	for i := 0; i < 7; i++ {
		_, err := postService.CreatePost(author.Id, "post", "content", nil)
		assert.NoError(t, err)
	}
	draft, err := postService.CreatePost(author.Id, "draft", "content", nil)
	assert.NoError(t, err)
	unpublish := false
	_, err = postService.UpdatePost(draft, PostUpdate{IsPublished: &unpublish})
	assert.NoError(t, err)

	// Total counts published posts only, regardless of page
	posts, total, err := postService.ListPublished(1, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, posts, 5)

	posts, _, err = postService.ListPublished(2, 5)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)

	// A non-positive page size disables pagination
	posts, _, err = postService.ListPublished(1, 0)
	assert.NoError(t, err)
	assert.Len(t, posts, 7)
}

func TestListPublishedByCategory(t *testing.T) {
	setup()
	defer teardown()

	db := database.GetDB()
	postService := NewPostService(db)
	categoryService := NewCategoryService(db)

	author := &model.User{Username: "author", Email: "author@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(author).Error)

	golang, _ := categoryService.CreateCategory("go")
	other, _ := categoryService.CreateCategory("other")

	_, err := postService.CreatePost(author.Id, "tagged", "content", []int{golang.Id})
	assert.NoError(t, err)
	_, err = postService.CreatePost(author.Id, "untagged", "content", []int{other.Id})
	assert.NoError(t, err)

	posts, total, err := postService.ListPublishedByCategory(golang.Id, 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, posts, 1)
	assert.Equal(t, "tagged", posts[0].Title)
}
