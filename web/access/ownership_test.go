package access

import (
	"os"
	"testing"

	"miniblog/database"
	"miniblog/database/model"
	"miniblog/web/entity"

	"github.com/stretchr/testify/assert"
)

func TestResolverOwner(t *testing.T) {
	os.Remove("test.db")
	assert.NoError(t, database.InitDB("test.db"))
	defer func() {
		db, _ := database.GetDB().DB()
		db.Close()
		os.Remove("test.db")
		os.Remove("test.db-wal")
		os.Remove("test.db-shm")
	}()

	db := database.GetDB()
	author := &model.User{Username: "author", Email: "author@example.com", Role: model.RoleUser}
	assert.NoError(t, db.Create(author).Error)
	post := &model.Post{UserId: author.Id, Title: "t", Content: "c", IsPublished: true}
	assert.NoError(t, db.Create(post).Error)
	comment := &model.Comment{PostId: post.Id, UserId: author.Id, Content: "c", IsVisible: true}
	assert.NoError(t, db.Create(comment).Error)

	resolver := NewResolver(db)

	owner, err := resolver.Owner(KindPost, post.Id)
	assert.NoError(t, err)
	assert.Equal(t, author.Id, owner)

	owner, err = resolver.Owner(KindComment, comment.Id)
	assert.NoError(t, err)
	assert.Equal(t, author.Id, owner)

	// Missing resources and unknown kinds both read as not found
	_, err = resolver.Owner(KindPost, 9999)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = resolver.Owner(Kind("user"), author.Id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
