package access

import (
	"errors"

	"miniblog/database/model"
	"miniblog/web/entity"

	"gorm.io/gorm"
)

// Kind names a resource type the resolver can look up.
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// Resolver looks up the owning user of a resource. Every call is a single
// fresh read; nothing is cached between authorization decisions, so a
// decision always sees current ownership at the cost of one extra query.
// Write paths that already fetched the full entity should authorize against
// that entity instead of resolving again.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Owner returns the owning user id of the resource, or entity.ErrNotFound.
func (r *Resolver) Owner(kind Kind, id int) (int, error) {
	var err error
	var ownerId int

	switch kind {
	case KindPost:
		var post model.Post
		err = r.db.Select("user_id").First(&post, id).Error
		ownerId = post.UserId
	case KindComment:
		var comment model.Comment
		err = r.db.Select("user_id").First(&comment, id).Error
		ownerId = comment.UserId
	default:
		return 0, entity.ErrNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, entity.ErrNotFound
		}
		return 0, err
	}
	return ownerId, nil
}
