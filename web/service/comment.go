package service

import (
	"errors"
	"fmt"
	"strings"

	"miniblog/database/model"
	"miniblog/web/access"
	"miniblog/web/entity"

	"gorm.io/gorm"
)

// CommentService owns the comment lifecycle, including the visibility state
// machine: comments are created visible and can only ever be hidden.
type CommentService struct {
	DB       *gorm.DB
	resolver *access.Resolver
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db, resolver: access.NewResolver(db)}
}

// ListForPost returns the post's comments readable by the viewer role,
// oldest first. The parent post must exist.
func (s *CommentService) ListForPost(postId int, viewer access.Role) ([]model.Comment, error) {
	if err := s.postExists(postId); err != nil {
		return nil, err
	}
	var comments []model.Comment
	err := s.DB.Scopes(access.VisibilityScope(viewer)).
		Where("post_id = ?", postId).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetComment fetches a single comment; hidden comments are indistinguishable
// from missing ones for non-elevated viewers.
func (s *CommentService) GetComment(id int, viewer access.Role) (*model.Comment, error) {
	comment, err := s.getComment(id)
	if err != nil {
		return nil, err
	}
	if !access.VisibleTo(viewer, comment) {
		return nil, entity.ErrNotFound
	}
	return comment, nil
}

// CreateComment adds a visible comment to an existing post. No path creates
// a comment hidden.
func (s *CommentService) CreateComment(postId, userId int, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content required", entity.ErrValidation)
	}
	if err := s.postExists(postId); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		PostId:    postId,
		UserId:    userId,
		Content:   content,
		IsVisible: true,
	}
	if err := s.DB.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment mutates an already-fetched (and already-authorized) comment.
func (s *CommentService) UpdateComment(comment *model.Comment, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content required", entity.ErrValidation)
	}
	comment.Content = content
	if err := s.DB.Save(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListAll returns every comment, hidden ones included, newest first. Only
// the moderation page uses it; callers are expected to have been gated on an
// elevated role already.
func (s *CommentService) ListAll() ([]model.Comment, error) {
	var comments []model.Comment
	if err := s.DB.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateById fetches, authorizes and edits a comment in one round trip. The
// lookup runs first so a missing comment is reported missing even to callers
// who would have been denied.
func (s *CommentService) UpdateById(id int, actor access.Identity, content string) (*model.Comment, error) {
	owner, err := s.resolver.Owner(access.KindComment, id)
	if err != nil {
		return nil, err
	}
	if !access.AllowOwner(actor, owner) {
		return nil, fmt.Errorf("%w: not the author and not a moderator", entity.ErrForbidden)
	}
	comment, err := s.getComment(id)
	if err != nil {
		return nil, err
	}
	return s.UpdateComment(comment, content)
}

// Hide soft-deletes a comment: only the owner or an elevated actor may
// trigger it, the content stays untouched and ordinary reads stop seeing
// the comment. Hiding an already-hidden comment is a plain overwrite, so an
// authorized retry succeeds; an unauthorized one is still denied rather
// than reported missing.
func (s *CommentService) Hide(id int, actor access.Identity) error {
	owner, err := s.resolver.Owner(access.KindComment, id)
	if err != nil {
		return err
	}
	if !access.AllowOwner(actor, owner) {
		return fmt.Errorf("%w: not the author and not a moderator", entity.ErrForbidden)
	}
	// Touch the flag only, leaving the content untouched
	return s.DB.Model(model.Comment{}).Where("id = ?", id).
		Update("is_visible", false).Error
}

// getComment fetches without a visibility filter; write paths must see
// hidden comments to authorize against them.
func (s *CommentService) getComment(id int) (*model.Comment, error) {
	var comment model.Comment
	if err := s.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) postExists(postId int) error {
	var count int64
	if err := s.DB.Model(model.Post{}).Where("id = ?", postId).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: post %d", entity.ErrNotFound, postId)
	}
	return nil
}

// RemoveOrphanedComments deletes comments whose post no longer exists.
// Used by the migrate command.
func (s *CommentService) RemoveOrphanedComments() error {
	return s.DB.Exec("DELETE FROM comments WHERE post_id NOT IN (SELECT id FROM posts)").Error
}
