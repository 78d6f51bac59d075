package service

import (
	"errors"
	"fmt"
	"strings"

	"miniblog/database/model"
	"miniblog/web/entity"

	"gorm.io/gorm"
)

type PostService struct {
	DB *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{DB: db}
}

// PostUpdate carries the optional fields of a post update.
type PostUpdate struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"isPublished"`
	CategoryIds []int   `json:"categoryIds"`
}

// ListPublished returns published posts, newest first. A page size of zero
// or less disables pagination. The returned count is the total of published
// posts regardless of page.
func (s *PostService) ListPublished(page, pageSize int) ([]model.Post, int64, error) {
	var total int64
	err := s.DB.Model(model.Post{}).Where("is_published = ?", true).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	tx := s.DB.Preload("Categories").
		Where("is_published = ?", true).
		Order("created_at DESC")
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var posts []model.Post
	if err := tx.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPublishedByCategory returns published posts carrying the category.
func (s *PostService) ListPublishedByCategory(categoryId, page, pageSize int) ([]model.Post, int64, error) {
	base := s.DB.Model(model.Post{}).
		Joins("JOIN post_categories pc ON pc.post_id = posts.id").
		Where("pc.category_id = ? AND posts.is_published = ?", categoryId, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := s.DB.Preload("Categories").
		Joins("JOIN post_categories pc ON pc.post_id = posts.id").
		Where("pc.category_id = ? AND posts.is_published = ?", categoryId, true).
		Order("posts.created_at DESC")
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var posts []model.Post
	if err := tx.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPost fetches a post regardless of publication state. Used by the web
// post view and by write paths, which authorize against the fetched entity
// and then mutate it without a second lookup.
func (s *PostService) GetPost(id int) (*model.Post, error) {
	var post model.Post
	err := s.DB.Preload("Categories").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedPost fetches a post for the public read path; unpublished
// posts are indistinguishable from missing ones.
func (s *PostService) GetPublishedPost(id int) (*model.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, entity.ErrNotFound
	}
	return post, nil
}

func (s *PostService) CreatePost(userId int, title, content string, categoryIds []int) (*model.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", entity.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content required", entity.ErrValidation)
	}

	categories, err := s.resolveCategories(categoryIds)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserId:      userId,
		Title:       title,
		Content:     content,
		IsPublished: true,
		Categories:  categories,
	}
	if err := s.DB.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost mutates an already-fetched (and already-authorized) post.
func (s *PostService) UpdatePost(post *model.Post, upd PostUpdate) (*model.Post, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title required", entity.ErrValidation)
		}
		post.Title = title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.IsPublished != nil {
		post.IsPublished = *upd.IsPublished
	}
	if upd.CategoryIds != nil {
		categories, err := s.resolveCategories(upd.CategoryIds)
		if err != nil {
			return nil, err
		}
		if err := s.DB.Model(post).Association("Categories").Replace(categories); err != nil {
			return nil, err
		}
		post.Categories = categories
	}
	if err := s.DB.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes an already-fetched post and its comments for good.
// Comments are only ever soft-deleted on their own; they go away with the
// post they belong to.
func (s *PostService) DeletePost(post *model.Post) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_categories WHERE post_id = ?", post.Id).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// resolveCategories maps category ids to rows; any unknown id invalidates
// the whole request.
func (s *PostService) resolveCategories(ids []int) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[int]bool, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	var categories []model.Category
	if err := s.DB.Where("id IN ?", unique).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, fmt.Errorf("%w: one or more category ids are invalid", entity.ErrValidation)
	}
	return categories, nil
}
