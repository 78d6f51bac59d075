package service

import (
	"errors"
	"fmt"
	"strings"

	"miniblog/database/model"
	"miniblog/web/entity"

	"gorm.io/gorm"
)

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

func (s *CategoryService) ListCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := s.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(id int) (*model.Category, error) {
	var category model.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) GetCategoryByName(name string) (*model.Category, error) {
	var category model.Category
	if err := s.DB.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory adds a category with a unique name.
func (s *CategoryService) CreateCategory(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", entity.ErrValidation)
	}

	var count int64
	if err := s.DB.Model(model.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: category %q already exists", entity.ErrConflict, name)
	}

	category := &model.Category{Name: name}
	if err := s.DB.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(id int, name string) (*model.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", entity.ErrValidation)
	}
	var count int64
	err = s.DB.Model(model.Category{}).
		Where("name = ? AND id <> ?", name, id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: category name %q already in use", entity.ErrConflict, name)
	}

	category.Name = name
	if err := s.DB.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(id int) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}
	if err := s.DB.Exec("DELETE FROM post_categories WHERE category_id = ?", id).Error; err != nil {
		return err
	}
	return s.DB.Delete(category).Error
}
