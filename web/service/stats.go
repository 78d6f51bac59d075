package service

import (
	"miniblog/database/model"
	"miniblog/web/entity"

	"gorm.io/gorm"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Totals counts posts, comments and users. Hidden comments are included;
// the dashboards this feeds are moderator-facing.
func (s *StatsService) Totals() (*entity.Stats, error) {
	stats := &entity.Stats{}
	if err := s.DB.Model(model.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(model.Comment{}).Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
