package service

import (
	"time"

	"miniblog/database/model"
	"miniblog/logger"

	"gorm.io/gorm"
)

// AuditLogService records who did what on the panel.
type AuditLogService struct {
	DB *gorm.DB
}

func NewAuditLogService(db *gorm.DB) *AuditLogService {
	return &AuditLogService{DB: db}
}

func (s *AuditLogService) LogAction(requestId string, userId int, username, action, resource string, resourceId int, ip, userAgent string) error {
	auditLog := model.AuditLog{
		RequestId:  requestId,
		UserId:     userId,
		Username:   username,
		Action:     action,
		Resource:   resource,
		ResourceId: resourceId,
		IP:         ip,
		UserAgent:  userAgent,
		Timestamp:  time.Now(),
	}
	if err := s.DB.Create(&auditLog).Error; err != nil {
		logger.Warningf("failed to create audit log: user=%d, action=%s, resource=%s, error=%v", userId, action, resource, err)
		return err
	}
	return nil
}

// CleanOldLogs drops audit entries older than the retention window.
func (s *AuditLogService) CleanOldLogs(retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.DB.Where("timestamp < ?", cutoff).Delete(&model.AuditLog{}).Error
}
