package job

import (
	"miniblog/logger"
	"miniblog/util/common"
	"miniblog/web/service"
)

// AuditCleanupJob trims audit log rows older than the configured retention.
type AuditCleanupJob struct {
	auditService   *service.AuditLogService
	settingService *service.SettingService
}

func NewAuditCleanupJob(auditService *service.AuditLogService, settingService *service.SettingService) *AuditCleanupJob {
	return &AuditCleanupJob{
		auditService:   auditService,
		settingService: settingService,
	}
}

func (j *AuditCleanupJob) Run() {
	defer common.Recover("audit cleanup job")

	days, err := j.settingService.GetAuditLogDays()
	if err != nil {
		logger.Warning("audit cleanup job err:", err)
		return
	}
	if days <= 0 {
		return
	}
	if err := j.auditService.CleanOldLogs(days); err != nil {
		logger.Warning("audit cleanup job err:", err)
	}
}
