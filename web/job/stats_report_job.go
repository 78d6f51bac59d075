// Package job contains the scheduled background jobs run by the web server's
// cron scheduler.
package job

import (
	"miniblog/logger"
	"miniblog/util/common"
	"miniblog/web/service"
)

// StatsReportJob periodically writes the site totals to the log so operators
// can track growth without querying the database.
type StatsReportJob struct {
	statsService *service.StatsService
}

func NewStatsReportJob(statsService *service.StatsService) *StatsReportJob {
	return &StatsReportJob{statsService: statsService}
}

func (j *StatsReportJob) Run() {
	defer common.Recover("stats report job")

	stats, err := j.statsService.Totals()
	if err != nil {
		logger.Warning("stats report job err:", err)
		return
	}
	logger.Infof("site totals: %d posts, %d comments, %d users",
		stats.TotalPosts, stats.TotalComments, stats.TotalUsers)
}
