package controller

import (
	"net/http"

	"miniblog/web/access"
	"miniblog/web/middleware"
	"miniblog/web/service"

	"github.com/gin-gonic/gin"
)

// StatsAPIController serves site totals to staff. Moderator and admin are
// an exact allowed set here, not a rank threshold.
type StatsAPIController struct {
	statsService *service.StatsService
}

func NewStatsAPIController(g *gin.RouterGroup, statsService *service.StatsService, authService *service.AuthService) *StatsAPIController {
	a := &StatsAPIController{statsService: statsService}
	g.GET("/stats",
		middleware.TokenAuth(authService),
		middleware.RequireRoles(access.RoleAdmin, access.RoleModerator),
		a.totals)
	return a
}

func (a *StatsAPIController) totals(c *gin.Context) {
	stats, err := a.statsService.Totals()
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
