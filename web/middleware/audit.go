package middleware

import (
	"strconv"
	"strings"

	"miniblog/logger"
	"miniblog/web/service"
	"miniblog/web/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Audit records state-changing panel actions of logged-in users. Reads and
// static assets are skipped. Runs after the handler so only completed
// requests are recorded.
func Audit(auditService *service.AuditLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.NewString()
		c.Header("X-Request-Id", requestId)

		c.Next()

		if c.Request.Method == "GET" || shouldSkipAudit(c.Request.URL.Path) {
			return
		}

		userId := 0
		username := ""
		if user := session.GetLoginUser(c); user != nil {
			userId = user.Id
			username = user.Username
		} else if ident, ok := IdentityFromContext(c); ok {
			userId = ident.UserId
		}
		if userId == 0 {
			return
		}

		resource, resourceId := extractResourceFromPath(c.Request.URL.Path)
		if err := auditService.LogAction(
			requestId,
			userId,
			username,
			c.Request.Method,
			resource,
			resourceId,
			c.ClientIP(),
			c.GetHeader("User-Agent"),
		); err != nil {
			logger.Warning("failed to log audit action:", err)
		}
	}
}

func shouldSkipAudit(path string) bool {
	skipPaths := []string{"/assets/", "/favicon.ico", "/login", "/register"}
	for _, skipPath := range skipPaths {
		if strings.Contains(path, skipPath) {
			return true
		}
	}
	return false
}

// extractResourceFromPath maps a request path to the resource it touches
// and, when present, the numeric id that follows the resource segment.
func extractResourceFromPath(path string) (string, int) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	resources := map[string]string{
		"posts": "post", "post": "post",
		"comments": "comment", "comment": "comment",
		"categories": "category", "category": "category",
		"users": "user", "user": "user",
	}
	for i, segment := range segments {
		resource, ok := resources[segment]
		if !ok {
			continue
		}
		id := 0
		if i+1 < len(segments) {
			id, _ = strconv.Atoi(segments[i+1])
		}
		return resource, id
	}
	return "unknown", 0
}
