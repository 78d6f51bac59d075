package middleware

import (
	"net/http"

	"miniblog/web/access"
	"miniblog/web/session"

	"github.com/gin-gonic/gin"
)

// RequireRoles guards an API route with the exact-membership check: the
// caller's role must be one of the listed roles. Must run after TokenAuth.
func RequireRoles(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !access.AllowRoles(ident, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// SessionRoleAtLeast guards a web panel route with the hierarchical check:
// the session user's role must rank at or above min. Anonymous visitors are
// sent to the login page, under-ranked ones back to the index.
func SessionRoleAtLeast(min access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
			c.Abort()
			return
		}
		actor := access.Identity{UserId: user.Id, Role: access.Role(user.Role)}
		if !access.AllowAtLeast(actor, min) {
			c.Redirect(http.StatusSeeOther, c.GetString("base_path"))
			c.Abort()
			return
		}
		c.Next()
	}
}
