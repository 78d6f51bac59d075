// Package controller provides the HTTP handlers of the miniblog panel: the
// server-rendered web interface and the JSON API share the controllers in
// this package.
package controller

import (
	"net/http"

	"miniblog/web/access"
	"miniblog/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for the web controllers,
// including the session login check.
type BaseController struct{}

// checkLogin is a middleware that verifies session authentication and
// handles unauthorized access.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "please log in again")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// sessionIdentity builds the caller identity from the session user. The
// zero identity (no id, no role) holds no privilege at all.
func sessionIdentity(c *gin.Context) access.Identity {
	user := session.GetLoginUser(c)
	if user == nil {
		return access.Identity{}
	}
	return access.Identity{UserId: user.Id, Role: access.Role(user.Role)}
}
