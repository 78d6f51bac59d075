// Package middleware provides the gin middleware of the miniblog panel:
// bearer-token authentication, role guards, audit logging and domain
// validation.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"miniblog/web/access"
	"miniblog/web/entity"
	"miniblog/web/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "IDENTITY"

// TokenAuth requires a valid bearer token and stores the caller identity in
// the request context. A structurally broken identity inside an otherwise
// valid token is a 400, not a 401: the token verified fine, the claims are
// garbage.
func TokenAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := identityFromHeader(c, authService)
		if err != nil {
			if errors.Is(err, entity.ErrInvalidIdentity) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed identity in token"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			}
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// OptionalTokenAuth resolves the caller identity when an Authorization
// header is present and lets anonymous requests through untouched. A header
// that is present but broken is still rejected; silently downgrading a bad
// token to anonymous would mask client bugs.
func OptionalTokenAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		ident, err := identityFromHeader(c, authService)
		if err != nil {
			if errors.Is(err, entity.ErrInvalidIdentity) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed identity in token"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			}
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

func identityFromHeader(c *gin.Context, authService *service.AuthService) (access.Identity, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return access.Identity{}, errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return access.Identity{}, errors.New("invalid authorization format")
	}
	return authService.VerifyToken(parts[1])
}

// IdentityFromContext returns the identity stored by TokenAuth.
func IdentityFromContext(c *gin.Context) (access.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return access.Identity{}, false
	}
	ident, ok := v.(access.Identity)
	return ident, ok
}

// ViewerRole returns the caller's role for read-path filtering; anonymous
// callers get the empty role and therefore no privilege.
func ViewerRole(c *gin.Context) access.Role {
	if ident, ok := IdentityFromContext(c); ok {
		return ident.Role
	}
	return ""
}
