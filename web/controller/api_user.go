package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"miniblog/web/access"
	"miniblog/web/entity"
	"miniblog/web/middleware"
	"miniblog/web/service"

	"github.com/gin-gonic/gin"
)

// UserAPIController exposes the user management endpoints. Listing and
// deletion are admin-only (exact role match); a profile is readable and
// editable by its owner or the elevated set, and only an admin may change a
// role.
type UserAPIController struct {
	userService *service.UserService
}

func NewUserAPIController(g *gin.RouterGroup, userService *service.UserService, authService *service.AuthService) *UserAPIController {
	a := &UserAPIController{userService: userService}

	users := g.Group("/users")
	users.Use(middleware.TokenAuth(authService))
	{
		users.GET("", middleware.RequireRoles(access.RoleAdmin), a.list)
		users.GET("/me", a.me)
		users.GET("/:id", a.get)
		users.PUT("/:id", a.update)
		users.DELETE("/:id", middleware.RequireRoles(access.RoleAdmin), a.delete)
	}
	return a
}

func (a *UserAPIController) list(c *gin.Context) {
	users, err := a.userService.ListUsers()
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (a *UserAPIController) me(c *gin.Context) {
	ident, _ := middleware.IdentityFromContext(c)
	user, err := a.userService.GetUser(ident.UserId)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *UserAPIController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid user id", entity.ErrValidation))
		return
	}
	ident, _ := middleware.IdentityFromContext(c)
	if ident.UserId != id && !access.IsElevated(ident.Role) {
		apiError(c, fmt.Errorf("%w: not allowed to view this profile", entity.ErrForbidden))
		return
	}
	user, err := a.userService.GetUser(id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *UserAPIController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid user id", entity.ErrValidation))
		return
	}
	ident, _ := middleware.IdentityFromContext(c)
	if ident.UserId != id && !access.IsElevated(ident.Role) {
		apiError(c, fmt.Errorf("%w: not allowed to edit this profile", entity.ErrForbidden))
		return
	}

	var upd service.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	// Only an admin may grant or change roles; others get the field
	// silently dropped.
	if upd.Role != nil && ident.Role != access.RoleAdmin {
		upd.Role = nil
	}

	user, err := a.userService.GetUser(id)
	if err != nil {
		apiError(c, err)
		return
	}
	user, err = a.userService.UpdateUser(user, upd)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "user updated", "user": user})
}

func (a *UserAPIController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid user id", entity.ErrValidation))
		return
	}
	if err := a.userService.DeleteUser(id); err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
