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

// CategoryAPIController exposes category CRUD. Reading is public; creating
// and editing need moderator or admin, deleting needs admin.
type CategoryAPIController struct {
	categoryService *service.CategoryService
}

func NewCategoryAPIController(g *gin.RouterGroup, categoryService *service.CategoryService, authService *service.AuthService) *CategoryAPIController {
	a := &CategoryAPIController{categoryService: categoryService}

	categories := g.Group("/categories")
	{
		categories.GET("", a.list)
		categories.GET("/:id", a.get)
		categories.POST("", middleware.TokenAuth(authService),
			middleware.RequireRoles(access.RoleAdmin, access.RoleModerator), a.create)
		categories.PUT("/:id", middleware.TokenAuth(authService),
			middleware.RequireRoles(access.RoleAdmin, access.RoleModerator), a.update)
		categories.DELETE("/:id", middleware.TokenAuth(authService),
			middleware.RequireRoles(access.RoleAdmin), a.delete)
	}
	return a
}

type categoryForm struct {
	Name string `json:"name"`
}

func (a *CategoryAPIController) list(c *gin.Context) {
	categories, err := a.categoryService.ListCategories()
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (a *CategoryAPIController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid category id", entity.ErrValidation))
		return
	}
	category, err := a.categoryService.GetCategory(id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *CategoryAPIController) create(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	category, err := a.categoryService.CreateCategory(form.Name)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "category created", "category": category})
}

func (a *CategoryAPIController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid category id", entity.ErrValidation))
		return
	}
	var form categoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	category, err := a.categoryService.UpdateCategory(id, form.Name)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "category updated", "category": category})
}

func (a *CategoryAPIController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid category id", entity.ErrValidation))
		return
	}
	if err := a.categoryService.DeleteCategory(id); err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
