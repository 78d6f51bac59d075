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

// PostAPIController exposes post CRUD. Reads are public and see published
// posts only. Editing requires ownership or an elevated role, with a
// missing post reported before any privilege check. Deleting requires
// admin, checked before the lookup, matching the API's guard order.
type PostAPIController struct {
	postService *service.PostService
}

func NewPostAPIController(g *gin.RouterGroup, postService *service.PostService, authService *service.AuthService) *PostAPIController {
	a := &PostAPIController{postService: postService}

	posts := g.Group("/posts")
	{
		posts.GET("", a.list)
		posts.GET("/:id", a.get)
		posts.POST("", middleware.TokenAuth(authService), a.create)
		posts.PUT("/:id", middleware.TokenAuth(authService), a.update)
		posts.DELETE("/:id", middleware.TokenAuth(authService),
			middleware.RequireRoles(access.RoleAdmin), a.delete)
	}
	return a
}

type postForm struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	CategoryIds []int  `json:"categoryIds"`
}

func (a *PostAPIController) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))

	posts, total, err := a.postService.ListPublished(page, size)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (a *PostAPIController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid post id", entity.ErrValidation))
		return
	}
	post, err := a.postService.GetPublishedPost(id)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (a *PostAPIController) create(c *gin.Context) {
	ident, _ := middleware.IdentityFromContext(c)

	var form postForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	post, err := a.postService.CreatePost(ident.UserId, form.Title, form.Content, form.CategoryIds)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "post created", "post": post})
}

func (a *PostAPIController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid post id", entity.ErrValidation))
		return
	}

	// Missing post must surface as 404 before any privilege question is
	// answered; the fetched entity then feeds both the ownership check and
	// the mutation.
	post, err := a.postService.GetPost(id)
	if err != nil {
		apiError(c, err)
		return
	}
	ident, _ := middleware.IdentityFromContext(c)
	if !access.AllowOwner(ident, post.UserId) {
		apiError(c, fmt.Errorf("%w: not the author and not a moderator", entity.ErrForbidden))
		return
	}

	var upd service.PostUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	post, err = a.postService.UpdatePost(post, upd)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "post updated", "post": post})
}

func (a *PostAPIController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid post id", entity.ErrValidation))
		return
	}
	post, err := a.postService.GetPost(id)
	if err != nil {
		apiError(c, err)
		return
	}
	if err := a.postService.DeletePost(post); err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
