package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"miniblog/web/entity"
	"miniblog/web/middleware"
	"miniblog/web/service"

	"github.com/gin-gonic/gin"
)

// CommentAPIController handles comments both nested under a post (list,
// create) and addressed directly (get, edit, hide). Reads work without a
// token but use it when present, so elevated callers see hidden comments.
type CommentAPIController struct {
	commentService *service.CommentService
}

func NewCommentAPIController(g *gin.RouterGroup, commentService *service.CommentService, authService *service.AuthService) *CommentAPIController {
	a := &CommentAPIController{commentService: commentService}

	g.GET("/posts/:id/comments", middleware.OptionalTokenAuth(authService), a.listForPost)
	g.POST("/posts/:id/comments", middleware.TokenAuth(authService), a.create)

	comments := g.Group("/comments")
	{
		comments.GET("/:id", middleware.OptionalTokenAuth(authService), a.get)
		comments.PUT("/:id", middleware.TokenAuth(authService), a.update)
		comments.DELETE("/:id", middleware.TokenAuth(authService), a.delete)
	}
	return a
}

type commentForm struct {
	Content string `json:"content"`
}

func (a *CommentAPIController) listForPost(c *gin.Context) {
	postId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid post id", entity.ErrValidation))
		return
	}
	comments, err := a.commentService.ListForPost(postId, middleware.ViewerRole(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (a *CommentAPIController) create(c *gin.Context) {
	postId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid post id", entity.ErrValidation))
		return
	}
	ident, _ := middleware.IdentityFromContext(c)

	var form commentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	comment, err := a.commentService.CreateComment(postId, ident.UserId, form.Content)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "comment created", "comment": comment})
}

func (a *CommentAPIController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid comment id", entity.ErrValidation))
		return
	}
	comment, err := a.commentService.GetComment(id, middleware.ViewerRole(c))
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (a *CommentAPIController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid comment id", entity.ErrValidation))
		return
	}
	ident, _ := middleware.IdentityFromContext(c)

	var form commentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	comment, err := a.commentService.UpdateById(id, ident, form.Content)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "comment updated", "comment": comment})
}

func (a *CommentAPIController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, fmt.Errorf("%w: invalid comment id", entity.ErrValidation))
		return
	}
	ident, _ := middleware.IdentityFromContext(c)
	if err := a.commentService.Hide(id, ident); err != nil {
		apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
