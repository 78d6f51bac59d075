package controller

import (
	"net/http"
	"strconv"
	"strings"

	"miniblog/database/model"
	"miniblog/logger"
	"miniblog/web/access"
	"miniblog/web/middleware"
	"miniblog/web/service"
	"miniblog/web/session"

	"github.com/gin-gonic/gin"
)

// BlogController serves the post, category, admin and moderation pages of
// the web panel. Post editing is gated on ownership, post deletion and the
// admin page on the admin rank, the moderation page on the moderator rank.
type BlogController struct {
	BaseController

	settingService  *service.SettingService
	userService     *service.UserService
	postService     *service.PostService
	categoryService *service.CategoryService
	commentService  *service.CommentService
}

func NewBlogController(g *gin.RouterGroup,
	settingService *service.SettingService,
	userService *service.UserService,
	postService *service.PostService,
	categoryService *service.CategoryService,
	commentService *service.CommentService,
) *BlogController {
	a := &BlogController{
		settingService:  settingService,
		userService:     userService,
		postService:     postService,
		categoryService: categoryService,
		commentService:  commentService,
	}
	a.initRouter(g)
	return a
}

func (a *BlogController) initRouter(g *gin.RouterGroup) {
	g.GET("/post/new", a.checkLogin, a.newPostPage)
	g.POST("/post/new", a.checkLogin, a.newPost)
	g.GET("/post/:id", a.viewPost)
	g.GET("/post/:id/edit", a.checkLogin, a.editPostPage)
	g.POST("/post/:id/edit", a.checkLogin, a.editPost)
	g.POST("/post/:id/delete", middleware.SessionRoleAtLeast(access.RoleAdmin), a.deletePost)
	g.POST("/post/:id/comment", a.checkLogin, a.addComment)
	g.POST("/comment/:id/delete", a.checkLogin, a.deleteComment)
	g.GET("/category/:name", a.viewCategory)
	g.GET("/admin", middleware.SessionRoleAtLeast(access.RoleAdmin), a.adminPage)
	g.POST("/admin/user/:id/role", middleware.SessionRoleAtLeast(access.RoleAdmin), a.changeRole)
	g.GET("/moderator", middleware.SessionRoleAtLeast(access.RoleModerator), a.moderatorPage)
}

func (a *BlogController) newPostPage(c *gin.Context) {
	categories, err := a.categoryService.ListCategories()
	if err != nil {
		logger.Error("failed to list categories:", err)
	}
	html(c, "post_form.html", "New Post", gin.H{
		"categories": categories,
		"login_user": session.GetLoginUser(c),
	})
}

type postWebForm struct {
	Title       string `form:"title"`
	Content     string `form:"content"`
	CategoryIds []int  `form:"categories"`
}

func (a *BlogController) newPost(c *gin.Context) {
	var form postWebForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "post_form.html", "New Post", gin.H{"error": "invalid form data"})
		return
	}
	ident := sessionIdentity(c)
	post, err := a.postService.CreatePost(ident.UserId, form.Title, form.Content, form.CategoryIds)
	if err != nil {
		categories, _ := a.categoryService.ListCategories()
		html(c, "post_form.html", "New Post", gin.H{
			"error":      err.Error(),
			"categories": categories,
			"form":       form,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, c.GetString("base_path")+"post/"+strconv.Itoa(post.Id))
}

// viewPost renders a single post with its comments. The session role drives
// which comments the visibility filter lets through.
func (a *BlogController) viewPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	post, err := a.postService.GetPost(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	ident := sessionIdentity(c)
	if !post.IsPublished && !access.AllowOwner(ident, post.UserId) {
		c.Status(http.StatusNotFound)
		return
	}

	comments, err := a.commentService.ListForPost(post.Id, ident.Role)
	if err != nil {
		logger.Error("failed to list comments:", err)
	}
	users := a.commentAuthors(comments2UserIds(comments, post.UserId))

	html(c, "post.html", post.Title, gin.H{
		"post":       post,
		"comments":   comments,
		"users":      users,
		"login_user": session.GetLoginUser(c),
		"can_edit":   access.AllowOwner(ident, post.UserId),
		"can_delete": access.AllowAtLeast(ident, access.RoleAdmin),
		"elevated":   access.IsElevated(ident.Role),
	})
}

func (a *BlogController) editPostPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	post, err := a.postService.GetPost(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if !access.AllowOwner(sessionIdentity(c), post.UserId) {
		c.Status(http.StatusForbidden)
		return
	}
	categories, _ := a.categoryService.ListCategories()
	html(c, "post_form.html", "Edit Post", gin.H{
		"post":       post,
		"categories": categories,
		"login_user": session.GetLoginUser(c),
	})
}

func (a *BlogController) editPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	post, err := a.postService.GetPost(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if !access.AllowOwner(sessionIdentity(c), post.UserId) {
		c.Status(http.StatusForbidden)
		return
	}

	var form postWebForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "post_form.html", "Edit Post", gin.H{"error": "invalid form data", "post": post})
		return
	}
	upd := service.PostUpdate{
		Title:       &form.Title,
		Content:     &form.Content,
		CategoryIds: form.CategoryIds,
	}
	if _, err := a.postService.UpdatePost(post, upd); err != nil {
		categories, _ := a.categoryService.ListCategories()
		html(c, "post_form.html", "Edit Post", gin.H{
			"error":      err.Error(),
			"post":       post,
			"categories": categories,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, c.GetString("base_path")+"post/"+strconv.Itoa(post.Id))
}

func (a *BlogController) deletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	post, err := a.postService.GetPost(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if err := a.postService.DeletePost(post); err != nil {
		logger.Error("failed to delete post:", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusSeeOther, c.GetString("base_path"))
}

func (a *BlogController) addComment(c *gin.Context) {
	postId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	content := strings.TrimSpace(c.PostForm("content"))
	ident := sessionIdentity(c)
	if _, err := a.commentService.CreateComment(postId, ident.UserId, content); err != nil {
		logger.Warning("failed to create comment: ", err)
	}
	c.Redirect(http.StatusSeeOther, c.GetString("base_path")+"post/"+strconv.Itoa(postId))
}

// deleteComment hides the comment rather than removing the row, so the
// moderation page keeps the record.
func (a *BlogController) deleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	postId := c.PostForm("post_id")
	if err := a.commentService.Hide(id, sessionIdentity(c)); err != nil {
		c.Status(statusFromError(err))
		return
	}
	if postId != "" {
		c.Redirect(http.StatusSeeOther, c.GetString("base_path")+"post/"+postId)
		return
	}
	c.Redirect(http.StatusSeeOther, c.GetString("base_path"))
}

func (a *BlogController) viewCategory(c *gin.Context) {
	category, err := a.categoryService.GetCategoryByName(c.Param("name"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, err := a.settingService.GetPageSize()
	if err != nil {
		pageSize = 5
	}
	posts, total, err := a.postService.ListPublishedByCategory(category.Id, page, pageSize)
	if err != nil {
		logger.Error("failed to list posts by category:", err)
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	html(c, "index.html", category.Name, gin.H{
		"posts":      posts,
		"category":   category,
		"page":       page,
		"pages":      pages,
		"total":      total,
		"login_user": session.GetLoginUser(c),
	})
}

func (a *BlogController) adminPage(c *gin.Context) {
	users, err := a.userService.ListUsers()
	if err != nil {
		logger.Error("failed to list users:", err)
	}
	html(c, "admin.html", "Administration", gin.H{
		"users":      users,
		"logs":       logger.GetLogs(20, "INFO"),
		"login_user": session.GetLoginUser(c),
	})
}

func (a *BlogController) changeRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	role := c.PostForm("role")
	user, err := a.userService.GetUser(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if _, err := a.userService.UpdateUser(user, service.UserUpdate{Role: &role}); err != nil {
		c.Status(statusFromError(err))
		return
	}
	logger.Infof("role of %s changed to %s", user.Username, role)
	c.Redirect(http.StatusSeeOther, c.GetString("base_path")+"admin")
}

func (a *BlogController) moderatorPage(c *gin.Context) {
	comments, err := a.commentService.ListAll()
	if err != nil {
		logger.Error("failed to list comments:", err)
	}
	html(c, "moderator.html", "Moderation", gin.H{
		"comments":   comments,
		"login_user": session.GetLoginUser(c),
	})
}

func comments2UserIds(comments []model.Comment, extra ...int) []int {
	ids := make([]int, 0, len(comments)+len(extra))
	for _, comment := range comments {
		ids = append(ids, comment.UserId)
	}
	return append(ids, extra...)
}

// commentAuthors resolves the author names shown next to comments.
func (a *BlogController) commentAuthors(userIds []int) map[int]string {
	users := make(map[int]string, len(userIds))
	for _, id := range userIds {
		if _, ok := users[id]; ok {
			continue
		}
		if user, err := a.userService.GetUser(id); err == nil {
			users[id] = user.Username
		}
	}
	return users
}
