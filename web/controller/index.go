package controller

import (
	"net/http"
	"strconv"

	"miniblog/database/model"
	"miniblog/logger"
	"miniblog/web/service"
	"miniblog/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// IndexController handles the public pages of the web panel: the paginated
// front page and the session-based login, register and logout flows.
type IndexController struct {
	BaseController

	settingService *service.SettingService
	userService    *service.UserService
	authService    *service.AuthService
	postService    *service.PostService
}

func NewIndexController(g *gin.RouterGroup,
	settingService *service.SettingService,
	userService *service.UserService,
	authService *service.AuthService,
	postService *service.PostService,
) *IndexController {
	a := &IndexController{
		settingService: settingService,
		userService:    userService,
		authService:    authService,
		postService:    postService,
	}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/index", a.index)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/logout", a.logout)
}

// index renders the front page with a page of published posts.
func (a *IndexController) index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, err := a.settingService.GetPageSize()
	if err != nil {
		logger.Warning("unable to get page size from DB: ", err)
		pageSize = 5
	}

	posts, total, err := a.postService.ListPublished(page, pageSize)
	if err != nil {
		logger.Error("failed to list posts:", err)
		posts = nil
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))

	html(c, "index.html", "Home", gin.H{
		"posts":      posts,
		"page":       page,
		"pages":      pages,
		"total":      total,
		"login_user": session.GetLoginUser(c),
	})
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		return
	}
	html(c, "login.html", "Log In", nil)
}

type webLoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// login authenticates against the users table and stores the user in the
// cookie session.
func (a *IndexController) login(c *gin.Context) {
	var form webLoginForm
	if err := c.ShouldBind(&form); err != nil || form.Email == "" || form.Password == "" {
		html(c, "login.html", "Log In", gin.H{"error": "email and password are required"})
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s", form.Email, getRemoteIp(c))
		html(c, "login.html", "Log In", gin.H{"error": "wrong email or password"})
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("unable to get session's max age from DB")
	}
	if err := session.SetMaxAge(c, sessionMaxAge*60); err != nil {
		logger.Warning("unable to set session max age: ", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to set login user: ", err)
	}
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("unable to save session: ", err)
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusSeeOther, c.GetString("base_path"))
}

func (a *IndexController) registerPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		return
	}
	html(c, "register.html", "Register", nil)
}

type webRegisterForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// register creates a plain user account and logs it in. The web form never
// offers a role choice; elevation happens through the admin page.
func (a *IndexController) register(c *gin.Context) {
	var form webRegisterForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "register.html", "Register", gin.H{"error": "invalid form data"})
		return
	}

	user, err := a.authService.Register(form.Username, form.Email, form.Password, model.RoleUser)
	if err != nil {
		html(c, "register.html", "Register", gin.H{"error": err.Error()})
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to set login user: ", err)
	}
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("unable to save session: ", err)
	}
	logger.Infof("%s registered, IP: %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusSeeOther, c.GetString("base_path"))
}

// logout clears the session and returns to the front page.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session: ", err)
	}
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
}
