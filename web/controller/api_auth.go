package controller

import (
	"fmt"
	"net/http"

	"miniblog/logger"
	"miniblog/web/entity"
	"miniblog/web/service"

	"github.com/gin-gonic/gin"
)

// AuthAPIController handles registration and token issuance for the JSON
// API.
type AuthAPIController struct {
	authService *service.AuthService
}

func NewAuthAPIController(g *gin.RouterGroup, authService *service.AuthService) *AuthAPIController {
	a := &AuthAPIController{authService: authService}
	g.POST("/register", a.register)
	g.POST("/login", a.login)
	return a
}

type registerForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthAPIController) register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	user, err := a.authService.Register(form.Username, form.Email, form.Password, form.Role)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":  fmt.Sprintf("user %s registered successfully", user.Username),
		"user": user,
	})
}

func (a *AuthAPIController) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apiError(c, fmt.Errorf("%w: %v", entity.ErrValidation, err))
		return
	}
	token, user, err := a.authService.Login(form.Email, form.Password)
	if err != nil {
		apiError(c, err)
		return
	}
	logger.Infof("%s logged in via API, IP: %s", user.Username, getRemoteIp(c))
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         user,
	})
}
