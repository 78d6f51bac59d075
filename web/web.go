// Package web provides the miniblog web server: the JSON API, the
// server-rendered pages, session handling and the background job scheduling.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"miniblog/config"
	"miniblog/database"
	"miniblog/logger"
	"miniblog/util/common"
	"miniblog/web/controller"
	"miniblog/web/job"
	"miniblog/web/middleware"
	"miniblog/web/network"
	"miniblog/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the main web server with its controllers, services and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	blog  *controller.BlogController

	settingService *service.SettingService
	userService    *service.UserService
	authService    *service.AuthService
	postService    *service.PostService
	catService     *service.CategoryService
	commentService *service.CommentService
	statsService   *service.StatsService
	auditService   *service.AuditLogService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	db := database.GetDB()

	settingService := service.NewSettingService(db)
	return &Server{
		ctx:    ctx,
		cancel: cancel,

		settingService: settingService,
		userService:    service.NewUserService(db),
		authService:    service.NewAuthService(db, settingService),
		postService:    service.NewPostService(db),
		catService:     service.NewCategoryService(db),
		commentService: service.NewCommentService(db),
		statsService:   service.NewStatsService(db),
		auditService:   service.NewAuditLogService(db),
	}
}

// initRouter initializes Gin, registers middleware, templates, controllers
// and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions("miniblog", store))

	// gzip, excluding the API path to avoid double-compressing JSON
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "api/"}),
	))

	engine.Use(middleware.Audit(s.auditService))

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
	engine.SetFuncMap(funcMap)

	tpl, err := template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	// JSON API
	api := engine.Group(basePath + "api")
	{
		controller.NewAuthAPIController(api, s.authService)
		controller.NewUserAPIController(api, s.userService, s.authService)
		controller.NewCategoryAPIController(api, s.catService, s.authService)
		controller.NewPostAPIController(api, s.postService, s.authService)
		controller.NewCommentAPIController(api, s.commentService, s.authService)
		controller.NewStatsAPIController(api, s.statsService, s.authService)
	}

	// Web UI
	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g, s.settingService, s.userService, s.authService, s.postService)
	s.blog = controller.NewBlogController(g, s.settingService, s.userService, s.postService, s.catService, s.commentService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewStatsReportJob(s.statsService))
	s.cron.AddJob("@daily", job.NewAuditCleanupJob(s.auditService, s.settingService))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc))
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	certFile, err := s.settingService.GetCertFile()
	if err != nil {
		return err
	}
	keyFile, err := s.settingService.GetKeyFile()
	if err != nil {
		return err
	}
	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewAutoHttpsListener(listener)
			listener = tls.NewListener(listener, cfg)
			logger.Info("web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("error loading certificates:", err)
			logger.Info("web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
