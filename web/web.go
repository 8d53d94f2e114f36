// Package web provides the HTTP server for the portal: routing, middleware,
// session store and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/yukkurinet/hyakki-portal/config"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/cache"
	"github.com/yukkurinet/hyakki-portal/web/controller"
	"github.com/yukkurinet/hyakki-portal/web/job"
	"github.com/yukkurinet/hyakki-portal/web/middleware"
	"github.com/yukkurinet/hyakki-portal/web/oauth"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the portal web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth      *controller.AuthController
	user      *controller.UserController
	character *controller.CharacterController
	post      *controller.PostController
	ranking   *controller.RankingController
	status    *controller.ServerController
	world     *controller.WorldController

	issuer   *token.Issuer
	provider oauth.Provider

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		issuer:   token.NewDefaultIssuer(),
		provider: oauth.NewDiscordProvider(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.GetFrontendURL()}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cache.NewRedisStore(cache.GetClient(), []byte(config.GetSessionSecret()))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions(config.GetName(), store))

	// API routes
	api := engine.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
		s.auth = controller.NewAuthController(authGroup, s.issuer, s.provider)

		s.user = controller.NewUserController(api.Group("/users"), s.issuer)
		s.character = controller.NewCharacterController(api.Group("/characters"), s.issuer)
		s.post = controller.NewPostController(api.Group("/posts"), s.issuer)
		s.status = controller.NewServerController(api.Group("/server-status"), s.issuer)
		s.world = controller.NewWorldController(api.Group("/world-map"), s.issuer)
		s.ranking = controller.NewRankingController(api.Group("/rankings"), s.issuer)
	}

	// Uploaded avatars
	if err := os.MkdirAll(config.GetUploadsFolder(), 0o750); err != nil {
		return nil, err
	}
	engine.Static("/uploads", config.GetUploadsFolder())

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to 百鬼異世界 API",
			"version": config.GetVersion(),
			"endpoints": []string{
				"/api/server-status",
				"/api/world-map",
				"/api/rankings",
				"/api/auth",
				"/api/users",
				"/api/characters",
				"/api/posts",
			},
		})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@every 1m", job.NewServerStatusJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if err = cache.InitRedis(config.GetRedisAddr()); err != nil {
		return err
	}
	if cache.IsEmbedded() {
		logger.Warning("No REDIS_ADDR configured; sessions and rate limits are in-process only")
	}

	s.cron = cron.New()
	s.cron.Start()
	s.startTask()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server error:", err)
		}
	}()

	logger.Infof("%s %s serving on %s", config.GetName(), config.GetVersion(), listenAddr)
	return nil
}

// Stop shuts the server down and releases its resources.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	}
	if closeErr := cache.Close(); err == nil {
		err = closeErr
	}
	return err
}
