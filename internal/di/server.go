package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
	graphqlctrl "github.com/savora/savora-cloud-go/internal/controller/graphql"
	httpctrl "github.com/savora/savora-cloud-go/internal/controller/http"
	"github.com/savora/savora-cloud-go/internal/middleware"
	"github.com/savora/savora-cloud-go/internal/observability"
	"github.com/savora/savora-cloud-go/internal/websocket"
)

// HTTPServerModule provides HTTP server dependencies
var HTTPServerModule = fx.Module("http_server",
	fx.Provide(provideGinEngine),
	fx.Provide(provideHTTPServer),
	fx.Invoke(registerHTTPRoutes),
	fx.Invoke(startHTTPServer),
)

func provideGinEngine(cfg *config.AppConfig, metrics *observability.MetricsProvider, logger *zap.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(observability.MetricsMiddleware(metrics))

	return router
}

func provideHTTPServer(cfg *config.ServerConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Controllers holds every HTTP controller for fx to inject
type Controllers struct {
	fx.In

	Auth        *httpctrl.AuthController
	User        *httpctrl.UserController
	Session     *httpctrl.SessionController
	Activity    *httpctrl.ActivityController
	Referral    *httpctrl.ReferralController
	Contact     *httpctrl.ContactController
	Application *httpctrl.ApplicationController
	Menu        *httpctrl.MenuController
	Job         *httpctrl.JobController
	GraphQL     *graphqlctrl.Handler
	Websocket   *websocket.Handler
	Metrics     *observability.MetricsProvider
}

func registerHTTPRoutes(router *gin.Engine, graphqlConfig *graphqlctrl.GraphQLConfig, controllers Controllers) {
	// Health endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	controllers.Metrics.RegisterRoutes(router)

	// API routes
	api := router.Group("/api/v1")

	controllers.Auth.RegisterRoutes(api)
	controllers.User.RegisterRoutes(api)
	controllers.Session.RegisterRoutes(api)
	controllers.Activity.RegisterRoutes(api)
	controllers.Referral.RegisterRoutes(api)
	controllers.Contact.RegisterRoutes(api)
	controllers.Application.RegisterRoutes(api)
	controllers.Menu.RegisterRoutes(api)
	controllers.Job.RegisterRoutes(api)
	controllers.Websocket.RegisterRoutes(api)

	if graphqlConfig.Enabled {
		controllers.GraphQL.RegisterRoutes(api)
	}
}

func startHTTPServer(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting HTTP server", zap.String("address", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
