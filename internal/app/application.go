package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"editor-media-backend/internal/background"
	"editor-media-backend/internal/config"
	"editor-media-backend/internal/handlers"
	"editor-media-backend/internal/markup"
	"editor-media-backend/internal/middleware"
	"editor-media-backend/internal/models"
	"editor-media-backend/internal/plugin/registry"
	pluginruntime "editor-media-backend/internal/plugin/runtime"
	"editor-media-backend/internal/repository"
	"editor-media-backend/internal/service"
	"editor-media-backend/pkg/cache"
	"editor-media-backend/pkg/geometry"
	"editor-media-backend/pkg/logger"
	dialoghandlers "editor-media-backend/plugins/imagedetails/handlers"
	dialogservice "editor-media-backend/plugins/imagedetails/service"
)

type Application struct {
	cfg *config.Config

	db        *gorm.DB
	cache     *cache.Cache
	scheduler *background.Scheduler
	markup    *markup.Registry

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	dialogService *dialogservice.DialogService
	dialogHandler *dialoghandlers.DialogHandler

	pluginRuntime *pluginruntime.Runtime
	rateLimiter   *middleware.RateLimitManager

	router *gin.Engine
	server *http.Server

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

type repositoryContainer struct {
	Media repository.MediaRepository
}

type serviceContainer struct {
	Media   *service.MediaService
	Preview *service.PreviewService
}

type handlerContainer struct {
	Media *handlers.MediaHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}

	app.initScheduler()
	app.initMarkup()
	app.initRepositories()
	app.initServices()
	app.initHandlers()

	if err := app.initPlugins(); err != nil {
		return nil, err
	}

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	a.scheduler.Start(a.backgroundCtx)
	a.services.Media.RequeuePendingProbes(50)

	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.pluginRuntime != nil {
		if err := a.pluginRuntime.Deactivate("imagedetails"); err != nil {
			logger.Error(err, "Failed to deactivate plugin", map[string]interface{}{
				"plugin": "imagedetails",
			})
		}
	}

	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(ctx); err != nil {
			logger.Error(err, "Failed to drain background jobs", nil)
		}
	}

	if a.rateLimiter != nil {
		a.rateLimiter.Shutdown()
	}

	a.backgroundCancel()

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(&models.MediaImage{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

func (a *Application) initCache() error {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		logger.Error(err, "Cache unavailable, continuing without it", map[string]interface{}{
			"redis": a.cfg.RedisURL,
		})
		a.cache = cache.Disabled()
		return nil
	}

	a.cache = c
	return nil
}

func (a *Application) initScheduler() {
	a.scheduler = background.NewScheduler(background.SchedulerConfig{
		WorkerCount: a.cfg.ProbeWorkerCount,
	})
}

func (a *Application) initMarkup() {
	a.markup = markup.NewRegistry()
	markup.RegisterImage(a.markup)
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Media: repository.NewMediaRepository(a.db),
	}
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Media: service.NewMediaService(
			a.repositories.Media,
			a.scheduler,
			a.cache,
			a.cfg.UploadDir,
			a.cfg.SiteURL,
			a.cfg.MaxUploadSize,
			a.cfg.ProbeMaxRetries,
		),
		Preview: service.NewPreviewService(a.cfg.PreviewDir, geometry.Box{
			Width:  float64(a.cfg.PreviewBoxWidth),
			Height: float64(a.cfg.PreviewBoxHeight),
		}),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Media: handlers.NewMediaHandler(a.services.Media, a.services.Preview),
	}

	a.dialogHandler = dialoghandlers.NewDialogHandler(nil)
}

func (a *Application) initPlugins() error {
	a.pluginRuntime = pluginruntime.New()

	for slug, factory := range registry.All() {
		feature, err := factory(a)
		if err != nil {
			return fmt.Errorf("failed to construct plugin %s: %w", slug, err)
		}
		a.pluginRuntime.Register(slug, feature)

		if err := a.pluginRuntime.Activate(slug); err != nil {
			return fmt.Errorf("failed to activate plugin %s: %w", slug, err)
		}

		logger.Info("Plugin activated", map[string]interface{}{"plugin": slug})
	}

	return nil
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimiter = middleware.NewRateLimitManager(a.backgroundCtx)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.SecurityHeadersMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.Static("/uploads", a.cfg.UploadDir)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.GET("/media", a.handlers.Media.List)
			public.GET("/media/:id", a.handlers.Media.Get)
			public.GET("/media/:id/preview", a.handlers.Media.Preview)

			editor := public.Group("/editor/image")
			{
				editor.POST("/preview-fit", a.dialogHandler.PreviewFit)
				editor.POST("/linked-dimension", a.dialogHandler.LinkedDimension)
				editor.POST("/state", a.dialogHandler.State)
				editor.POST("/render", a.dialogHandler.Render)
				editor.GET("/strings", a.dialogHandler.Strings)
			}
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		{
			protected.POST("/media", a.handlers.Media.Upload)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.DELETE("/media/:id", a.handlers.Media.Delete)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}
