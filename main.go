package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"book-review/clients"
	"book-review/constants"
	"book-review/controllers"
	"book-review/infra"
	"book-review/logger"
	"book-review/middlewares"
	"book-review/repositories"
	"book-review/services"
	"book-review/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, cfg *infra.Config, catalog clients.ICatalogClient, hasher services.IPasswordHasher) *gin.Engine {
	authRepository := repositories.NewAuthRepository(db)
	authService := services.NewAuthService(authRepository, hasher)
	authController := controllers.NewAuthController(authService)

	reviewRepository := repositories.NewReviewRepository(db)
	reviewService := services.NewReviewService(reviewRepository)
	reviewController := controllers.NewReviewController(reviewService)

	bookService := services.NewBookService(catalog, cfg.Catalog.SearchLimit)
	bookController := controllers.NewBookController(bookService)

	renderer := views.NewRenderer(cfg.TemplatesDir)
	pageController := controllers.NewPageController(renderer, authService, reviewService, bookService)

	r := gin.New()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.AccessLog())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.String(http.StatusInternalServerError, constants.ErrUnexpected)
	}))
	r.Use(middlewares.Metrics())
	r.Use(cors.Default())
	// 許可リスト以外の全パスで毎回Basic認証
	r.Use(middlewares.AuthMiddleware(authService))

	r.Static("/public", cfg.StaticDir)
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.Get().Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", pageController.Index)
	r.GET("/index.html", pageController.Index)
	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)
	r.POST("/login-auth", authController.Login)
	r.GET("/protected", authController.Protected)

	adminOnly := middlewares.RoleBasedAccessControl(constants.RoleAdmin)
	r.GET("/users", adminOnly, pageController.Users)
	r.GET("/metrics", adminOnly, gin.WrapH(promhttp.Handler()))

	r.GET("/dashboard", pageController.Dashboard)
	r.GET("/review", pageController.ReviewForm)
	r.POST("/submit-review", reviewController.Submit)

	apiRouter := r.Group("/api")
	apiRouter.GET("/books/search", bookController.Search)
	apiRouter.GET("/reviews", reviewController.FindByBook)
	apiRouter.GET("/reviews/all", reviewController.FindAll)
	apiRouter.POST("/reviews", reviewController.Create)

	return r
}

func newCatalogClient(ctx context.Context, cfg *infra.Config) (clients.ICatalogClient, func()) {
	catalog := clients.NewCatalogClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)

	rdb, err := infra.SetupRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("catalog cache disabled")
		return catalog, func() {}
	}
	if rdb == nil {
		return catalog, func() {}
	}

	logger.Get().Info().Str("addr", cfg.Redis.Addr).Msg("catalog cache enabled")
	cache := clients.NewRedisCatalogCache(rdb, cfg.Catalog.CacheTTL)
	return clients.NewCachedCatalogClient(catalog, cache), func() { _ = rdb.Close() }
}

func main() {
	infra.Initialize()
	ctx := context.Background()

	cfg, err := infra.LoadConfig(ctx)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProd()})
	log := logger.Get()
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	hasher, err := services.NewPasswordHasher(cfg.PasswordMode)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid password scheme")
	}

	db, err := infra.SetupDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if cfg.AutoMigrate {
		if err := infra.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
		seeder := services.NewAuthService(repositories.NewAuthRepository(db), hasher)
		if err := seeder.Seed(); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed users")
		}
	}

	catalog, closeCatalog := newCatalogClient(ctx, cfg)
	defer closeCatalog()

	r := setupRouter(db, cfg, catalog, hasher)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		log.Info().Msg("Test users: admin ldnel / secret, guest frank / secret2")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := infra.CloseDB(db); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}
	log.Info().Msg("Server exited")
}
