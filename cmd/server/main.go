package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/princesss/catalog-backend/config"
	"github.com/princesss/catalog-backend/internal/app/controller"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/app/service"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/internal/db"
	"github.com/princesss/catalog-backend/internal/middleware"
	"github.com/princesss/catalog-backend/internal/router"
	"github.com/princesss/catalog-backend/internal/scheduler"
	"github.com/princesss/catalog-backend/internal/storage"
	"github.com/princesss/catalog-backend/pkg/logger"
	"github.com/princesss/catalog-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Catalog Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize cache. Redis is preferred; an in-process store keeps
	// the API up when Redis is unreachable.
	var cacheStore cache.Store
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache", map[string]interface{}{
			"error": err.Error(),
		})
		cacheStore = cache.NewMemoryStore()
	} else {
		defer redis.Close()
		cacheStore = cache.NewRedisStore(redis.GetClient())
	}

	// Initialize object storage
	objectStore := storage.NewS3Storage(&cfg.S3)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	imageRepo := repository.NewImageRepository(db.GetDB())
	colorRepo := repository.NewColorRepository(db.GetDB())
	commentRepo := repository.NewCommentRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(&cfg.Auth)
	catalogService := service.NewCatalogService(productRepo, variantRepo, cacheStore, cfg.Cache.TTL)
	productService := service.NewProductService(productRepo, objectStore, cacheStore, db.GetDB())
	variantService := service.NewVariantService(variantRepo, imageRepo, productRepo, objectStore, cacheStore, db.GetDB())
	colorService := service.NewColorService(colorRepo, cacheStore)
	commentService := service.NewCommentService(commentRepo, productRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService)
	productController := controller.NewProductController(productService)
	variantController := controller.NewVariantController(variantService)
	colorController := controller.NewColorController(colorService)
	commentController := controller.NewCommentController(commentService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		productController,
		variantController,
		colorController,
		commentController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the cache warmer
	cacheScheduler := scheduler.NewCacheScheduler(catalogService, cfg.Cache.WarmSchedule)
	if err := cacheScheduler.Start(); err != nil {
		logger.Warn("Cache scheduler failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cacheScheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": server.Addr,
			"pid":     os.Getpid(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced server shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
