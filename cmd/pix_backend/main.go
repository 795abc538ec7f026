package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/velopix/pix_backend/internal/core/services"
	"github.com/velopix/pix_backend/internal/handlers"
	"github.com/velopix/pix_backend/internal/middleware"
	"github.com/velopix/pix_backend/internal/repositories/snapshot"
	"github.com/velopix/pix_backend/pkg/config"
)

// @title Pix Backend API
// @version 1.0
// @description Instant payment backend: accounts, payment keys, transfers and payment requests.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the snapshot store, the single source of truth for all state
	if dir := filepath.Dir(cfg.SnapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("Failed to create snapshot directory", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	store := snapshot.New(cfg.SnapshotPath, cfg.SeedDemoData, logger)
	if err := store.Load(context.Background()); err != nil {
		logger.Error("Failed to load snapshot", slog.String("error", err.Error()), slog.String("path", cfg.SnapshotPath))
		os.Exit(1)
	}
	logger.Info("Snapshot store loaded", slog.String("path", cfg.SnapshotPath))

	repos := snapshot.NewRepositories(store)
	serviceContainer := services.NewServiceContainer(repos, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
