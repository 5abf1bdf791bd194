package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/coursedash/backend/docs"
	"github.com/coursedash/backend/internal/app"
	"github.com/coursedash/backend/internal/config"
	"github.com/coursedash/backend/internal/logger"
	"github.com/coursedash/backend/internal/scheduler"
	"github.com/coursedash/backend/internal/services"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// @title Course Dashboard API
// @version 1.0
// @description API for managing quizzes and course videos

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Course Dashboard")

	// Open stores
	stores, err := app.OpenStores(cfg.Storage, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to open stores", zap.Error(err))
	}

	// Build router
	r := app.NewRouter(cfg, stores, logger.Logger)

	// Start background consistency check
	var sched *scheduler.Scheduler
	if cfg.ConsistencySchedule != "" {
		videoService := services.NewVideoService(stores.Metadata, stores.Videos, logger.Logger)
		sched, err = scheduler.New(cfg.ConsistencySchedule, videoService, logger.Logger)
		if err != nil {
			logger.Logger.Fatal("Failed to create scheduler", zap.Error(err))
		}
		sched.Start()
	}

	// Start server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Minute, // Large video uploads
		// No write timeout: video streams last as long as playback does
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = srv.Shutdown(ctx)
	if sched != nil {
		err = multierr.Append(err, sched.Stop(ctx))
	}
	err = multierr.Append(err, stores.Close())
	if err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
