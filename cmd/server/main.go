package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/config"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/api/handler"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/api/router"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/service"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/database"
	applogger "github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/logger"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connect to the database and run migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("acquire sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Connect Redis (optional: the summary cache degrades to direct
	// reads when unavailable)
	var cache service.SummaryCache
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, status summary will not be cached", zap.Error(err))
	} else {
		cache = rdb
	}

	// 5. Dependency injection: Repository -> Service -> Handler
	repo := repository.NewRepository(db)
	notifier := service.NewInboxNotifier(repo, logger)
	svc := service.NewService(cfg, repo, notifier, cache, logger)
	h := handler.NewHandler(svc)

	// 6. Routing
	engine := router.Setup(cfg, h, logger)

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 8. Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("stopped")
}
