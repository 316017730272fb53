package main

// @title Subway Admin API
// @version 1.0.0
// @description Administration of subway lines, stations and the line paths that connect them.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/subway-admin/docs"
	"github.com/subway-admin/internal/config"
	httpDelivery "github.com/subway-admin/internal/delivery/http"
	"github.com/subway-admin/internal/delivery/http/handler"
	"github.com/subway-admin/internal/domain/repository"
	"github.com/subway-admin/internal/pkg/logger"
	"github.com/subway-admin/internal/repository/cache"
	"github.com/subway-admin/internal/repository/postgres"
	"github.com/subway-admin/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Subway Admin")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL (applies migrations when DB_AUTO_MIGRATE is set)
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	checks := map[string]httpDelivery.HealthChecker{"postgres": db}

	// 4. Connect to Redis (optional)
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
		checks["redis"] = redisClient
	} else {
		log.Info("Redis disabled, whole-network cache is off")
	}

	// 5. Repositories
	lineRepo := postgres.NewLineRepository(db)
	stationRepo := postgres.NewStationRepository(db)

	// 6. Use cases
	lineUC := usecase.NewLineUseCase(lineRepo, stationRepo, cacheRepo, log, cfg.Cache.NetworkCacheTTL)
	stationUC := usecase.NewStationUseCase(stationRepo, cacheRepo, log, cfg.Cache.NetworkCacheTTL)

	// 7. HTTP
	lineHandler := handler.NewLineHandler(lineUC, log)
	stationHandler := handler.NewStationHandler(lineUC, stationUC, log)

	server := httpDelivery.NewServer(cfg, log, lineHandler, stationHandler, checks)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
