package main

// @title Location Quest API
// @version 1.0.0
// @description Backend for a location-based walking game.
// @description
// @description Users record walking activities as GPS tracks. Ending an activity collects every
// @description location the route passed within 50 m; NFC tags collect a location directly.
// @description Collecting all locations a badge requires unlocks the badge.

// @contact.name API Support

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

	_ "github.com/location-quest/docs"
	"github.com/location-quest/internal/config"
	httpDelivery "github.com/location-quest/internal/delivery/http"
	"github.com/location-quest/internal/delivery/http/handler"
	"github.com/location-quest/internal/domain/repository"
	"github.com/location-quest/internal/infrastructure/googlemaps"
	"github.com/location-quest/internal/metrics"
	"github.com/location-quest/internal/pkg/logger"
	"github.com/location-quest/internal/repository/cache"
	"github.com/location-quest/internal/repository/postgres"
	redisRepo "github.com/location-quest/internal/repository/redis"
	"github.com/location-quest/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Location Quest API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("geocoding_configured", cfg.Geocoding.APIKey != ""),
	)

	metrics.Register()

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis. The API runs without it: no area cache and no
	// background area queue.
	var (
		cacheRepo   repository.CacheRepository
		streamRepo  repository.StreamRepository
		redisHealth usecase.HealthChecker
	)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, continuing without area cache and queue", zap.Error(err))
	} else {
		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		redisHealth = redisClient
	}

	// 5. Repositories
	userRepo := postgres.NewUserRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	collectionRepo := postgres.NewCollectionRepository(db)
	badgeRepo := postgres.NewBadgeRepository(db)
	userBadgeRepo := postgres.NewUserBadgeRepository(db)
	geocoder := googlemaps.NewGeocodingClient(&cfg.Geocoding, log)

	log.Info("Repositories initialized")

	// 6. Use cases
	resolver := usecase.NewAreaResolver(geocoder, cacheRepo, cfg.Geocoding, cfg.Cache.AreaCacheTTL, log)
	ensurer := usecase.NewAreaEnsurer(locationRepo, resolver, streamRepo, cacheRepo, log)
	evaluator := usecase.NewBadgeEvaluator(badgeRepo, userBadgeRepo, collectionRepo, log)

	activityUC := usecase.NewActivityUseCase(userRepo, activityRepo, locationRepo, ensurer, evaluator, log)
	badgeUC := usecase.NewBadgeUseCase(badgeRepo, userBadgeRepo, locationRepo, collectionRepo, userRepo, log)
	locationUC := usecase.NewLocationUseCase(locationRepo, collectionRepo, userRepo, resolver, ensurer, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	nfcUC := usecase.NewNFCUseCase(log)
	healthUC := usecase.NewHealthUseCase(db, redisHealth, log)

	log.Info("Use cases initialized")

	// 7. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewActivityHandler(activityUC, log),
		handler.NewBadgeHandler(badgeUC, log),
		handler.NewLocationHandler(locationUC, log),
		handler.NewUserHandler(userUC, log),
		handler.NewNFCHandler(nfcUC, log),
		handler.NewHealthHandler(healthUC),
		handler.NewDocsHandler(),
	)

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

	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
