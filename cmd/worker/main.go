package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/location-quest/internal/config"
	"github.com/location-quest/internal/infrastructure/googlemaps"
	"github.com/location-quest/internal/metrics"
	"github.com/location-quest/internal/pkg/logger"
	"github.com/location-quest/internal/repository/cache"
	"github.com/location-quest/internal/repository/postgres"
	redisRepo "github.com/location-quest/internal/repository/redis"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/worker"
	"github.com/location-quest/internal/worker/area"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting area worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("sweep_schedule", cfg.Worker.SweepSchedule),
		zap.Int("sweep_limit", cfg.Worker.SweepLimit))

	metrics.Register()

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	locationRepo := postgres.NewLocationRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocoder := googlemaps.NewGeocodingClient(&cfg.Geocoding, log)

	resolver := usecase.NewAreaResolver(geocoder, cacheRepo, cfg.Geocoding, cfg.Cache.AreaCacheTTL, log)

	workerManager := worker.NewWorkerManager(0, log)
	workerManager.Register(area.NewAreaWorker(
		streamRepo,
		locationRepo,
		resolver,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	))

	// Without a key every event would be retried and dropped.
	if geocoder.Configured() {
		workerManager.Register(area.NewSweeper(
			streamRepo,
			locationRepo,
			cfg.Worker.SweepSchedule,
			cfg.Worker.SweepLimit,
			log,
		))
	} else {
		log.Warn("Geocoding API key not configured, area sweeper disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
