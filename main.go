package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/edibulb/glucocoach/internal/cache"
	"github.com/edibulb/glucocoach/internal/config"
	"github.com/edibulb/glucocoach/internal/logger"
	"github.com/edibulb/glucocoach/internal/server"
	"github.com/edibulb/glucocoach/internal/services"
	"github.com/edibulb/glucocoach/internal/storage"
	"github.com/edibulb/glucocoach/internal/storage/postgres"
	"github.com/edibulb/glucocoach/internal/storage/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("starting glucocoach")

	store, err := openStore(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	logger.Info("store ready", "driver", cfg.DB.Driver)

	summaryCache := openCache(cfg.Redis)

	aiService, err := services.NewAIService(cfg.AI)
	if err != nil {
		logger.Fatalf("Failed to create AI service: %v", err)
	}

	logService := services.NewLogService(store)
	summaryService := services.NewSummaryService(store, aiService, summaryCache)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.HTTP.Port, logService, summaryService)
	if err := srv.Start(ctx); err != nil {
		logger.Fatalf("Server stopped with error: %v", err)
	}
	logger.Info("shutdown complete")
}

func openStore(cfg config.DBConfig) (storage.Store, error) {
	if cfg.Driver == config.DriverPostgres {
		return postgres.New(cfg)
	}
	return sqlite.NewFileStore(cfg.Path)
}

func openCache(cfg config.RedisConfig) cache.SummaryCache {
	if cfg.Enabled {
		c, err := cache.NewRedis(cfg.Host, cfg.Port, cfg.TTL)
		if err != nil {
			logger.Warn("redis unavailable, using in-process cache", "error", err)
			return cache.NewMemory(cfg.TTL)
		}
		return c
	}
	return cache.NewMemory(cfg.TTL)
}
