package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mystira/mystira-server/internal/config"
	"github.com/mystira/mystira-server/internal/content"
	"github.com/mystira/mystira-server/internal/handlers/api"
	"github.com/mystira/mystira-server/internal/repositories/gamesessions"
	"github.com/mystira/mystira-server/internal/repositories/scenarios"
	"github.com/mystira/mystira-server/internal/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found")
	} else {
		logger.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	providerConfig := &services.ProviderConfig{}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if a URL is provided
	if cfg.Redis.URL != "" {
		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			logger.Warn("failed to parse Redis URL, falling back to in-memory repositories", zap.Error(parseErr))
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(ctx).Err()
			cancel()

			if pingErr != nil {
				logger.Warn("failed to connect to Redis, falling back to in-memory repositories", zap.Error(pingErr))
				redisClient = nil
			} else {
				logger.Info("using Redis for persistence", zap.String("url", cfg.Redis.URL))
				providerConfig.ScenarioRepository = scenarios.NewRedisRepository(redisClient)
				providerConfig.SessionRepository = gamesessions.NewRedisRepository(redisClient)
			}
		}
	} else {
		logger.Info("no REDIS_URL configured, using in-memory repositories")
	}

	provider := services.NewProvider(providerConfig)

	// Seed scenario packs from disk
	if cfg.Content.Dir != "" {
		loader := content.NewLoader(&content.LoaderConfig{
			ScenarioService: provider.ScenarioService,
			Logger:          logger,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		loaded, loadErr := loader.LoadDir(ctx, cfg.Content.Dir)
		cancel()

		if loadErr != nil {
			logger.Warn("scenario pack loading incomplete", zap.Error(loadErr))
		}
		logger.Info("scenario packs loaded", zap.Int("count", loaded), zap.String("dir", cfg.Content.Dir))
	}

	handler := api.NewHandler(&api.HandlerConfig{
		ScenarioService: provider.ScenarioService,
		SessionService:  provider.SessionService,
		Logger:          logger,
	})

	router := mux.NewRouter()
	handler.Register(router)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close Redis client", zap.Error(err))
		}
	}
}
