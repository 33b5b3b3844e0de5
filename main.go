package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mortgage-planner/config"
	httpLayer "mortgage-planner/http"
	"mortgage-planner/logging"
	"mortgage-planner/repository"
	"mortgage-planner/service"
)

func main() {
	// .env es opcional
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	appLog := logging.WithComponent(logger, logging.ComponentApp)

	if err := cfg.Validate(); err != nil {
		appLog.Error("invalid configuration", logging.FieldError, err)
		os.Exit(1)
	}

	calcRepo, closeRepo, err := newCalculationRepository(cfg)
	if err != nil {
		appLog.Error("failed to initialize calculation repository",
			logging.FieldBackend, cfg.DataBackend, logging.FieldError, err)
		os.Exit(1)
	}
	defer closeRepo()
	logging.WithComponent(logger, logging.ComponentStorage).
		Info("calculation repository ready", logging.FieldBackend, cfg.DataBackend)

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	mortgageService := service.NewMortgageService(calcRepo, cache, logger)
	mortgageHandler := httpLayer.NewMortgageHandler(mortgageService, logger)

	comparisonService := service.NewTermComparisonService(logger)
	comparisonHandler := httpLayer.NewTermComparisonHandler(comparisonService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        httpLayer.NewRouter(mortgageHandler, comparisonHandler, rateLimiter, logger),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info("starting mortgage planner",
			logging.FieldOperation, logging.OpStartup,
			"port", cfg.Port,
			logging.FieldBackend, cfg.DataBackend,
			"cache_backend", cfg.CacheBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		appLog.Error("error starting server", logging.FieldError, err)
		return
	case sig := <-quit:
		appLog.Info("shutting down server", logging.FieldOperation, logging.OpShutdown, "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("error during server shutdown", logging.FieldError, err)
	}

	appLog.Info("server exited")
}

func newCalculationRepository(cfg *config.Config) (repository.CalculationRepository, func(), error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := repository.NewSQLiteCalculationRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return repository.NewCalculationRepositoryMemory(), func() {}, nil
	}
}

// newCache falls back to the in-process cache when Redis is unreachable.
func newCache(cfg *config.Config, logger *slog.Logger) (repository.CacheRepository, func()) {
	memory := func() (repository.CacheRepository, func()) {
		return repository.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL), func() {}
	}

	if cfg.CacheBackend != "redis" {
		return memory()
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logging.WithComponent(logger, logging.ComponentCache).
			Warn("redis unavailable, using in-memory cache", logging.FieldError, err)
		_ = redisCache.Close()
		return memory()
	}
	return redisCache, func() { _ = redisCache.Close() }
}
