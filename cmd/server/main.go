package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/ordercrm/gateway"
	"github.com/example/ordercrm/pkg/cache"
	"github.com/example/ordercrm/pkg/config"
	"github.com/example/ordercrm/pkg/orders"
	"github.com/example/ordercrm/pkg/repository"
)

func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting order service",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// Order store
	store, err := repository.NewMongoOrderStore(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store.Close(ctx)
	}()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to create indexes", zap.Error(err))
	}

	// Tenant accounts
	accounts, err := repository.NewAccountRepository(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	// Result cache
	var resultCache cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		redisCache := cache.NewRedisCache(&cfg.Redis, cfg.Server.Name, logger)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("Redis connection failed", zap.Error(err))
		} else {
			logger.Info("Redis connected successfully")
		}
		defer redisCache.Close()
		resultCache = redisCache
	default:
		resultCache = cache.NewMemoryCache(cfg.Cache.MaxEntries)
	}

	service := orders.NewService(store, resultCache, logger, orders.Options{
		ListTTL:      cfg.Cache.ListTTL,
		StatsTTL:     cfg.Cache.StatsTTL,
		Singleflight: cfg.Cache.Singleflight,
	})

	// Gateway
	gw := gateway.NewGateway(cfg, logger, service, accounts)
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	logger.Info("Service started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-gwErr:
		logger.Fatal("Gateway error", zap.Error(err))
	}

	logger.Info("Service stopped")
}
