// Package main is the entry point for the settlement service.
// It wires configuration, storage, cache, events and metrics, mounts the
// routes and serves HTTP until SIGINT or SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payout/internal/config"
	"payout/internal/events"
	"payout/internal/handlers"
	"payout/internal/logging"
	"payout/internal/metrics"
	"payout/internal/models"
	"payout/internal/repositories/cache"
	"payout/internal/routes"
	"payout/internal/services/fee"
	"payout/internal/services/payment"
	"payout/internal/services/settlement"
	"payout/internal/services/store"
	"payout/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()
	appLog := logging.New(cfg.LogLevel)
	slog.SetDefault(appLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLog); err != nil {
		appLog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	repos, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()
	log.Info("storage ready", "driver", repos.Driver)

	if db := repos.DB(); db != nil {
		go monitorDB(ctx, repos, log)
	}

	checks := map[string]handlers.HealthCheck{"database": repos.Ping}

	// Redis backs the store cache and idempotency keys. Both are optional.
	var cacheService *cache.CacheService
	if cfg.Redis.Enabled {
		client, err := cache.Connect(ctx, &cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("redis unavailable, running without cache", "error", err)
		} else {
			cacheService = cache.NewCacheService(client, cfg.Redis.StoreTTL, cfg.Redis.IdempotencyTTL)
			defer cacheService.Close()
			checks["redis"] = cacheService.Ping
			log.Info("redis connected", "host", cfg.Redis.Host)
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("publishing payment events", "brokers", brokers, "topic", cfg.Kafka.Topic)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPrometheusCollector(registry)

	a, b, d, err := cfg.Fees.Values()
	if err != nil {
		return err
	}
	schedule, err := fee.NewSchedule(models.FeeSchedule{A: a, B: b, D: d}, repos.FeeSchedules, log)
	if err != nil {
		return err
	}
	if err := schedule.Load(ctx); err != nil {
		return err
	}

	var storeCache store.Cache
	var keys handlers.IdempotencyStore
	if cacheService != nil {
		storeCache = cacheService
		keys = cacheService
	}

	stores := store.NewService(repos.Stores, storeCache, log)
	payments := payment.NewService(repos.Payments, stores, schedule, publisher, collector, log)
	payouts := settlement.NewService(repos.Payments, stores, publisher, collector, log)

	app := fiber.New(fiber.Config{
		AppName:               "payout " + version,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + handlers.IdempotencyKeyHeader,
		AllowMethods: "GET,POST,HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Fees:       handlers.NewFeeHandler(schedule, log),
		Stores:     handlers.NewStoreHandler(stores, log),
		Payments:   handlers.NewPaymentHandler(payments, keys, log),
		Settlement: handlers.NewSettlementHandler(payouts, log),
		Health:     handlers.NewHealthHandler(version, checks),
		Gatherer:   registry,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", cfg.Port, "env", cfg.Env)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

// monitorDB logs connection pool stats once a minute.
func monitorDB(ctx context.Context, s *storage.Storage, log *slog.Logger) {
	sqlDB, err := s.DB().DB()
	if err != nil {
		log.Warn("failed to get database instance", "error", err)
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := sqlDB.Stats()
			log.Debug("db stats",
				"open", stats.OpenConnections,
				"idle", stats.Idle,
				"in_use", stats.InUse,
				"wait_count", stats.WaitCount,
				"wait_duration", stats.WaitDuration.String(),
			)
		}
	}
}
