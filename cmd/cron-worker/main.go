package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/warehouse-backend/internal/cron"
	"github.com/angelmondragon/warehouse-backend/internal/monitoring"
	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/config"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
	"github.com/angelmondragon/warehouse-backend/pkg/metrics"
	"github.com/angelmondragon/warehouse-backend/pkg/redis"
)

const lockKeyFormat = "cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := airtable.NewClient(cfg.Airtable, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap record store client", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	snapshots := cache.New(cache.Options{TTL: cfg.Cache.TTL})
	ordersRepo := orders.NewRepository(store)
	monitoringRepo := monitoring.NewRepository(store)

	timeoutJob, err := cron.NewReservationTimeoutJob(cron.ReservationTimeoutJobParams{
		Logger:      logg,
		Orders:      ordersRepo,
		Exceptions:  monitoringRepo,
		Snapshots:   snapshots,
		TimeoutDays: cfg.Cron.ReservationTimeoutDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reservation timeout job", err)
		os.Exit(1)
	}
	reminderJob, err := cron.NewReadyReminderJob(cron.ReadyReminderJobParams{
		Logger:        logg,
		Orders:        ordersRepo,
		Notifications: monitoringRepo,
		Snapshots:     snapshots,
		ReminderDays:  cfg.Cron.ReadyReminderDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ready reminder job", err)
		os.Exit(1)
	}
	cleanupJob, err := cron.NewFailedOrderCleanupJob(cron.FailedOrderCleanupJobParams{
		Logger:        logg,
		Orders:        ordersRepo,
		Snapshots:     snapshots,
		RetentionDays: cfg.Cron.FailedOrderRetentionDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create failed order cleanup job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(timeoutJob, reminderJob, cleanupJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
