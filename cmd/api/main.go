package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/warehouse-backend/api/routes"
	"github.com/angelmondragon/warehouse-backend/internal/monitoring"
	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/internal/picklists"
	"github.com/angelmondragon/warehouse-backend/internal/reports"
	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/internal/transfers"
	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/config"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
	"github.com/angelmondragon/warehouse-backend/pkg/metrics"
	"github.com/angelmondragon/warehouse-backend/pkg/retry"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "api"

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := airtable.NewClient(cfg.Airtable, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap record store client", err)
		os.Exit(1)
	}

	snapshots := cache.New(cache.Options{TTL: cfg.Cache.TTL})
	policy := retry.FromConfig(cfg.Retry)

	stocksRepo := stocks.NewRepository(store)
	ordersRepo := orders.NewRepository(store)
	transfersRepo := transfers.NewRepository(store)
	picklistsRepo := picklists.NewRepository(store)
	reportsRepo := reports.NewRepository(store)
	monitoringRepo := monitoring.NewRepository(store)

	stocksSvc, err := stocks.NewService(stocksRepo, snapshots)
	if err != nil {
		logg.Error(context.Background(), "failed to create stocks service", err)
		os.Exit(1)
	}
	ordersSvc, err := orders.NewService(ordersRepo, stocksRepo, snapshots, policy)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	transfersSvc, err := transfers.NewService(transfersRepo, stocksRepo, snapshots, policy, cfg.Transfer.AutoApproveLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to create transfers service", err)
		os.Exit(1)
	}
	picklistsSvc, err := picklists.NewService(picklistsRepo, ordersRepo, stocksRepo, snapshots)
	if err != nil {
		logg.Error(context.Background(), "failed to create picklists service", err)
		os.Exit(1)
	}
	reportsSvc, err := reports.NewService(reportsRepo, stocksRepo, snapshots)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}
	monitoringSvc, err := monitoring.NewService(monitoringRepo, snapshots, cfg.Cache.DashboardTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create monitoring service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			metricsHandler,
			ordersSvc,
			stocksSvc,
			transfersSvc,
			picklistsSvc,
			reportsSvc,
			monitoringSvc,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
