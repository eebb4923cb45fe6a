package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/warehouse-backend/api/controllers"
	"github.com/angelmondragon/warehouse-backend/api/middleware"
	"github.com/angelmondragon/warehouse-backend/internal/monitoring"
	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/internal/picklists"
	"github.com/angelmondragon/warehouse-backend/internal/reports"
	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/internal/transfers"
	"github.com/angelmondragon/warehouse-backend/pkg/config"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
	"github.com/angelmondragon/warehouse-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	ordersSvc orders.Service,
	stocksSvc stocks.Service,
	transfersSvc transfers.Service,
	picklistsSvc picklists.Service,
	reportsSvc reports.Service,
	monitoringSvc monitoring.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(ordersSvc, logg))
			r.Get("/", controllers.ListOrders(ordersSvc, logg))
			r.Get("/{orderId}", controllers.GetOrder(ordersSvc, logg))
			r.Patch("/{orderId}/status", controllers.UpdateOrderStatus(ordersSvc, logg))
			r.Post("/{orderId}/reserve", controllers.ReserveOrder(ordersSvc, logg))
		})

		r.Route("/stocks", func(r chi.Router) {
			r.Get("/", controllers.ListStocks(stocksSvc, logg))
			r.Post("/goods-receipt", controllers.GoodsReceipt(stocksSvc, logg))
			r.Get("/goods-receipts", controllers.ListGoodsReceipts(stocksSvc, logg))
			r.Get("/{stockId}", controllers.GetStock(stocksSvc, logg))
		})

		r.Route("/stock-transfers", func(r chi.Router) {
			r.Post("/", controllers.CreateTransfer(transfersSvc, logg))
			r.Get("/", controllers.ListTransfers(transfersSvc, logg))
			r.Post("/{transferId}/approve", controllers.ApproveTransfer(transfersSvc, logg))
		})

		r.Route("/picklists", func(r chi.Router) {
			r.Get("/", controllers.ListPicklists(picklistsSvc, logg))
			r.Patch("/{picklistId}/status", controllers.UpdatePicklistStatus(picklistsSvc, logg))
			r.Get("/{picklistId}/route", controllers.PicklistRoute(picklistsSvc, logg))
			r.Get("/{picklistId}/qr", controllers.PicklistQR(picklistsSvc, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", controllers.ListReports(reportsSvc, logg))
			r.Get("/reconciliation", controllers.ReconciliationReport(reportsSvc, logg))
		})

		r.Get("/exceptions", controllers.ListExceptions(monitoringSvc, logg))
		r.Get("/audit-logs", controllers.ListAuditLogs(monitoringSvc, logg))
		r.Get("/backorders", controllers.ListBackorders(monitoringSvc, logg))
		r.Get("/notifications", controllers.ListNotifications(monitoringSvc, logg))
		r.Get("/metrics/dashboard", controllers.DashboardMetrics(monitoringSvc, logg))
	})

	return r
}
