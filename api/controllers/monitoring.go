package controllers

import (
	"net/http"

	"github.com/angelmondragon/warehouse-backend/api/responses"
	"github.com/angelmondragon/warehouse-backend/api/validators"
	"github.com/angelmondragon/warehouse-backend/internal/monitoring"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
)

func listHandler[T any](logg *logger.Logger, list func(r *http.Request, refresh bool) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh, err := validators.ParseQueryBool(r, "refresh", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := list(r, refresh)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ListExceptions(svc monitoring.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(logg, func(r *http.Request, refresh bool) ([]monitoring.Exception, error) {
		return svc.ListExceptions(r.Context(), refresh)
	})
}

func ListAuditLogs(svc monitoring.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(logg, func(r *http.Request, refresh bool) ([]monitoring.AuditLog, error) {
		return svc.ListAuditLogs(r.Context(), refresh)
	})
}

func ListBackorders(svc monitoring.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(logg, func(r *http.Request, refresh bool) ([]monitoring.Backorder, error) {
		return svc.ListBackorders(r.Context(), refresh)
	})
}

func ListNotifications(svc monitoring.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(logg, func(r *http.Request, refresh bool) ([]monitoring.Notification, error) {
		return svc.ListNotifications(r.Context(), refresh)
	})
}

func DashboardMetrics(svc monitoring.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh, err := validators.ParseQueryBool(r, "refresh", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dashboard, err := svc.Dashboard(r.Context(), refresh)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
