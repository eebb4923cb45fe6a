package monitoring

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/cache"
)

// Repository defines record-store operations for the operational tables:
// Exceptions, AuditLogs, Backorders, and Notifications.
type Repository interface {
	ListExceptions(ctx context.Context) ([]Exception, error)
	ListAuditLogs(ctx context.Context) ([]AuditLog, error)
	ListBackorders(ctx context.Context) ([]Backorder, error)
	ListNotifications(ctx context.Context) ([]Notification, error)
	CreateException(ctx context.Context, input ExceptionInput) (string, error)
	CreateNotification(ctx context.Context, input NotificationInput) (string, error)
	CountOrders(ctx context.Context) (int, error)
}

// Snapshots is the per-kind TTL cache. The dashboard aggregate reads through
// its own shorter staleness window.
type Snapshots interface {
	Read(ctx context.Context, kind cache.Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error)
	ReadWithTTL(ctx context.Context, kind cache.Kind, ttl time.Duration, refresh bool, fetch func(context.Context) (any, error)) (any, error)
	Invalidate(kinds ...cache.Kind)
}

// Service exposes the operational listings and the dashboard aggregate.
type Service interface {
	ListExceptions(ctx context.Context, refresh bool) ([]Exception, error)
	ListAuditLogs(ctx context.Context, refresh bool) ([]AuditLog, error)
	ListBackorders(ctx context.Context, refresh bool) ([]Backorder, error)
	ListNotifications(ctx context.Context, refresh bool) ([]Notification, error)
	Dashboard(ctx context.Context, refresh bool) (*Dashboard, error)
}
