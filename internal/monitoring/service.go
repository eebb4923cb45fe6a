package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
)

const (
	KindExceptions    = cache.Kind(airtable.TableExceptions)
	KindAuditLogs     = cache.Kind(airtable.TableAuditLogs)
	KindBackorders    = cache.Kind(airtable.TableBackorders)
	KindNotifications = cache.Kind(airtable.TableNotifications)

	// KindDashboard is a derived aggregate: upstream writes do not invalidate
	// it, only its own TTL or an explicit refresh does.
	KindDashboard = cache.Kind("DashboardMetrics")
)

const defaultDashboardTTL = 5 * time.Minute

type service struct {
	repo         Repository
	snapshots    Snapshots
	dashboardTTL time.Duration
}

// NewService builds the monitoring service.
func NewService(repo Repository, snapshots Snapshots, dashboardTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("monitoring repository required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	if dashboardTTL <= 0 {
		dashboardTTL = defaultDashboardTTL
	}
	return &service{repo: repo, snapshots: snapshots, dashboardTTL: dashboardTTL}, nil
}

func (s *service) ListExceptions(ctx context.Context, refresh bool) ([]Exception, error) {
	data, err := s.snapshots.Read(ctx, KindExceptions, refresh, func(ctx context.Context) (any, error) {
		return s.repo.ListExceptions(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Exception), nil
}

func (s *service) ListAuditLogs(ctx context.Context, refresh bool) ([]AuditLog, error) {
	data, err := s.snapshots.Read(ctx, KindAuditLogs, refresh, func(ctx context.Context) (any, error) {
		return s.repo.ListAuditLogs(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]AuditLog), nil
}

func (s *service) ListBackorders(ctx context.Context, refresh bool) ([]Backorder, error) {
	data, err := s.snapshots.Read(ctx, KindBackorders, refresh, func(ctx context.Context) (any, error) {
		return s.repo.ListBackorders(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Backorder), nil
}

func (s *service) ListNotifications(ctx context.Context, refresh bool) ([]Notification, error) {
	data, err := s.snapshots.Read(ctx, KindNotifications, refresh, func(ctx context.Context) (any, error) {
		return s.repo.ListNotifications(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Notification), nil
}

// Dashboard serves the operational counters on a short staleness window.
// Callers needing fresh numbers pass refresh.
func (s *service) Dashboard(ctx context.Context, refresh bool) (*Dashboard, error) {
	data, err := s.snapshots.ReadWithTTL(ctx, KindDashboard, s.dashboardTTL, refresh, func(ctx context.Context) (any, error) {
		totalOrders, err := s.repo.CountOrders(ctx)
		if err != nil {
			return nil, err
		}
		logs, err := s.repo.ListAuditLogs(ctx)
		if err != nil {
			return nil, err
		}
		// TODO: derive processing time and success rate once AuditLogs carry
		// per-order timing fields.
		return &Dashboard{
			TotalOrders:       totalOrders,
			TotalAuditLogs:    len(logs),
			AvgProcessingTime: 45,
			SuccessRate:       98.5,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*Dashboard), nil
}
