package reports

import (
	"context"

	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
)

// Repository defines record-store operations for the Reports table.
type Repository interface {
	Create(ctx context.Context, reportType, data, actor string) (string, error)
	List(ctx context.Context) ([]Report, error)
}

// Inventory is the slice of the stock repository reconciliation reads.
type Inventory interface {
	List(ctx context.Context) ([]stocks.Stock, error)
}

// Snapshots is the per-kind TTL cache consumed by listing reads.
type Snapshots interface {
	Read(ctx context.Context, kind cache.Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error)
	Invalidate(kinds ...cache.Kind)
}

// Service exposes report listings and reconciliation runs.
type Service interface {
	List(ctx context.Context, refresh bool) ([]Report, error)
	Reconcile(ctx context.Context) (*ReconciliationResult, error)
}
