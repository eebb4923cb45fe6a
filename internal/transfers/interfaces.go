package transfers

import (
	"context"

	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

// Repository defines record-store operations for the Stock_Transfers table.
type Repository interface {
	Create(ctx context.Context, input CreateTransferInput, status enums.TransferStatus) (*Transfer, error)
	Get(ctx context.Context, recordID string) (*Transfer, error)
	List(ctx context.Context) ([]Transfer, error)
	UpdateApproval(ctx context.Context, recordID string, status enums.TransferStatus, approvedBy string) error
}

// Inventory is the slice of the stock repository the state machine touches.
type Inventory interface {
	FindBySKU(ctx context.Context, sku string) (*stocks.Stock, error)
	UpdateLocation(ctx context.Context, recordID, location, rack, actor string) error
}

// Snapshots is the per-kind TTL cache consumed by listing reads.
type Snapshots interface {
	Read(ctx context.Context, kind cache.Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error)
	Invalidate(kinds ...cache.Kind)
}

// Service exposes the transfer lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateTransferInput) (*TransferResult, error)
	Approve(ctx context.Context, transferID, approvedBy string) (*TransferResult, error)
	List(ctx context.Context, refresh bool) ([]Transfer, error)
}
