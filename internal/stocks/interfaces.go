package stocks

import (
	"context"

	"github.com/angelmondragon/warehouse-backend/pkg/cache"
)

// Repository defines record-store operations for the Stocks and Good_Receipts
// tables. Write methods take absolute values; callers compute the arithmetic
// from the snapshot they read.
type Repository interface {
	List(ctx context.Context) ([]Stock, error)
	Get(ctx context.Context, recordID string) (*Stock, error)
	// FindBySKU returns (nil, nil) when no stock row carries the SKU.
	FindBySKU(ctx context.Context, sku string) (*Stock, error)
	UpdateAllocation(ctx context.Context, recordID string, reserved, available int, actor string) error
	UpdateLocation(ctx context.Context, recordID, location, rack, actor string) error
	SetInbound(ctx context.Context, recordID string, addStock int, actor string) error
	CreateReceipt(ctx context.Context, stockRecordID string, input GoodsReceiptInput) (*GoodsReceipt, error)
	ListReceipts(ctx context.Context) ([]GoodsReceipt, error)
}

// Snapshots is the per-kind TTL cache consumed by listing reads.
type Snapshots interface {
	Read(ctx context.Context, kind cache.Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error)
	Invalidate(kinds ...cache.Kind)
}

// Service exposes inventory reads and goods-receipt booking.
type Service interface {
	List(ctx context.Context, refresh bool) ([]Stock, error)
	Get(ctx context.Context, stockID string) (*Stock, error)
	ReceiveGoods(ctx context.Context, input GoodsReceiptInput) (*GoodsReceiptResult, error)
	ListReceipts(ctx context.Context, refresh bool) ([]GoodsReceipt, error)
}
