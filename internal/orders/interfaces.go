package orders

import (
	"context"

	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

// Repository defines record-store operations for the Orders, Order_Items, and
// Backorders tables.
type Repository interface {
	Create(ctx context.Context, input CreateOrderInput, actor string) (*Order, error)
	CreateItem(ctx context.Context, orderRecordID, stockRecordID string, qty int, actor string) (string, error)
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, recordID string) (*Order, error)
	// ListItems returns the items linked to the order. The store cannot
	// filter on link columns server-side, so this scans the table.
	ListItems(ctx context.Context, orderRecordID string) ([]OrderItem, error)
	UpdateStatus(ctx context.Context, recordID string, status enums.OrderStatus, actor string) error
	MarkItemCancelled(ctx context.Context, itemRecordID, actor string) error
	CreateBackorder(ctx context.Context, input BackorderInput) (string, error)
}

// Inventory is the slice of the stock repository the reservation engine
// touches.
type Inventory interface {
	Get(ctx context.Context, recordID string) (*stocks.Stock, error)
	FindBySKU(ctx context.Context, sku string) (*stocks.Stock, error)
	UpdateAllocation(ctx context.Context, recordID string, reserved, available int, actor string) error
}

// Snapshots is the per-kind TTL cache consumed by listing reads.
type Snapshots interface {
	Read(ctx context.Context, kind cache.Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error)
	Invalidate(kinds ...cache.Kind)
}

// Service exposes order lifecycle operations including stock reservation.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	List(ctx context.Context, refresh bool) ([]Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) error
	Reserve(ctx context.Context, orderID string) (*ReservationResult, error)
}
