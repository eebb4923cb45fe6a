package picklists

import (
	"context"

	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

// Repository defines record-store operations for the Picklists table.
type Repository interface {
	List(ctx context.Context) ([]Picklist, error)
	Get(ctx context.Context, recordID string) (*Picklist, error)
	UpdateStatus(ctx context.Context, recordID string, status enums.PicklistStatus, actor string) error
}

// Orders is the slice of the orders repository the picking workflow needs:
// item reads for route building and status writes for workflow propagation.
type Orders interface {
	ListItems(ctx context.Context, orderRecordID string) ([]orders.OrderItem, error)
	UpdateStatus(ctx context.Context, recordID string, status enums.OrderStatus, actor string) error
}

// Inventory resolves item links to stock rows for their rack positions.
type Inventory interface {
	Get(ctx context.Context, recordID string) (*stocks.Stock, error)
}

// Snapshots is the per-kind TTL cache consumed by listing reads.
type Snapshots interface {
	Read(ctx context.Context, kind cache.Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error)
	Invalidate(kinds ...cache.Kind)
}

// Service exposes picklist reads and the picking workflow.
type Service interface {
	List(ctx context.Context, refresh bool) ([]Picklist, error)
	UpdateStatus(ctx context.Context, picklistID string, status enums.PicklistStatus) error
	Route(ctx context.Context, picklistID string) (*Route, error)
	QR(ctx context.Context, picklistID string) (*QRCode, error)
}
