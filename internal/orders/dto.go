package orders

import (
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

// Order is the typed form of an Orders record.
type Order struct {
	RecordID      string              `json:"order_id"`
	CustomerID    string              `json:"customer_id"`
	CustomerEmail string              `json:"customer_email"`
	Priority      enums.OrderPriority `json:"priority"`
	Status        enums.OrderStatus   `json:"status"`
	ETA           string              `json:"eta,omitempty"`
	CreatedAt     string              `json:"created_at,omitempty"`
	UpdatedAt     string              `json:"updated_at,omitempty"`
}

// OrderItem is the typed form of an Order_Items record. The sku column is a
// link to the Stocks row, so StockLinks carries record ids, not SKU strings.
type OrderItem struct {
	RecordID   string   `json:"item_id"`
	OrderLinks []string `json:"order_links"`
	StockLinks []string `json:"stock_links"`
	Qty        int      `json:"qty"`
	Picked     bool     `json:"picked"`
	Cancelled  bool     `json:"cancelled"`
}

// CreateOrderItemInput names a requested SKU and quantity.
type CreateOrderItemInput struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// CreateOrderInput captures a new order submission.
type CreateOrderInput struct {
	CustomerID    string                 `json:"customer_id"`
	CustomerEmail string                 `json:"customer_email"`
	Priority      enums.OrderPriority    `json:"priority"`
	Items         []CreateOrderItemInput `json:"items"`
}

// ReservedLine reports stock committed to one order line.
type ReservedLine struct {
	SKU      string `json:"sku"`
	Reserved int    `json:"reserved"`
}

// Shortage reports an under-covered order line and the backorder raised for
// the remainder.
type Shortage struct {
	SKU         string `json:"sku"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	BackorderID string `json:"backorder_id,omitempty"`
}

// ReservationResult is the outcome of reserving stock against an order.
type ReservationResult struct {
	OrderID   string            `json:"order_id"`
	Status    enums.OrderStatus `json:"status"`
	Reserved  []ReservedLine    `json:"reserved"`
	Shortages []Shortage        `json:"shortages"`
}

// BackorderInput captures unmet demand for one order line.
type BackorderInput struct {
	OrderRecordID string
	StockRecordID string
	SKU           string
	RequestedQty  int
	AvailableQty  int
	Actor         string
}
