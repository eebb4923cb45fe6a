package enums

import "fmt"

// OrderStatus tracks the lifecycle of a customer order. Transitions are
// monotonically forward except into the terminal Cancelled/Expired/Failed.
type OrderStatus string

const (
	OrderStatusPending        = OrderStatus("Pending")
	OrderStatusValidated      = OrderStatus("Validated")
	OrderStatusStockConfirmed = OrderStatus("Stock Confirmed")
	OrderStatusReserved       = OrderStatus("Reserved")
	OrderStatusPicking        = OrderStatus("Picking")
	OrderStatusReady          = OrderStatus("Ready")
	OrderStatusShipped        = OrderStatus("Shipped")
	OrderStatusCancelled      = OrderStatus("Cancelled")
	OrderStatusExpired        = OrderStatus("Expired")
	OrderStatusFailed         = OrderStatus("Failed")
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusValidated,
	OrderStatusStockConfirmed,
	OrderStatusReserved,
	OrderStatusPicking,
	OrderStatusReady,
	OrderStatusShipped,
	OrderStatusCancelled,
	OrderStatusExpired,
	OrderStatusFailed,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (o OrderStatus) IsTerminal() bool {
	switch o {
	case OrderStatusCancelled, OrderStatusExpired, OrderStatusFailed:
		return true
	default:
		return false
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
