package orders

import (
	"context"
	"fmt"

	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
	"github.com/angelmondragon/warehouse-backend/pkg/retry"
)

const (
	KindOrders     = cache.Kind(airtable.TableOrders)
	KindOrderItems = cache.Kind(airtable.TableOrderItems)
	KindBackorders = cache.Kind(airtable.TableBackorders)
)

type service struct {
	repo      Repository
	inventory Inventory
	snapshots Snapshots
	retry     retry.Policy
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, inventory Inventory, snapshots Snapshots, policy retry.Policy) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	return &service{
		repo:      repo,
		inventory: inventory,
		snapshots: snapshots,
		retry:     policy,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if input.CustomerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.Priority == "" {
		input.Priority = enums.OrderPriorityNormal
	}
	if !input.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown priority").
			WithDetails(map[string]any{"priority": input.Priority})
	}

	order, err := s.repo.Create(ctx, input, stocks.DefaultActor)
	if err != nil {
		return nil, err
	}

	// Items referencing SKUs with no stock row are skipped rather than
	// failing the order; the reservation pass surfaces the gap later.
	for _, item := range input.Items {
		if item.Qty < 1 {
			continue
		}
		stock, err := s.inventory.FindBySKU(ctx, item.SKU)
		if err != nil {
			return nil, err
		}
		if stock == nil {
			continue
		}
		if _, err := s.repo.CreateItem(ctx, order.RecordID, stock.RecordID, item.Qty, stocks.DefaultActor); err != nil {
			return nil, err
		}
	}

	s.snapshots.Invalidate(KindOrders, KindOrderItems)
	return order, nil
}

func (s *service) List(ctx context.Context, refresh bool) ([]Order, error) {
	data, err := s.snapshots.Read(ctx, KindOrders, refresh, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Order), nil
}

func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.repo.Get(ctx, orderID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) error {
	if orderID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": status})
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status, stocks.DefaultActor); err != nil {
		return err
	}
	s.snapshots.Invalidate(KindOrders)
	return nil
}

// Reserve allocates available stock to each of the order's lines, raising a
// backorder for every shortfall. Reads bypass the snapshot cache: allocation
// arithmetic must run against the store's current values.
//
// The final status write runs through the retry policy. If it exhausts, the
// stock holds and backorders already committed stay committed; the store has
// no multi-record transaction to roll them back with, so the operation is
// at-least-once and the caller sees a dependency failure.
func (s *service) Reserve(ctx context.Context, orderID string) (*ReservationResult, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order has no items").
			WithDetails(map[string]any{"order_id": orderID})
	}

	result := &ReservationResult{
		OrderID:   orderID,
		Reserved:  []ReservedLine{},
		Shortages: []Shortage{},
	}
	totalReserved := 0

	for _, item := range items {
		// Items arrive from ingestion automations too, not only Create;
		// a record with no qty field reads as 0 and holds nothing.
		if item.Qty < 1 {
			continue
		}

		stock, err := s.itemStock(ctx, item)
		if err != nil {
			return nil, err
		}

		qty := item.Qty
		sku := ""
		available := 0
		stockRecordID := ""
		if stock != nil {
			sku = stock.SKU
			available = stock.Available
			stockRecordID = stock.RecordID
		}

		switch {
		case available >= qty:
			if err := s.inventory.UpdateAllocation(ctx, stockRecordID, stock.Reserved+qty, available-qty, stocks.DefaultActor); err != nil {
				return nil, err
			}
			totalReserved += qty
			result.Reserved = append(result.Reserved, ReservedLine{SKU: sku, Reserved: qty})

		case available > 0:
			if err := s.inventory.UpdateAllocation(ctx, stockRecordID, stock.Reserved+available, 0, stocks.DefaultActor); err != nil {
				return nil, err
			}
			backorderID, err := s.repo.CreateBackorder(ctx, BackorderInput{
				OrderRecordID: orderID,
				StockRecordID: stockRecordID,
				SKU:           sku,
				RequestedQty:  qty,
				AvailableQty:  available,
				Actor:         stocks.DefaultActor,
			})
			if err != nil {
				return nil, err
			}
			totalReserved += available
			result.Reserved = append(result.Reserved, ReservedLine{SKU: sku, Reserved: available})
			result.Shortages = append(result.Shortages, Shortage{
				SKU:         sku,
				Requested:   qty,
				Available:   available,
				BackorderID: backorderID,
			})

		default:
			backorderID, err := s.repo.CreateBackorder(ctx, BackorderInput{
				OrderRecordID: orderID,
				StockRecordID: stockRecordID,
				SKU:           sku,
				RequestedQty:  qty,
				AvailableQty:  0,
				Actor:         stocks.DefaultActor,
			})
			if err != nil {
				return nil, err
			}
			result.Shortages = append(result.Shortages, Shortage{
				SKU:         sku,
				Requested:   qty,
				Available:   0,
				BackorderID: backorderID,
			})
		}
	}

	// Any nonzero reservation anywhere yields Reserved, even with shortages;
	// only an order where nothing could be held at all fails.
	status := enums.OrderStatusReserved
	if len(result.Shortages) > 0 && totalReserved == 0 {
		status = enums.OrderStatusFailed
	}
	result.Status = status

	err = retry.Do(ctx, s.retry, func(ctx context.Context) error {
		return s.repo.UpdateStatus(ctx, orderID, status, stocks.DefaultActor)
	})

	s.snapshots.Invalidate(KindOrders, stocks.KindStocks, KindBackorders)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// itemStock resolves the item's linked stock row. A dangling or missing link
// reads as zero availability, not an error.
func (s *service) itemStock(ctx context.Context, item OrderItem) (*stocks.Stock, error) {
	if len(item.StockLinks) == 0 {
		return nil, nil
	}
	stock, err := s.inventory.Get(ctx, item.StockLinks[0])
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return stock, nil
}
