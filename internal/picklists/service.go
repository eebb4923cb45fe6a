package picklists

import (
	"context"
	"fmt"
	"sort"

	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
)

const KindPicklists = cache.Kind(airtable.TablePicklists)

type service struct {
	repo      Repository
	orders    Orders
	inventory Inventory
	snapshots Snapshots
}

// NewService builds the picklist service.
func NewService(repo Repository, orderStore Orders, inventory Inventory, snapshots Snapshots) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("picklists repository required")
	}
	if orderStore == nil {
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
		orders:    orderStore,
		inventory: inventory,
		snapshots: snapshots,
	}, nil
}

func (s *service) List(ctx context.Context, refresh bool) ([]Picklist, error) {
	data, err := s.snapshots.Read(ctx, KindPicklists, refresh, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Picklist), nil
}

// UpdateStatus moves the picklist through the picking workflow and keeps the
// linked order in step: picking starts the order's Picking phase, a completed
// picklist marks the order Ready.
func (s *service) UpdateStatus(ctx context.Context, picklistID string, status enums.PicklistStatus) error {
	if picklistID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "picklist id required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown picklist status").
			WithDetails(map[string]any{"status": status})
	}

	picklist, err := s.repo.Get(ctx, picklistID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, picklistID, status, stocks.DefaultActor); err != nil {
		return err
	}

	orderStatus, propagate := orderStatusFor(status)
	if propagate {
		for _, orderRecordID := range picklist.OrderLinks {
			if err := s.orders.UpdateStatus(ctx, orderRecordID, orderStatus, stocks.DefaultActor); err != nil {
				return err
			}
		}
	}

	if propagate && len(picklist.OrderLinks) > 0 {
		s.snapshots.Invalidate(KindPicklists, orders.KindOrders)
	} else {
		s.snapshots.Invalidate(KindPicklists)
	}
	return nil
}

func orderStatusFor(status enums.PicklistStatus) (enums.OrderStatus, bool) {
	switch status {
	case enums.PicklistStatusInProgress:
		return enums.OrderStatusPicking, true
	case enums.PicklistStatusCompleted:
		return enums.OrderStatusReady, true
	default:
		return "", false
	}
}

// Route walks the picklist's order lines and orders their rack positions
// into a single pass through the warehouse.
func (s *service) Route(ctx context.Context, picklistID string) (*Route, error) {
	picklist, err := s.repo.Get(ctx, picklistID)
	if err != nil {
		return nil, err
	}
	if len(picklist.OrderLinks) == 0 {
		return &Route{PicklistID: picklistID, Stops: []string{}}, nil
	}

	items, err := s.orders.ListItems(ctx, picklist.OrderLinks[0])
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	stops := []string{}
	for _, item := range items {
		if len(item.StockLinks) == 0 {
			continue
		}
		stock, err := s.inventory.Get(ctx, item.StockLinks[0])
		if err != nil {
			return nil, err
		}
		stop := stock.Location + "/" + stock.Rack
		if !seen[stop] {
			seen[stop] = true
			stops = append(stops, stop)
		}
	}
	sort.Strings(stops)

	return &Route{PicklistID: picklistID, Stops: stops}, nil
}

func (s *service) QR(ctx context.Context, picklistID string) (*QRCode, error) {
	picklist, err := s.repo.Get(ctx, picklistID)
	if err != nil {
		return nil, err
	}
	return &QRCode{
		PicklistID: picklist.RecordID,
		Data:       "PICKLIST-" + picklist.RecordID,
	}, nil
}
