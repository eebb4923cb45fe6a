package picklists

import (
	"context"
	"testing"

	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
)

type fakeRepo struct {
	picklists     map[string]*Picklist
	statusUpdates map[string]enums.PicklistStatus
}

func (r *fakeRepo) List(ctx context.Context) ([]Picklist, error) {
	out := make([]Picklist, 0, len(r.picklists))
	for _, picklist := range r.picklists {
		out = append(out, *picklist)
	}
	return out, nil
}

func (r *fakeRepo) Get(ctx context.Context, recordID string) (*Picklist, error) {
	if picklist, ok := r.picklists[recordID]; ok {
		return picklist, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "picklist not found")
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, recordID string, status enums.PicklistStatus, actor string) error {
	if r.statusUpdates == nil {
		r.statusUpdates = map[string]enums.PicklistStatus{}
	}
	r.statusUpdates[recordID] = status
	return nil
}

type fakeOrders struct {
	items         map[string][]orders.OrderItem
	statusUpdates map[string]enums.OrderStatus
}

func (o *fakeOrders) ListItems(ctx context.Context, orderRecordID string) ([]orders.OrderItem, error) {
	return o.items[orderRecordID], nil
}

func (o *fakeOrders) UpdateStatus(ctx context.Context, recordID string, status enums.OrderStatus, actor string) error {
	if o.statusUpdates == nil {
		o.statusUpdates = map[string]enums.OrderStatus{}
	}
	o.statusUpdates[recordID] = status
	return nil
}

type fakeInventory struct {
	byRecord map[string]*stocks.Stock
}

func (i *fakeInventory) Get(ctx context.Context, recordID string) (*stocks.Stock, error) {
	if stock, ok := i.byRecord[recordID]; ok {
		return stock, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock not found")
}

type fakeSnapshots struct {
	invalidated []cache.Kind
}

func (s *fakeSnapshots) Read(ctx context.Context, kind cache.Kind, refresh bool, fetch func(context.Context) (any, error)) (any, error) {
	return fetch(ctx)
}

func (s *fakeSnapshots) Invalidate(kinds ...cache.Kind) {
	s.invalidated = append(s.invalidated, kinds...)
}

func newFixture(t *testing.T) (Service, *fakeRepo, *fakeOrders, *fakeInventory, *fakeSnapshots) {
	t.Helper()
	repo := &fakeRepo{picklists: map[string]*Picklist{}}
	orderStore := &fakeOrders{items: map[string][]orders.OrderItem{}}
	inventory := &fakeInventory{byRecord: map[string]*stocks.Stock{}}
	snapshots := &fakeSnapshots{}
	svc, err := NewService(repo, orderStore, inventory, snapshots)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, orderStore, inventory, snapshots
}

func TestRouteDedupesAndSortsStops(t *testing.T) {
	svc, repo, orderStore, inventory, _ := newFixture(t)
	repo.picklists["recPick"] = &Picklist{RecordID: "recPick", OrderLinks: []string{"recOrder"}}
	orderStore.items["recOrder"] = []orders.OrderItem{
		{RecordID: "recItem1", StockLinks: []string{"recStockB"}},
		{RecordID: "recItem2", StockLinks: []string{"recStockA"}},
		{RecordID: "recItem3", StockLinks: []string{"recStockB"}},
		{RecordID: "recItem4"},
	}
	inventory.byRecord["recStockA"] = &stocks.Stock{RecordID: "recStockA", Location: "WH-A", Rack: "R1"}
	inventory.byRecord["recStockB"] = &stocks.Stock{RecordID: "recStockB", Location: "WH-B", Rack: "R4"}

	route, err := svc.Route(context.Background(), "recPick")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(route.Stops) != 2 {
		t.Fatalf("expected 2 deduped stops, got %v", route.Stops)
	}
	if route.Stops[0] != "WH-A/R1" || route.Stops[1] != "WH-B/R4" {
		t.Fatalf("expected sorted stops, got %v", route.Stops)
	}
}

func TestRouteEmptyPicklist(t *testing.T) {
	svc, repo, _, _, _ := newFixture(t)
	repo.picklists["recPick"] = &Picklist{RecordID: "recPick"}

	route, err := svc.Route(context.Background(), "recPick")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(route.Stops) != 0 {
		t.Fatalf("expected no stops, got %v", route.Stops)
	}
}

func TestUpdateStatusInProgressStartsOrderPicking(t *testing.T) {
	svc, repo, orderStore, _, snapshots := newFixture(t)
	repo.picklists["recPick"] = &Picklist{RecordID: "recPick", OrderLinks: []string{"recOrder"}}

	if err := svc.UpdateStatus(context.Background(), "recPick", enums.PicklistStatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if repo.statusUpdates["recPick"] != enums.PicklistStatusInProgress {
		t.Fatalf("picklist status not written: %v", repo.statusUpdates)
	}
	if orderStore.statusUpdates["recOrder"] != enums.OrderStatusPicking {
		t.Fatalf("expected order moved to Picking, got %v", orderStore.statusUpdates)
	}
	if len(snapshots.invalidated) != 2 {
		t.Fatalf("expected picklist and order snapshots invalidated, got %v", snapshots.invalidated)
	}
}

func TestUpdateStatusCompletedMarksOrderReady(t *testing.T) {
	svc, repo, orderStore, _, _ := newFixture(t)
	repo.picklists["recPick"] = &Picklist{RecordID: "recPick", OrderLinks: []string{"recOrder"}}

	if err := svc.UpdateStatus(context.Background(), "recPick", enums.PicklistStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if orderStore.statusUpdates["recOrder"] != enums.OrderStatusReady {
		t.Fatalf("expected order moved to Ready, got %v", orderStore.statusUpdates)
	}
}

func TestUpdateStatusPendingLeavesOrderAlone(t *testing.T) {
	svc, repo, orderStore, _, snapshots := newFixture(t)
	repo.picklists["recPick"] = &Picklist{RecordID: "recPick", OrderLinks: []string{"recOrder"}}

	if err := svc.UpdateStatus(context.Background(), "recPick", enums.PicklistStatusPending); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(orderStore.statusUpdates) != 0 {
		t.Fatalf("pending must not touch the order, got %v", orderStore.statusUpdates)
	}
	if len(snapshots.invalidated) != 1 || snapshots.invalidated[0] != KindPicklists {
		t.Fatalf("expected only the picklist snapshot invalidated, got %v", snapshots.invalidated)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc, repo, _, _, _ := newFixture(t)
	err := svc.UpdateStatus(context.Background(), "recPick", enums.PicklistStatus("Done"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.statusUpdates) != 0 {
		t.Fatal("invalid status must not reach the store")
	}
}

func TestQRPayload(t *testing.T) {
	svc, repo, _, _, _ := newFixture(t)
	repo.picklists["recPick"] = &Picklist{RecordID: "recPick"}

	qr, err := svc.QR(context.Background(), "recPick")
	if err != nil {
		t.Fatalf("QR: %v", err)
	}
	if qr.Data != "PICKLIST-recPick" {
		t.Fatalf("unexpected payload: %q", qr.Data)
	}
}
