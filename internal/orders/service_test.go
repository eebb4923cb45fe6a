package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
	"github.com/angelmondragon/warehouse-backend/pkg/retry"
)

type statusUpdate struct {
	recordID string
	status   enums.OrderStatus
}

type fakeRepo struct {
	orders        []Order
	items         map[string][]OrderItem
	statusUpdates []statusUpdate
	statusErrs    []error
	backorders    []BackorderInput
	nextBackorder int
}

func (r *fakeRepo) Create(ctx context.Context, input CreateOrderInput, actor string) (*Order, error) {
	order := Order{RecordID: "recOrder", CustomerID: input.CustomerID, Status: enums.OrderStatusPending}
	r.orders = append(r.orders, order)
	return &order, nil
}

func (r *fakeRepo) CreateItem(ctx context.Context, orderRecordID, stockRecordID string, qty int, actor string) (string, error) {
	item := OrderItem{RecordID: "recItem", OrderLinks: []string{orderRecordID}, StockLinks: []string{stockRecordID}, Qty: qty}
	if r.items == nil {
		r.items = map[string][]OrderItem{}
	}
	r.items[orderRecordID] = append(r.items[orderRecordID], item)
	return item.RecordID, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]Order, error) { return r.orders, nil }

func (r *fakeRepo) Get(ctx context.Context, recordID string) (*Order, error) {
	for _, order := range r.orders {
		if order.RecordID == recordID {
			return &order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (r *fakeRepo) ListItems(ctx context.Context, orderRecordID string) ([]OrderItem, error) {
	return r.items[orderRecordID], nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, recordID string, status enums.OrderStatus, actor string) error {
	if len(r.statusErrs) > 0 {
		err := r.statusErrs[0]
		r.statusErrs = r.statusErrs[1:]
		if err != nil {
			return err
		}
	}
	r.statusUpdates = append(r.statusUpdates, statusUpdate{recordID: recordID, status: status})
	return nil
}

func (r *fakeRepo) MarkItemCancelled(ctx context.Context, itemRecordID, actor string) error {
	return nil
}

func (r *fakeRepo) CreateBackorder(ctx context.Context, input BackorderInput) (string, error) {
	r.backorders = append(r.backorders, input)
	r.nextBackorder++
	return "recBO" + string(rune('0'+r.nextBackorder)), nil
}

type allocation struct {
	recordID  string
	reserved  int
	available int
}

type fakeInventory struct {
	bySKU       map[string]*stocks.Stock
	byRecord    map[string]*stocks.Stock
	allocations []allocation
}

func (i *fakeInventory) Get(ctx context.Context, recordID string) (*stocks.Stock, error) {
	if stock, ok := i.byRecord[recordID]; ok {
		return stock, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock not found")
}

func (i *fakeInventory) FindBySKU(ctx context.Context, sku string) (*stocks.Stock, error) {
	return i.bySKU[sku], nil
}

func (i *fakeInventory) UpdateAllocation(ctx context.Context, recordID string, reserved, available int, actor string) error {
	i.allocations = append(i.allocations, allocation{recordID: recordID, reserved: reserved, available: available})
	return nil
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

func fastRetry() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func newReserveFixture(t *testing.T, items []OrderItem, stockRows ...*stocks.Stock) (Service, *fakeRepo, *fakeInventory, *fakeSnapshots) {
	t.Helper()
	repo := &fakeRepo{items: map[string][]OrderItem{"recOrder": items}}
	inventory := &fakeInventory{bySKU: map[string]*stocks.Stock{}, byRecord: map[string]*stocks.Stock{}}
	for _, stock := range stockRows {
		inventory.bySKU[stock.SKU] = stock
		inventory.byRecord[stock.RecordID] = stock
	}
	snapshots := &fakeSnapshots{}
	svc, err := NewService(repo, inventory, snapshots, fastRetry())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, inventory, snapshots
}

func containsKind(kinds []cache.Kind, want cache.Kind) bool {
	for _, kind := range kinds {
		if kind == want {
			return true
		}
	}
	return false
}

func TestReserveFullCoverage(t *testing.T) {
	items := []OrderItem{{RecordID: "recItem1", StockLinks: []string{"recStock1"}, Qty: 3}}
	svc, repo, inventory, snapshots := newReserveFixture(t, items,
		&stocks.Stock{RecordID: "recStock1", SKU: "SKU-1", Quantity: 10, Reserved: 2, Available: 8},
	)

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if result.Status != enums.OrderStatusReserved {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if len(result.Reserved) != 1 || result.Reserved[0].Reserved != 3 {
		t.Fatalf("unexpected reserved lines: %+v", result.Reserved)
	}
	if len(result.Shortages) != 0 {
		t.Fatalf("unexpected shortages: %+v", result.Shortages)
	}
	if len(inventory.allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(inventory.allocations))
	}
	alloc := inventory.allocations[0]
	if alloc.reserved != 5 || alloc.available != 5 {
		t.Fatalf("unexpected allocation: %+v", alloc)
	}
	if len(repo.statusUpdates) != 1 || repo.statusUpdates[0].status != enums.OrderStatusReserved {
		t.Fatalf("unexpected status updates: %+v", repo.statusUpdates)
	}
	if !containsKind(snapshots.invalidated, KindOrders) || !containsKind(snapshots.invalidated, stocks.KindStocks) {
		t.Fatalf("expected order and stock snapshots invalidated, got %v", snapshots.invalidated)
	}
}

func TestReservePartialLineStillReserved(t *testing.T) {
	items := []OrderItem{{RecordID: "recItem1", StockLinks: []string{"recStock1"}, Qty: 10}}
	svc, repo, inventory, _ := newReserveFixture(t, items,
		&stocks.Stock{RecordID: "recStock1", SKU: "SKU-1", Quantity: 10, Reserved: 6, Available: 4},
	)

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if result.Status != enums.OrderStatusReserved {
		t.Fatalf("a partially covered order still counts as reserved, got %s", result.Status)
	}
	if len(result.Reserved) != 1 || result.Reserved[0].Reserved != 4 {
		t.Fatalf("expected the 4 on-hand units held, got %+v", result.Reserved)
	}
	if len(result.Shortages) != 1 {
		t.Fatalf("expected 1 shortage, got %+v", result.Shortages)
	}
	shortage := result.Shortages[0]
	if shortage.Requested != 10 || shortage.Available != 4 || shortage.BackorderID == "" {
		t.Fatalf("unexpected shortage: %+v", shortage)
	}
	if len(repo.backorders) != 1 {
		t.Fatalf("expected 1 backorder, got %d", len(repo.backorders))
	}
	bo := repo.backorders[0]
	if bo.RequestedQty != 10 || bo.AvailableQty != 4 || bo.SKU != "SKU-1" {
		t.Fatalf("unexpected backorder input: %+v", bo)
	}
	alloc := inventory.allocations[0]
	if alloc.reserved != 10 || alloc.available != 0 {
		t.Fatalf("partial hold must drain availability, got %+v", alloc)
	}
}

func TestReserveNothingAvailableFailsOrder(t *testing.T) {
	items := []OrderItem{
		{RecordID: "recItem1", StockLinks: []string{"recStock1"}, Qty: 5},
		{RecordID: "recItem2", StockLinks: []string{"recStock2"}, Qty: 2},
	}
	svc, repo, inventory, _ := newReserveFixture(t, items,
		&stocks.Stock{RecordID: "recStock1", SKU: "SKU-1", Quantity: 5, Reserved: 5, Available: 0},
		&stocks.Stock{RecordID: "recStock2", SKU: "SKU-2", Quantity: 0, Reserved: 0, Available: 0},
	)

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if result.Status != enums.OrderStatusFailed {
		t.Fatalf("expected failed order, got %s", result.Status)
	}
	if len(result.Reserved) != 0 {
		t.Fatalf("expected no reserved lines, got %+v", result.Reserved)
	}
	if len(result.Shortages) != 2 || len(repo.backorders) != 2 {
		t.Fatalf("expected a backorder per line, got %+v", result.Shortages)
	}
	if len(inventory.allocations) != 0 {
		t.Fatalf("no stock should be touched, got %+v", inventory.allocations)
	}
	if repo.statusUpdates[0].status != enums.OrderStatusFailed {
		t.Fatalf("unexpected status write: %+v", repo.statusUpdates)
	}
}

func TestReserveMixedLinesReserved(t *testing.T) {
	items := []OrderItem{
		{RecordID: "recItem1", StockLinks: []string{"recStock1"}, Qty: 2},
		{RecordID: "recItem2", StockLinks: []string{"recStock2"}, Qty: 4},
	}
	svc, repo, _, _ := newReserveFixture(t, items,
		&stocks.Stock{RecordID: "recStock1", SKU: "SKU-1", Quantity: 9, Reserved: 0, Available: 9},
		&stocks.Stock{RecordID: "recStock2", SKU: "SKU-2", Quantity: 4, Reserved: 4, Available: 0},
	)

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if result.Status != enums.OrderStatusReserved {
		t.Fatalf("one held line is enough to reserve the order, got %s", result.Status)
	}
	if len(result.Reserved) != 1 || len(result.Shortages) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(repo.backorders) != 1 || repo.backorders[0].SKU != "SKU-2" {
		t.Fatalf("unexpected backorders: %+v", repo.backorders)
	}
}

func TestReserveEmptyOrderIsNotFound(t *testing.T) {
	svc, _, _, _ := newReserveFixture(t, nil)

	_, err := svc.Reserve(context.Background(), "recOrder")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for empty order, got %v", err)
	}
}

func TestReserveDanglingStockLinkBackorders(t *testing.T) {
	items := []OrderItem{{RecordID: "recItem1", StockLinks: []string{"recGone"}, Qty: 3}}
	svc, repo, _, _ := newReserveFixture(t, items)

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if result.Status != enums.OrderStatusFailed {
		t.Fatalf("expected failed order, got %s", result.Status)
	}
	if len(repo.backorders) != 1 || repo.backorders[0].AvailableQty != 0 {
		t.Fatalf("expected zero-availability backorder, got %+v", repo.backorders)
	}
}

func TestReserveSkipsZeroQtyLines(t *testing.T) {
	// Ingestion can leave an item with no qty field and no stock link.
	items := []OrderItem{{RecordID: "recItem1", Qty: 0}}
	svc, repo, inventory, _ := newReserveFixture(t, items)

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if len(result.Reserved) != 0 || len(result.Shortages) != 0 {
		t.Fatalf("a zero-qty line must hold nothing, got %+v", result)
	}
	if len(inventory.allocations) != 0 || len(repo.backorders) != 0 {
		t.Fatalf("no stock or backorder writes expected, got %+v %+v", inventory.allocations, repo.backorders)
	}
}

func TestReserveZeroQtyLineDoesNotBlockOthers(t *testing.T) {
	items := []OrderItem{
		{RecordID: "recItem1", Qty: 0},
		{RecordID: "recItem2", StockLinks: []string{"recStock1"}, Qty: 2},
	}
	svc, _, inventory, _ := newReserveFixture(t, items,
		&stocks.Stock{RecordID: "recStock1", SKU: "SKU-1", Quantity: 6, Reserved: 1, Available: 5},
	)

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if result.Status != enums.OrderStatusReserved {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if len(result.Reserved) != 1 || result.Reserved[0].Reserved != 2 {
		t.Fatalf("unexpected reserved lines: %+v", result.Reserved)
	}
	if len(inventory.allocations) != 1 {
		t.Fatalf("expected only the live line allocated, got %+v", inventory.allocations)
	}
}

func TestReserveStatusWriteRetriesThenSucceeds(t *testing.T) {
	items := []OrderItem{{RecordID: "recItem1", StockLinks: []string{"recStock1"}, Qty: 1}}
	svc, repo, _, _ := newReserveFixture(t, items,
		&stocks.Stock{RecordID: "recStock1", SKU: "SKU-1", Quantity: 5, Reserved: 0, Available: 5},
	)
	repo.statusErrs = []error{pkgerrors.New(pkgerrors.CodeDependency, "store timeout")}

	result, err := svc.Reserve(context.Background(), "recOrder")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if result.Status != enums.OrderStatusReserved {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if len(repo.statusUpdates) != 1 {
		t.Fatalf("expected the retried write to land once, got %d", len(repo.statusUpdates))
	}
}

func TestReserveStatusWriteExhaustionKeepsStockCommitted(t *testing.T) {
	items := []OrderItem{{RecordID: "recItem1", StockLinks: []string{"recStock1"}, Qty: 1}}
	svc, repo, inventory, snapshots := newReserveFixture(t, items,
		&stocks.Stock{RecordID: "recStock1", SKU: "SKU-1", Quantity: 5, Reserved: 0, Available: 5},
	)
	transient := pkgerrors.New(pkgerrors.CodeDependency, "store unavailable")
	repo.statusErrs = []error{transient, transient, transient}

	_, err := svc.Reserve(context.Background(), "recOrder")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency failure after exhaustion, got %v", err)
	}
	if len(inventory.allocations) != 1 {
		t.Fatalf("committed stock holds must stay, got %+v", inventory.allocations)
	}
	if !containsKind(snapshots.invalidated, KindOrders) {
		t.Fatalf("snapshots must be invalidated even on exhaustion, got %v", snapshots.invalidated)
	}
	if !errors.Is(err, transient) {
		t.Fatalf("expected last attempt error in chain, got %v", err)
	}
}

func TestCreateSkipsUnknownSKUsAndBadQuantities(t *testing.T) {
	repo := &fakeRepo{}
	inventory := &fakeInventory{bySKU: map[string]*stocks.Stock{
		"SKU-1": {RecordID: "recStock1", SKU: "SKU-1"},
	}}
	snapshots := &fakeSnapshots{}
	svc, err := NewService(repo, inventory, snapshots, fastRetry())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	order, err := svc.Create(context.Background(), CreateOrderInput{
		CustomerID: "cust-1",
		Items: []CreateOrderItemInput{
			{SKU: "SKU-1", Qty: 2},
			{SKU: "SKU-UNKNOWN", Qty: 1},
			{SKU: "SKU-1", Qty: 0},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(repo.items[order.RecordID]) != 1 {
		t.Fatalf("expected only the valid line persisted, got %+v", repo.items)
	}
	if !containsKind(snapshots.invalidated, KindOrderItems) {
		t.Fatalf("expected item snapshot invalidated, got %v", snapshots.invalidated)
	}
}

func TestCreateRejectsMissingCustomer(t *testing.T) {
	svc, _, _, _ := newReserveFixture(t, nil)
	_, err := svc.Create(context.Background(), CreateOrderInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newReserveFixture(t, nil)
	err := svc.UpdateStatus(context.Background(), "recOrder", enums.OrderStatus("Vanished"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
