package reports

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
)

type createdReport struct {
	reportType string
	data       string
	actor      string
}

type fakeRepo struct {
	reports []Report
	created []createdReport
}

func (r *fakeRepo) List(ctx context.Context) ([]Report, error) { return r.reports, nil }

func (r *fakeRepo) Create(ctx context.Context, reportType, data, actor string) (string, error) {
	r.created = append(r.created, createdReport{reportType: reportType, data: data, actor: actor})
	return "recReport", nil
}

type fakeInventory struct {
	stocks    []stocks.Stock
	listCalls int
}

func (i *fakeInventory) List(ctx context.Context) ([]stocks.Stock, error) {
	i.listCalls++
	return i.stocks, nil
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

func TestReconcileStoresAllCounters(t *testing.T) {
	repo := &fakeRepo{}
	inventory := &fakeInventory{stocks: []stocks.Stock{
		{SKU: "SKU-1", Quantity: 100, Reserved: 30, Available: 70},
		{SKU: "SKU-2", Quantity: 5, Reserved: 5, Available: 0},
	}}
	snapshots := &fakeSnapshots{}
	svc, err := NewService(repo, inventory, snapshots)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if result.ReportID != "recReport" || result.TotalItems != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored report, got %d", len(repo.created))
	}
	stored := repo.created[0]
	if stored.reportType != ReportTypeReconciliation {
		t.Fatalf("unexpected report type: %q", stored.reportType)
	}

	var lines []ReconciliationLine
	if err := json.Unmarshal([]byte(stored.data), &lines); err != nil {
		t.Fatalf("stored payload must be valid json: %v", err)
	}
	if len(lines) != 2 || lines[1].SKU != "SKU-2" || lines[1].Available != 0 {
		t.Fatalf("unexpected payload: %+v", lines)
	}
	if len(snapshots.invalidated) != 1 || snapshots.invalidated[0] != KindReports {
		t.Fatalf("expected report snapshot invalidated, got %v", snapshots.invalidated)
	}
}

func TestReconcileEmptyInventory(t *testing.T) {
	repo := &fakeRepo{}
	svc, err := NewService(repo, &fakeInventory{}, &fakeSnapshots{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if result.TotalItems != 0 || len(result.Report) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(repo.created) != 1 {
		t.Fatal("an empty reconciliation is still stored")
	}
}
