package reports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/warehouse-backend/internal/stocks"
	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
)

const KindReports = cache.Kind(airtable.TableReports)

// ReportTypeReconciliation names the stored stock reconciliation report.
const ReportTypeReconciliation = "Stock Reconciliation"

type service struct {
	repo      Repository
	inventory Inventory
	snapshots Snapshots
}

// NewService builds the reports service.
func NewService(repo Repository, inventory Inventory, snapshots Snapshots) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	return &service{repo: repo, inventory: inventory, snapshots: snapshots}, nil
}

func (s *service) List(ctx context.Context, refresh bool) ([]Report, error) {
	data, err := s.snapshots.Read(ctx, KindReports, refresh, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Report), nil
}

// Reconcile snapshots every SKU's quantity/available/reserved counters and
// stores the result as a report record. Reads go straight to the store; a
// reconciliation against a cached listing would be worthless.
func (s *service) Reconcile(ctx context.Context) (*ReconciliationResult, error) {
	inventory, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]ReconciliationLine, 0, len(inventory))
	for _, stock := range inventory {
		lines = append(lines, ReconciliationLine{
			SKU:       stock.SKU,
			Quantity:  stock.Quantity,
			Available: stock.Available,
			Reserved:  stock.Reserved,
		})
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode reconciliation report")
	}

	reportID, err := s.repo.Create(ctx, ReportTypeReconciliation, string(payload), stocks.DefaultActor)
	if err != nil {
		return nil, err
	}

	s.snapshots.Invalidate(KindReports)

	return &ReconciliationResult{
		ReportID:   reportID,
		Report:     lines,
		TotalItems: len(lines),
	}, nil
}
