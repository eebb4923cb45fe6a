package transfers

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

const KindTransfers = cache.Kind(airtable.TableStockTransfers)

// DefaultAutoApproveLimit is the largest quantity completed synchronously
// without manual sign-off.
const DefaultAutoApproveLimit = 30

type service struct {
	repo             Repository
	inventory        Inventory
	snapshots        Snapshots
	retry            retry.Policy
	autoApproveLimit int
}

// NewService builds the transfer service with the required dependencies.
func NewService(repo Repository, inventory Inventory, snapshots Snapshots, policy retry.Policy, autoApproveLimit int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transfers repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	if autoApproveLimit <= 0 {
		autoApproveLimit = DefaultAutoApproveLimit
	}
	return &service{
		repo:             repo,
		inventory:        inventory,
		snapshots:        snapshots,
		retry:            policy,
		autoApproveLimit: autoApproveLimit,
	}, nil
}

// Create validates the proposed move against the SKU's current registration
// and either completes it synchronously under the auto-approve limit or
// parks it Pending for manual approval. Validation failures write nothing.
func (s *service) Create(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	if input.FromLocation == input.ToLocation && input.FromRack == input.ToRack {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source and destination are identical")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.RequestedBy == "" {
		input.RequestedBy = stocks.DefaultActor
	}

	stock, err := s.inventory.FindBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku not found in inventory").
			WithDetails(map[string]any{"sku": input.SKU})
	}
	if stock.Location != input.FromLocation || stock.Rack != input.FromRack {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source does not match the sku's registered location").
			WithDetails(map[string]any{
				"sku":                 input.SKU,
				"registered_location": stock.Location,
				"registered_rack":     stock.Rack,
			})
	}
	if input.Quantity > stock.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds available stock").
			WithDetails(map[string]any{
				"sku":       input.SKU,
				"requested": input.Quantity,
				"available": stock.Available,
			})
	}

	status := enums.TransferStatusPending
	if input.Quantity <= s.autoApproveLimit {
		status = enums.TransferStatusCompleted
	}

	transfer, err := s.repo.Create(ctx, input, status)
	if err != nil {
		return nil, err
	}

	stockUpdated := false
	if status == enums.TransferStatusCompleted {
		err = retry.Do(ctx, s.retry, func(ctx context.Context) error {
			return s.inventory.UpdateLocation(ctx, stock.RecordID, input.ToLocation, input.ToRack, input.RequestedBy)
		})
		if err != nil {
			s.snapshots.Invalidate(KindTransfers)
			return nil, err
		}
		stockUpdated = true
	}

	s.snapshots.Invalidate(KindTransfers, stocks.KindStocks)

	return &TransferResult{
		TransferID:   transfer.RecordID,
		Status:       status,
		StockUpdated: stockUpdated,
	}, nil
}

// Approve re-validates availability at approval time before committing the
// move. The re-read is the only concurrency guard: availability may have
// drained since creation, and two simultaneous approvals of different
// transfers on the same SKU can still race; the store offers no lock to
// close that gap.
func (s *service) Approve(ctx context.Context, transferID, approvedBy string) (*TransferResult, error) {
	if transferID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transfer id required")
	}
	if approvedBy == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "approver required")
	}

	transfer, err := s.repo.Get(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status != enums.TransferStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "transfer is not pending").
			WithDetails(map[string]any{
				"transfer_id": transferID,
				"status":      transfer.Status,
			})
	}

	stock, err := s.inventory.FindBySKU(ctx, transfer.SKU)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku no longer in inventory").
			WithDetails(map[string]any{"sku": transfer.SKU})
	}
	if transfer.Quantity > stock.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds available stock").
			WithDetails(map[string]any{
				"sku":       transfer.SKU,
				"requested": transfer.Quantity,
				"available": stock.Available,
			})
	}

	// The stock moves before the approval is recorded. If the approval
	// write then exhausts its retries the transfer stays Pending and the
	// approval can be re-run; the location patch is idempotent for the
	// same destination.
	err = retry.Do(ctx, s.retry, func(ctx context.Context) error {
		return s.inventory.UpdateLocation(ctx, stock.RecordID, transfer.ToLocation, transfer.ToRack, approvedBy)
	})
	if err != nil {
		s.snapshots.Invalidate(KindTransfers, stocks.KindStocks)
		return nil, err
	}
	err = retry.Do(ctx, s.retry, func(ctx context.Context) error {
		return s.repo.UpdateApproval(ctx, transferID, enums.TransferStatusCompleted, approvedBy)
	})

	s.snapshots.Invalidate(KindTransfers, stocks.KindStocks)

	if err != nil {
		return nil, err
	}
	return &TransferResult{
		TransferID:   transferID,
		Status:       enums.TransferStatusCompleted,
		StockUpdated: true,
	}, nil
}

func (s *service) List(ctx context.Context, refresh bool) ([]Transfer, error) {
	data, err := s.snapshots.Read(ctx, KindTransfers, refresh, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Transfer), nil
}
