package stocks

import (
	"context"
	"fmt"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
)

const (
	// DefaultActor stamps audit columns when no caller identity is supplied.
	DefaultActor = "System"

	// KindStocks and KindReceipts name the cached collection snapshots.
	KindStocks   = cache.Kind(airtable.TableStocks)
	KindReceipts = cache.Kind(airtable.TableGoodReceipts)
)

type service struct {
	repo      Repository
	snapshots Snapshots
}

// NewService builds the inventory service.
func NewService(repo Repository, snapshots Snapshots) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stocks repository required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	return &service{repo: repo, snapshots: snapshots}, nil
}

func (s *service) List(ctx context.Context, refresh bool) ([]Stock, error) {
	data, err := s.snapshots.Read(ctx, KindStocks, refresh, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]Stock), nil
}

func (s *service) Get(ctx context.Context, stockID string) (*Stock, error) {
	if stockID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock id required")
	}
	return s.repo.Get(ctx, stockID)
}

func (s *service) ReceiveGoods(ctx context.Context, input GoodsReceiptInput) (*GoodsReceiptResult, error) {
	if input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.ReceivedBy == "" {
		input.ReceivedBy = DefaultActor
	}

	stock, err := s.repo.FindBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sku not found").
			WithDetails(map[string]any{"sku": input.SKU})
	}

	receipt, err := s.repo.CreateReceipt(ctx, stock.RecordID, input)
	if err != nil {
		return nil, err
	}

	// Received units land in add_stock as pending inbound quantity; a
	// downstream confirmation step folds them into quantity.
	if err := s.repo.SetInbound(ctx, stock.RecordID, stock.AddStock+input.Quantity, input.ReceivedBy); err != nil {
		return nil, err
	}

	s.snapshots.Invalidate(KindStocks, KindReceipts)

	return &GoodsReceiptResult{
		ReceiptID: receipt.RecordID,
		SKU:       input.SKU,
		Quantity:  input.Quantity,
		Location:  input.Location,
		Rack:      input.Rack,
	}, nil
}

func (s *service) ListReceipts(ctx context.Context, refresh bool) ([]GoodsReceipt, error) {
	data, err := s.snapshots.Read(ctx, KindReceipts, refresh, func(ctx context.Context) (any, error) {
		return s.repo.ListReceipts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.([]GoodsReceipt), nil
}
