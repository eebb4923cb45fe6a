package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
	"go.uber.org/multierr"
)

const defaultFailedOrderRetentionDays = 7

type failedOrderStore interface {
	List(ctx context.Context) ([]orders.Order, error)
	ListItems(ctx context.Context, orderRecordID string) ([]orders.OrderItem, error)
	MarkItemCancelled(ctx context.Context, itemRecordID, actor string) error
}

// FailedOrderCleanupJobParams configure the failed-order janitor.
type FailedOrderCleanupJobParams struct {
	Logger        *logger.Logger
	Orders        failedOrderStore
	Snapshots     snapshotInvalidator
	RetentionDays int
}

// NewFailedOrderCleanupJob builds the job that flags the line items of old
// failed orders as cancelled so pickers stop seeing them.
func NewFailedOrderCleanupJob(params FailedOrderCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders store required")
	}
	if params.Snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	days := params.RetentionDays
	if days <= 0 {
		days = defaultFailedOrderRetentionDays
	}
	return &failedOrderCleanupJob{
		logg:      params.Logger,
		orders:    params.Orders,
		snapshots: params.Snapshots,
		days:      days,
		now:       time.Now,
	}, nil
}

type failedOrderCleanupJob struct {
	logg      *logger.Logger
	orders    failedOrderStore
	snapshots snapshotInvalidator
	days      int
	now       func() time.Time
}

func (j *failedOrderCleanupJob) Name() string { return "failed-order-cleanup" }

func (j *failedOrderCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.days) * 24 * time.Hour)
	all, err := j.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	var errs []error
	cleaned := 0
	for _, order := range all {
		if order.Status != enums.OrderStatusFailed {
			continue
		}
		ts, ok := parseTimestamp(order.CreatedAt)
		if !ok || ts.After(cutoff) {
			continue
		}
		if err := j.cancelItems(ctx, order.RecordID); err != nil {
			errs = append(errs, err)
			continue
		}
		cleaned++
	}

	if cleaned > 0 {
		j.snapshots.Invalidate(orders.KindOrderItems)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": cleaned})
	j.logg.Info(logCtx, "failed order cleanup loop complete")
	return multierr.Combine(errs...)
}

func (j *failedOrderCleanupJob) cancelItems(ctx context.Context, orderID string) error {
	items, err := j.orders.ListItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("list items for %s: %w", orderID, err)
	}
	for _, item := range items {
		if item.Cancelled {
			continue
		}
		if err := j.orders.MarkItemCancelled(ctx, item.RecordID, "System"); err != nil {
			return fmt.Errorf("cancel item %s: %w", item.RecordID, err)
		}
	}
	return nil
}
