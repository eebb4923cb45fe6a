package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/warehouse-backend/internal/monitoring"
	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/pkg/cache"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
	"go.uber.org/multierr"
)

const defaultReservationTimeoutDays = 2

type staleOrderStore interface {
	List(ctx context.Context) ([]orders.Order, error)
	UpdateStatus(ctx context.Context, recordID string, status enums.OrderStatus, actor string) error
}

type exceptionWriter interface {
	CreateException(ctx context.Context, input monitoring.ExceptionInput) (string, error)
}

type snapshotInvalidator interface {
	Invalidate(kinds ...cache.Kind)
}

// ReservationTimeoutJobParams configure the stuck-reservation expirer.
type ReservationTimeoutJobParams struct {
	Logger      *logger.Logger
	Orders      staleOrderStore
	Exceptions  exceptionWriter
	Snapshots   snapshotInvalidator
	TimeoutDays int
}

// NewReservationTimeoutJob builds the job that expires orders stuck holding
// reserved stock and raises an exception for each.
func NewReservationTimeoutJob(params ReservationTimeoutJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders store required")
	}
	if params.Exceptions == nil {
		return nil, fmt.Errorf("exception writer required")
	}
	if params.Snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	days := params.TimeoutDays
	if days <= 0 {
		days = defaultReservationTimeoutDays
	}
	return &reservationTimeoutJob{
		logg:       params.Logger,
		orders:     params.Orders,
		exceptions: params.Exceptions,
		snapshots:  params.Snapshots,
		days:       days,
		now:        time.Now,
	}, nil
}

type reservationTimeoutJob struct {
	logg       *logger.Logger
	orders     staleOrderStore
	exceptions exceptionWriter
	snapshots  snapshotInvalidator
	days       int
	now        func() time.Time
}

func (j *reservationTimeoutJob) Name() string { return "reservation-timeout" }

func (j *reservationTimeoutJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.days) * 24 * time.Hour)
	all, err := j.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	var errs []error
	expired := 0
	for _, order := range all {
		if order.Status != enums.OrderStatusReserved && order.Status != enums.OrderStatusPicking {
			continue
		}
		stamp := order.UpdatedAt
		if stamp == "" {
			stamp = order.CreatedAt
		}
		ts, ok := parseTimestamp(stamp)
		if !ok || ts.After(cutoff) {
			continue
		}
		if err := j.expire(ctx, order); err != nil {
			errs = append(errs, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		j.snapshots.Invalidate(orders.KindOrders, monitoring.KindExceptions)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": expired})
	j.logg.Info(logCtx, "reservation timeout loop complete")
	return multierr.Combine(errs...)
}

func (j *reservationTimeoutJob) expire(ctx context.Context, order orders.Order) error {
	if err := j.orders.UpdateStatus(ctx, order.RecordID, enums.OrderStatusExpired, "System"); err != nil {
		return fmt.Errorf("expire order %s: %w", order.RecordID, err)
	}
	_, err := j.exceptions.CreateException(ctx, monitoring.ExceptionInput{
		RelatedID:    order.RecordID,
		ErrorType:    "Reservation Timeout",
		ErrorMessage: fmt.Sprintf("order held %s stock for more than %d days", order.Status, j.days),
		Severity:     "High",
	})
	if err != nil {
		return fmt.Errorf("record exception for %s: %w", order.RecordID, err)
	}
	return nil
}
