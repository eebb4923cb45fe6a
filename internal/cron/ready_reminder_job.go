package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/warehouse-backend/internal/monitoring"
	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
	"go.uber.org/multierr"
)

const defaultReadyReminderDays = 2

type orderLister interface {
	List(ctx context.Context) ([]orders.Order, error)
}

type notificationWriter interface {
	CreateNotification(ctx context.Context, input monitoring.NotificationInput) (string, error)
}

// ReadyReminderJobParams configure the uncollected-order reminder.
type ReadyReminderJobParams struct {
	Logger        *logger.Logger
	Orders        orderLister
	Notifications notificationWriter
	Snapshots     snapshotInvalidator
	ReminderDays  int
}

// NewReadyReminderJob builds the job that nudges customers whose orders have
// sat Ready without being collected or shipped.
func NewReadyReminderJob(params ReadyReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders store required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification writer required")
	}
	if params.Snapshots == nil {
		return nil, fmt.Errorf("snapshot cache required")
	}
	days := params.ReminderDays
	if days <= 0 {
		days = defaultReadyReminderDays
	}
	return &readyReminderJob{
		logg:          params.Logger,
		orders:        params.Orders,
		notifications: params.Notifications,
		snapshots:     params.Snapshots,
		days:          days,
		now:           time.Now,
	}, nil
}

type readyReminderJob struct {
	logg          *logger.Logger
	orders        orderLister
	notifications notificationWriter
	snapshots     snapshotInvalidator
	days          int
	now           func() time.Time
}

func (j *readyReminderJob) Name() string { return "ready-order-reminder" }

func (j *readyReminderJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.days) * 24 * time.Hour)
	all, err := j.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	var errs []error
	reminded := 0
	for _, order := range all {
		if order.Status != enums.OrderStatusReady {
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
		_, err := j.notifications.CreateNotification(ctx, monitoring.NotificationInput{
			Type:      "Ready Order Reminder",
			Recipient: order.CustomerEmail,
			Message:   fmt.Sprintf("order %s has been ready for over %d days", order.RecordID, j.days),
			RelatedID: order.RecordID,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("remind order %s: %w", order.RecordID, err))
			continue
		}
		reminded++
	}

	if reminded > 0 {
		j.snapshots.Invalidate(monitoring.KindNotifications)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": reminded})
	j.logg.Info(logCtx, "ready order reminder loop complete")
	return multierr.Combine(errs...)
}
