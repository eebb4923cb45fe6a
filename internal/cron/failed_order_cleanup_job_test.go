package cron

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/warehouse-backend/internal/orders"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

func TestFailedOrderCleanupJobCancelsOldItems(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	store := &fakeOrderStore{
		orders: []orders.Order{
			{RecordID: "recOldFail", Status: enums.OrderStatusFailed, CreatedAt: "2026-03-01T09:00:00Z"},
			{RecordID: "recNewFail", Status: enums.OrderStatusFailed, CreatedAt: "2026-03-19T09:00:00Z"},
			{RecordID: "recShipped", Status: enums.OrderStatusShipped, CreatedAt: "2026-02-01T09:00:00Z"},
		},
		itemsByOrder: map[string][]orders.OrderItem{
			"recOldFail": {
				{RecordID: "recItem1"},
				{RecordID: "recItem2", Cancelled: true},
				{RecordID: "recItem3"},
			},
		},
	}
	invalidator := &fakeInvalidator{}

	job, err := NewFailedOrderCleanupJob(FailedOrderCleanupJobParams{
		Logger:        testLogger(),
		Orders:        store,
		Snapshots:     invalidator,
		RetentionDays: 7,
	})
	if err != nil {
		t.Fatalf("NewFailedOrderCleanupJob: %v", err)
	}
	job.(*failedOrderCleanupJob).now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.cancelled) != 2 {
		t.Fatalf("expected the 2 live items cancelled, got %v", store.cancelled)
	}
	if store.cancelled[0] != "recItem1" || store.cancelled[1] != "recItem3" {
		t.Fatalf("unexpected cancellations: %v", store.cancelled)
	}
	if len(invalidator.kinds) == 0 {
		t.Fatal("expected item snapshot invalidated")
	}
}

func TestFailedOrderCleanupJobSkipsRecentFailures(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	store := &fakeOrderStore{
		orders: []orders.Order{
			{RecordID: "recNewFail", Status: enums.OrderStatusFailed, CreatedAt: "2026-03-19T09:00:00Z"},
		},
	}

	job, err := NewFailedOrderCleanupJob(FailedOrderCleanupJobParams{
		Logger:    testLogger(),
		Orders:    store,
		Snapshots: &fakeInvalidator{},
	})
	if err != nil {
		t.Fatalf("NewFailedOrderCleanupJob: %v", err)
	}
	job.(*failedOrderCleanupJob).now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.cancelled) != 0 {
		t.Fatalf("recent failures must be untouched, got %v", store.cancelled)
	}
}
