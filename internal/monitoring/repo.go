package monitoring

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
)

type repository struct {
	store *airtable.Client
}

// NewRepository builds a monitoring repository bound to the record store.
func NewRepository(store *airtable.Client) Repository {
	return &repository{store: store}
}

func (r *repository) ListExceptions(ctx context.Context) ([]Exception, error) {
	records, err := r.store.List(ctx, airtable.TableExceptions, airtable.ListOptions{
		SortField:     "created_at",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := make([]Exception, 0, len(records))
	for _, record := range records {
		f := record.Fields
		out = append(out, Exception{
			RecordID:     record.ID,
			RelatedID:    f.Str("related_id"),
			ErrorType:    f.Str("error_type"),
			ErrorMessage: f.Str("error_message"),
			Severity:     f.Str("severity"),
			Status:       f.Str("status"),
			AssignedTo:   f.Str("assigned_to"),
			CreatedAt:    f.Str("created_at"),
		})
	}
	return out, nil
}

func (r *repository) ListAuditLogs(ctx context.Context) ([]AuditLog, error) {
	records, err := r.store.List(ctx, airtable.TableAuditLogs, airtable.ListOptions{
		SortField:     "created_at",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := make([]AuditLog, 0, len(records))
	for _, record := range records {
		f := record.Fields
		out = append(out, AuditLog{
			RecordID:    record.ID,
			Action:      f.Str("action"),
			TableName:   f.Str("table_name"),
			TargetID:    f.Str("target_id"),
			PerformedBy: f.Str("performed_by"),
			CreatedAt:   f.Str("created_at"),
		})
	}
	return out, nil
}

func (r *repository) ListBackorders(ctx context.Context) ([]Backorder, error) {
	records, err := r.store.List(ctx, airtable.TableBackorders, airtable.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]Backorder, 0, len(records))
	for _, record := range records {
		f := record.Fields
		out = append(out, Backorder{
			RecordID:     record.ID,
			OrderLinks:   f.StrSlice("original_order_id"),
			SKU:          f.Str("sku_code"),
			RequestedQty: f.Int("requested_qty"),
			AvailableQty: f.Int("available_qty"),
			FulfilledQty: f.Int("fulfilled_qty"),
			Status:       f.Str("status"),
			CreatedAt:    f.Str("created_at"),
		})
	}
	return out, nil
}

func (r *repository) ListNotifications(ctx context.Context) ([]Notification, error) {
	records, err := r.store.List(ctx, airtable.TableNotifications, airtable.ListOptions{
		SortField:     "created_at",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(records))
	for _, record := range records {
		f := record.Fields
		out = append(out, Notification{
			RecordID:  record.ID,
			Type:      f.Str("notification_type"),
			Recipient: f.Str("recipient"),
			Message:   f.Str("message"),
			RelatedID: f.Str("related_id"),
			Status:    f.Str("status"),
			CreatedAt: f.Str("created_at"),
		})
	}
	return out, nil
}

func (r *repository) CreateException(ctx context.Context, input ExceptionInput) (string, error) {
	actor := input.Actor
	if actor == "" {
		actor = "System"
	}
	fields := airtable.Fields{
		"related_id":    input.RelatedID,
		"error_type":    input.ErrorType,
		"error_message": input.ErrorMessage,
		"severity":      input.Severity,
		"status":        "Open",
	}.With(airtable.CreateAudit(actor, time.Now()))
	record, err := r.store.Create(ctx, airtable.TableExceptions, fields)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *repository) CreateNotification(ctx context.Context, input NotificationInput) (string, error) {
	actor := input.Actor
	if actor == "" {
		actor = "System"
	}
	fields := airtable.Fields{
		"notification_type": input.Type,
		"recipient":         input.Recipient,
		"message":           input.Message,
		"related_id":        input.RelatedID,
		"status":            "Pending",
	}.With(airtable.CreateAudit(actor, time.Now()))
	record, err := r.store.Create(ctx, airtable.TableNotifications, fields)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *repository) CountOrders(ctx context.Context) (int, error) {
	records, err := r.store.List(ctx, airtable.TableOrders, airtable.ListOptions{})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
