package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

type repository struct {
	store *airtable.Client
}

// NewRepository builds an orders repository bound to the record store.
func NewRepository(store *airtable.Client) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, input CreateOrderInput, actor string) (*Order, error) {
	fields := airtable.Fields{
		"customer_email": input.CustomerEmail,
		"customer_id":    input.CustomerID,
		"priority":       input.Priority.String(),
		"status":         enums.OrderStatusPending.String(),
	}.With(airtable.CreateAudit(actor, time.Now()))
	record, err := r.store.Create(ctx, airtable.TableOrders, fields)
	if err != nil {
		return nil, err
	}
	order := orderFromRecord(*record)
	return &order, nil
}

func (r *repository) CreateItem(ctx context.Context, orderRecordID, stockRecordID string, qty int, actor string) (string, error) {
	fields := airtable.Fields{
		"order_id": []string{orderRecordID},
		"sku":      []string{stockRecordID},
		"qty":      qty,
	}.With(airtable.CreateAudit(actor, time.Now()))
	record, err := r.store.Create(ctx, airtable.TableOrderItems, fields)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	records, err := r.store.List(ctx, airtable.TableOrders, airtable.ListOptions{
		SortField:     "created_at",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(records))
	for _, record := range records {
		out = append(out, orderFromRecord(record))
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, recordID string) (*Order, error) {
	record, err := r.store.Get(ctx, airtable.TableOrders, recordID)
	if err != nil {
		return nil, err
	}
	order := orderFromRecord(*record)
	return &order, nil
}

func (r *repository) ListItems(ctx context.Context, orderRecordID string) ([]OrderItem, error) {
	records, err := r.store.List(ctx, airtable.TableOrderItems, airtable.ListOptions{})
	if err != nil {
		return nil, err
	}
	var out []OrderItem
	for _, record := range records {
		item := itemFromRecord(record)
		for _, link := range item.OrderLinks {
			if link == orderRecordID {
				out = append(out, item)
				break
			}
		}
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, recordID string, status enums.OrderStatus, actor string) error {
	fields := airtable.Fields{
		"status": status.String(),
	}.With(airtable.UpdateAudit(actor, time.Now()))
	_, err := r.store.Patch(ctx, airtable.TableOrders, recordID, fields)
	return err
}

func (r *repository) MarkItemCancelled(ctx context.Context, itemRecordID, actor string) error {
	fields := airtable.Fields{
		"cancelled": true,
	}.With(airtable.UpdateAudit(actor, time.Now()))
	_, err := r.store.Patch(ctx, airtable.TableOrderItems, itemRecordID, fields)
	return err
}

func (r *repository) CreateBackorder(ctx context.Context, input BackorderInput) (string, error) {
	fields := airtable.Fields{
		"original_order_id": []string{input.OrderRecordID},
		"sku_code":          input.SKU,
		"requested_qty":     input.RequestedQty,
		"available_qty":     input.AvailableQty,
		"fulfilled_qty":     0,
		"status":            enums.BackorderStatusPending.String(),
	}.With(airtable.CreateAudit(input.Actor, time.Now()))
	if input.StockRecordID != "" {
		fields["link_sku"] = []string{input.StockRecordID}
	}
	record, err := r.store.Create(ctx, airtable.TableBackorders, fields)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

func orderFromRecord(record airtable.Record) Order {
	f := record.Fields
	return Order{
		RecordID:      record.ID,
		CustomerID:    f.Str("customer_id"),
		CustomerEmail: f.Str("customer_email"),
		Priority:      enums.OrderPriority(f.Str("priority")),
		Status:        enums.OrderStatus(f.Str("status")),
		ETA:           f.Str("eta"),
		CreatedAt:     f.Str("created_at"),
		UpdatedAt:     f.Str("updated_at"),
	}
}

func itemFromRecord(record airtable.Record) OrderItem {
	f := record.Fields
	return OrderItem{
		RecordID:   record.ID,
		OrderLinks: f.StrSlice("order_id"),
		StockLinks: f.StrSlice("sku"),
		Qty:        f.Int("qty"),
		Picked:     f.Bool("picked"),
		Cancelled:  f.Bool("cancelled"),
	}
}
