package stocks

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
)

type repository struct {
	store *airtable.Client
}

// NewRepository builds a stocks repository bound to the record store.
func NewRepository(store *airtable.Client) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]Stock, error) {
	records, err := r.store.List(ctx, airtable.TableStocks, airtable.ListOptions{SortField: "sku"})
	if err != nil {
		return nil, err
	}
	out := make([]Stock, 0, len(records))
	for _, record := range records {
		out = append(out, stockFromRecord(record))
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, recordID string) (*Stock, error) {
	record, err := r.store.Get(ctx, airtable.TableStocks, recordID)
	if err != nil {
		return nil, err
	}
	stock := stockFromRecord(*record)
	return &stock, nil
}

func (r *repository) FindBySKU(ctx context.Context, sku string) (*Stock, error) {
	records, err := r.store.List(ctx, airtable.TableStocks, airtable.ListOptions{
		Filter: airtable.FormulaEq("sku", sku),
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	stock := stockFromRecord(records[0])
	return &stock, nil
}

func (r *repository) UpdateAllocation(ctx context.Context, recordID string, reserved, available int, actor string) error {
	fields := airtable.Fields{
		"reserved":  reserved,
		"available": available,
	}.With(airtable.UpdateAudit(actor, time.Now()))
	_, err := r.store.Patch(ctx, airtable.TableStocks, recordID, fields)
	return err
}

func (r *repository) UpdateLocation(ctx context.Context, recordID, location, rack, actor string) error {
	fields := airtable.Fields{
		"location": location,
		"rack":     rack,
	}.With(airtable.UpdateAudit(actor, time.Now()))
	_, err := r.store.Patch(ctx, airtable.TableStocks, recordID, fields)
	return err
}

func (r *repository) SetInbound(ctx context.Context, recordID string, addStock int, actor string) error {
	fields := airtable.Fields{
		"add_stock": addStock,
	}.With(airtable.UpdateAudit(actor, time.Now()))
	_, err := r.store.Patch(ctx, airtable.TableStocks, recordID, fields)
	return err
}

func (r *repository) CreateReceipt(ctx context.Context, stockRecordID string, input GoodsReceiptInput) (*GoodsReceipt, error) {
	fields := airtable.Fields{
		"link_sku":    []string{stockRecordID},
		"quantity":    input.Quantity,
		"location":    input.Location,
		"rack":        input.Rack,
		"received_by": input.ReceivedBy,
		"status":      "Completed",
	}.With(airtable.CreateAudit(input.ReceivedBy, time.Now()))
	record, err := r.store.Create(ctx, airtable.TableGoodReceipts, fields)
	if err != nil {
		return nil, err
	}
	receipt := receiptFromRecord(*record)
	return &receipt, nil
}

func (r *repository) ListReceipts(ctx context.Context) ([]GoodsReceipt, error) {
	records, err := r.store.List(ctx, airtable.TableGoodReceipts, airtable.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]GoodsReceipt, 0, len(records))
	for _, record := range records {
		out = append(out, receiptFromRecord(record))
	}
	return out, nil
}

func stockFromRecord(record airtable.Record) Stock {
	f := record.Fields
	quantity := f.Int("quantity")
	reserved := f.Int("reserved")
	available := f.Int("available")
	if !f.Has("available") {
		available = quantity - reserved
	}
	return Stock{
		RecordID:  record.ID,
		SKU:       f.Str("sku"),
		Location:  f.Str("location"),
		Rack:      f.Str("rack"),
		Quantity:  quantity,
		Reserved:  reserved,
		Available: available,
		AddStock:  f.Int("add_stock"),
	}
}

func receiptFromRecord(record airtable.Record) GoodsReceipt {
	f := record.Fields
	return GoodsReceipt{
		RecordID:   record.ID,
		StockLinks: f.StrSlice("link_sku"),
		Quantity:   f.Int("quantity"),
		Location:   f.Str("location"),
		Rack:       f.Str("rack"),
		ReceivedBy: f.Str("received_by"),
		Status:     f.Str("status"),
	}
}
