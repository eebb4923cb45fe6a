package transfers

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

type repository struct {
	store *airtable.Client
}

// NewRepository builds a transfers repository bound to the record store.
func NewRepository(store *airtable.Client) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, input CreateTransferInput, status enums.TransferStatus) (*Transfer, error) {
	fields := airtable.Fields{
		"from_location": input.FromLocation,
		"to_location":   input.ToLocation,
		"from_rack":     input.FromRack,
		"to_rack":       input.ToRack,
		"sku":           input.SKU,
		"quantity":      input.Quantity,
		"status":        status.String(),
		"requested_by":  input.RequestedBy,
	}.With(airtable.CreateAudit(input.RequestedBy, time.Now()))
	record, err := r.store.Create(ctx, airtable.TableStockTransfers, fields)
	if err != nil {
		return nil, err
	}
	transfer := transferFromRecord(*record)
	return &transfer, nil
}

func (r *repository) Get(ctx context.Context, recordID string) (*Transfer, error) {
	record, err := r.store.Get(ctx, airtable.TableStockTransfers, recordID)
	if err != nil {
		return nil, err
	}
	transfer := transferFromRecord(*record)
	return &transfer, nil
}

func (r *repository) List(ctx context.Context) ([]Transfer, error) {
	records, err := r.store.List(ctx, airtable.TableStockTransfers, airtable.ListOptions{
		SortField:     "created_at",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := make([]Transfer, 0, len(records))
	for _, record := range records {
		out = append(out, transferFromRecord(record))
	}
	return out, nil
}

func (r *repository) UpdateApproval(ctx context.Context, recordID string, status enums.TransferStatus, approvedBy string) error {
	fields := airtable.Fields{
		"status":      status.String(),
		"approved_by": approvedBy,
	}.With(airtable.UpdateAudit(approvedBy, time.Now()))
	_, err := r.store.Patch(ctx, airtable.TableStockTransfers, recordID, fields)
	return err
}

func transferFromRecord(record airtable.Record) Transfer {
	f := record.Fields
	return Transfer{
		RecordID:     record.ID,
		SKU:          f.Str("sku"),
		FromLocation: f.Str("from_location"),
		FromRack:     f.Str("from_rack"),
		ToLocation:   f.Str("to_location"),
		ToRack:       f.Str("to_rack"),
		Quantity:     f.Int("quantity"),
		Status:       enums.TransferStatus(f.Str("status")),
		RequestedBy:  f.Str("requested_by"),
		ApprovedBy:   f.Str("approved_by"),
	}
}
