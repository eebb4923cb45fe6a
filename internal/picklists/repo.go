package picklists

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

type repository struct {
	store *airtable.Client
}

// NewRepository builds a picklists repository bound to the record store.
func NewRepository(store *airtable.Client) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]Picklist, error) {
	records, err := r.store.List(ctx, airtable.TablePicklists, airtable.ListOptions{
		SortField:     "created_at",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := make([]Picklist, 0, len(records))
	for _, record := range records {
		out = append(out, picklistFromRecord(record))
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, recordID string) (*Picklist, error) {
	record, err := r.store.Get(ctx, airtable.TablePicklists, recordID)
	if err != nil {
		return nil, err
	}
	picklist := picklistFromRecord(*record)
	return &picklist, nil
}

func (r *repository) UpdateStatus(ctx context.Context, recordID string, status enums.PicklistStatus, actor string) error {
	fields := airtable.Fields{
		"status": status.String(),
	}.With(airtable.UpdateAudit(actor, time.Now()))
	_, err := r.store.Patch(ctx, airtable.TablePicklists, recordID, fields)
	return err
}

func picklistFromRecord(record airtable.Record) Picklist {
	f := record.Fields
	return Picklist{
		RecordID:   record.ID,
		OrderLinks: f.StrSlice("order_id"),
		Status:     enums.PicklistStatus(f.Str("status")),
		AssignedTo: f.Str("assigned_to"),
		CreatedAt:  f.Str("created_at"),
	}
}
