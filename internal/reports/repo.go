package reports

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
)

type repository struct {
	store *airtable.Client
}

// NewRepository builds a reports repository bound to the record store.
func NewRepository(store *airtable.Client) Repository {
	return &repository{store: store}
}

func (r *repository) Create(ctx context.Context, reportType, data, actor string) (string, error) {
	fields := airtable.Fields{
		"report_type":  reportType,
		"report_data":  data,
		"generated_by": actor,
		"status":       "Generated",
	}.With(airtable.CreateAudit(actor, time.Now()))
	record, err := r.store.Create(ctx, airtable.TableReports, fields)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *repository) List(ctx context.Context) ([]Report, error) {
	records, err := r.store.List(ctx, airtable.TableReports, airtable.ListOptions{
		SortField:     "created_at",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := make([]Report, 0, len(records))
	for _, record := range records {
		f := record.Fields
		out = append(out, Report{
			RecordID:    record.ID,
			ReportType:  f.Str("report_type"),
			Data:        f.Str("report_data"),
			GeneratedBy: f.Str("generated_by"),
			Status:      f.Str("status"),
			CreatedAt:   f.Str("created_at"),
		})
	}
	return out, nil
}
