package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/warehouse-backend/pkg/airtable"
	"github.com/angelmondragon/warehouse-backend/pkg/config"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
)

func newStoreBackedRepo(t *testing.T, handler http.Handler) (Repository, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error")})
	store, err := airtable.NewClient(config.AirtableConfig{
		Token:   "pat-test",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, logg)
	require.NoError(t, err)
	return NewRepository(store), srv
}

func TestListItemsFiltersByOrderLinkClientSide(t *testing.T) {
	repo, _ := newStoreBackedRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The store cannot filter link columns, so the repo must not send a
		// formula and must scan the whole table itself.
		assert.Empty(t, r.URL.Query().Get("filterByFormula"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"records": []airtable.Record{
				{ID: "recItem1", Fields: airtable.Fields{"order_id": []any{"recOrderA"}, "sku": []any{"recStock1"}, "qty": float64(2)}},
				{ID: "recItem2", Fields: airtable.Fields{"order_id": []any{"recOrderB"}, "sku": []any{"recStock2"}, "qty": float64(1)}},
				{ID: "recItem3", Fields: airtable.Fields{"order_id": []any{"recOrderA"}, "qty": float64(4), "cancelled": true}},
			},
		})
	}))

	items, err := repo.ListItems(context.Background(), "recOrderA")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "recItem1", items[0].RecordID)
	assert.Equal(t, []string{"recStock1"}, items[0].StockLinks)
	assert.Equal(t, 2, items[0].Qty)
	assert.True(t, items[1].Cancelled)
	assert.Empty(t, items[1].StockLinks)
}

func TestCreateBackorderFields(t *testing.T) {
	var sent airtable.Fields
	repo, _ := newStoreBackedRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/Backorders", r.URL.Path)
		var body airtable.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sent = body.Fields
		body.ID = "recBO1"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))

	id, err := repo.CreateBackorder(context.Background(), BackorderInput{
		OrderRecordID: "recOrderA",
		StockRecordID: "recStock1",
		SKU:           "SKU-1",
		RequestedQty:  10,
		AvailableQty:  4,
		Actor:         "System",
	})
	require.NoError(t, err)
	assert.Equal(t, "recBO1", id)

	assert.Equal(t, []any{"recOrderA"}, sent["original_order_id"])
	assert.Equal(t, []any{"recStock1"}, sent["link_sku"])
	assert.Equal(t, "SKU-1", sent["sku_code"])
	assert.Equal(t, float64(10), sent["requested_qty"])
	assert.Equal(t, float64(4), sent["available_qty"])
	assert.Equal(t, float64(0), sent["fulfilled_qty"])
	assert.Equal(t, "Pending", sent["status"])
	assert.Equal(t, "System", sent["created_by"])
	assert.NotEmpty(t, sent["created_at"])
}

func TestCreateBackorderOmitsDanglingStockLink(t *testing.T) {
	var sent airtable.Fields
	repo, _ := newStoreBackedRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body airtable.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sent = body.Fields
		body.ID = "recBO2"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))

	_, err := repo.CreateBackorder(context.Background(), BackorderInput{
		OrderRecordID: "recOrderA",
		SKU:           "SKU-GONE",
		RequestedQty:  3,
		Actor:         "System",
	})
	require.NoError(t, err)
	_, hasLink := sent["link_sku"]
	assert.False(t, hasLink)
}

func TestOrderFromRecordMapping(t *testing.T) {
	order := orderFromRecord(airtable.Record{
		ID: "recOrder1",
		Fields: airtable.Fields{
			"customer_id":    "cust-1",
			"customer_email": "buyer@example.com",
			"priority":       "Urgent",
			"status":         "Reserved",
			"created_at":     "2026-03-01T10:00:00Z",
		},
	})

	assert.Equal(t, "recOrder1", order.RecordID)
	assert.Equal(t, "cust-1", order.CustomerID)
	assert.Equal(t, "Urgent", order.Priority.String())
	assert.Equal(t, "Reserved", order.Status.String())
	assert.Equal(t, "2026-03-01T10:00:00Z", order.CreatedAt)
}
