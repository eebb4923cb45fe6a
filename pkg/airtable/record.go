package airtable

import (
	"strings"
	"time"
)

// Table names in the warehouse base.
const (
	TableOrders         = "Orders"
	TableOrderItems     = "Order_Items"
	TableStocks         = "Stocks"
	TableStockTransfers = "Stock_Transfers"
	TableBackorders     = "Backorders"
	TablePicklists      = "Picklists"
	TableReports        = "Reports"
	TableExceptions     = "Exceptions"
	TableNotifications  = "Notifications"
	TableAuditLogs      = "AuditLogs"
	TableGoodReceipts   = "Good_Receipts"
)

// Fields is the loosely-typed payload the store sends and accepts. Internal
// packages convert it to typed structs once at the boundary.
type Fields map[string]any

// Record is a single row in a store table.
type Record struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Fields) Str(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Int reads a numeric field. Airtable numbers decode as float64.
func (f Fields) Int(key string) int {
	switch v := f[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func (f Fields) Bool(key string) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return false
}

// StrSlice reads a linked-record field, which the store returns as an array
// of record ids.
func (f Fields) StrSlice(key string) []string {
	raw, ok := f[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// FormulaEq builds a {field}='value' filter formula with the value's single
// quotes escaped.
func FormulaEq(field, value string) string {
	escaped := strings.ReplaceAll(value, "'", "\\'")
	return "{" + field + "}='" + escaped + "'"
}

// CreateAudit stamps the audit columns every table carries on insert.
func CreateAudit(actor string, now time.Time) Fields {
	ts := now.UTC().Format(time.RFC3339)
	return Fields{
		"created_at": ts,
		"created_by": actor,
		"updated_at": ts,
		"updated_by": actor,
	}
}

// UpdateAudit stamps the audit columns touched on every patch.
func UpdateAudit(actor string, now time.Time) Fields {
	ts := now.UTC().Format(time.RFC3339)
	return Fields{
		"updated_at": ts,
		"updated_by": actor,
	}
}

// With merges other into a copy of f, other winning on key collisions.
func (f Fields) With(other Fields) Fields {
	merged := make(Fields, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
