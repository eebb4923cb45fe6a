package reports

// Report is the typed form of a Reports record. Data holds the serialized
// report body as the base stores it.
type Report struct {
	RecordID    string `json:"report_id"`
	ReportType  string `json:"report_type"`
	Data        string `json:"report_data"`
	GeneratedBy string `json:"generated_by"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ReconciliationLine is one SKU's counters in a stock reconciliation.
type ReconciliationLine struct {
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Available int    `json:"available"`
	Reserved  int    `json:"reserved"`
}

// ReconciliationResult is returned after a reconciliation run is stored.
type ReconciliationResult struct {
	ReportID   string               `json:"report_id"`
	Report     []ReconciliationLine `json:"report"`
	TotalItems int                  `json:"total_items"`
}
