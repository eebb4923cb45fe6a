package stocks

// Stock is the typed form of a Stocks record. Available is stored redundantly
// by the base and treated as the source of truth when present; quantity minus
// reserved is the fallback for legacy rows that never set it.
type Stock struct {
	RecordID  string `json:"stock_id"`
	SKU       string `json:"sku"`
	Location  string `json:"location"`
	Rack      string `json:"rack"`
	Quantity  int    `json:"quantity"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
	AddStock  int    `json:"add_stock"`
}

// GoodsReceiptInput captures an inbound delivery against an existing SKU.
type GoodsReceiptInput struct {
	SKU        string
	Quantity   int
	Location   string
	Rack       string
	ReceivedBy string
}

// GoodsReceipt is the typed form of a Good_Receipts record.
type GoodsReceipt struct {
	RecordID   string   `json:"receipt_id"`
	StockLinks []string `json:"stock_links,omitempty"`
	Quantity   int      `json:"quantity"`
	Location   string   `json:"location"`
	Rack       string   `json:"rack"`
	ReceivedBy string   `json:"received_by"`
	Status     string   `json:"status"`
}

// GoodsReceiptResult is returned after a receipt is booked.
type GoodsReceiptResult struct {
	ReceiptID string `json:"receipt_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Location  string `json:"location"`
	Rack      string `json:"rack"`
}
