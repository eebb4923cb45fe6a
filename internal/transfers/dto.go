package transfers

import (
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

// Transfer is the typed form of a Stock_Transfers record.
type Transfer struct {
	RecordID     string               `json:"transfer_id"`
	SKU          string               `json:"sku"`
	FromLocation string               `json:"from_location"`
	FromRack     string               `json:"from_rack"`
	ToLocation   string               `json:"to_location"`
	ToRack       string               `json:"to_rack"`
	Quantity     int                  `json:"quantity"`
	Status       enums.TransferStatus `json:"status"`
	RequestedBy  string               `json:"requested_by"`
	ApprovedBy   string               `json:"approved_by,omitempty"`
}

// CreateTransferInput captures a proposed stock move. A transfer is a claim
// about current physical state: the source must match the SKU's registered
// location and rack.
type CreateTransferInput struct {
	SKU          string `json:"sku"`
	FromLocation string `json:"from_location"`
	FromRack     string `json:"from_rack"`
	ToLocation   string `json:"to_location"`
	ToRack       string `json:"to_rack"`
	Quantity     int    `json:"quantity"`
	RequestedBy  string `json:"requested_by"`
}

// TransferResult reports the transfer's resting state after create or approve.
type TransferResult struct {
	TransferID   string               `json:"transfer_id"`
	Status       enums.TransferStatus `json:"status"`
	StockUpdated bool                 `json:"stock_updated"`
}
