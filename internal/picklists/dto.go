package picklists

import (
	"github.com/angelmondragon/warehouse-backend/pkg/enums"
)

// Picklist is the typed form of a Picklists record.
type Picklist struct {
	RecordID   string               `json:"picklist_id"`
	OrderLinks []string             `json:"order_links"`
	Status     enums.PicklistStatus `json:"status"`
	AssignedTo string               `json:"assigned_to,omitempty"`
	CreatedAt  string               `json:"created_at,omitempty"`
}

// Route is the pick path through the warehouse for one picklist.
type Route struct {
	PicklistID string   `json:"picklist_id"`
	Stops      []string `json:"optimized_route"`
}

// QRCode carries the scannable payload printed on a picklist sheet.
type QRCode struct {
	PicklistID string `json:"picklist_id"`
	Data       string `json:"qr_data"`
}
