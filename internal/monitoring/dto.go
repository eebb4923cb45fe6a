package monitoring

// Exception is the typed form of an Exceptions record.
type Exception struct {
	RecordID     string `json:"exception_id"`
	RelatedID    string `json:"related_id"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
	Severity     string `json:"severity"`
	Status       string `json:"status"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ExceptionInput captures a new operational exception.
type ExceptionInput struct {
	RelatedID    string
	ErrorType    string
	ErrorMessage string
	Severity     string
	Actor        string
}

// AuditLog is the typed form of an AuditLogs record.
type AuditLog struct {
	RecordID    string `json:"audit_log_id"`
	Action      string `json:"action"`
	TableName   string `json:"table_name"`
	TargetID    string `json:"target_id"`
	PerformedBy string `json:"performed_by"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Backorder is the typed form of a Backorders record.
type Backorder struct {
	RecordID     string   `json:"backorder_id"`
	OrderLinks   []string `json:"original_order_id"`
	SKU          string   `json:"sku"`
	RequestedQty int      `json:"requested_qty"`
	AvailableQty int      `json:"available_qty"`
	FulfilledQty int      `json:"fulfilled_qty"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

// Notification is the typed form of a Notifications record.
type Notification struct {
	RecordID  string `json:"notification_id"`
	Type      string `json:"notification_type"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	RelatedID string `json:"related_id,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// NotificationInput captures a new outbound notification record. Delivery is
// handled by the automation chain watching the table.
type NotificationInput struct {
	Type      string
	Recipient string
	Message   string
	RelatedID string
	Actor     string
}

// Dashboard aggregates the operational counters shown on the ops screen.
type Dashboard struct {
	TotalOrders       int     `json:"total_orders"`
	TotalAuditLogs    int     `json:"total_audit_logs"`
	AvgProcessingTime int     `json:"avg_processing_time"`
	SuccessRate       float64 `json:"success_rate"`
}
