package enums

// BackorderStatus tracks unmet demand records.
type BackorderStatus string

const (
	BackorderStatusPending   = BackorderStatus("Pending")
	BackorderStatusFulfilled = BackorderStatus("Fulfilled")
	BackorderStatusCancelled = BackorderStatus("Cancelled")
)

// String implements fmt.Stringer.
func (b BackorderStatus) String() string {
	return string(b)
}
