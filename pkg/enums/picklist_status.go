package enums

import "fmt"

// PicklistStatus tracks warehouse picking progress for an order.
type PicklistStatus string

const (
	PicklistStatusPending    = PicklistStatus("Pending")
	PicklistStatusInProgress = PicklistStatus("In Progress")
	PicklistStatusCompleted  = PicklistStatus("Completed")
)

var validPicklistStatuses = []PicklistStatus{
	PicklistStatusPending,
	PicklistStatusInProgress,
	PicklistStatusCompleted,
}

// String implements fmt.Stringer.
func (p PicklistStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PicklistStatus.
func (p PicklistStatus) IsValid() bool {
	for _, candidate := range validPicklistStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePicklistStatus converts raw input into a PicklistStatus.
func ParsePicklistStatus(value string) (PicklistStatus, error) {
	for _, candidate := range validPicklistStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid picklist status %q", value)
}
