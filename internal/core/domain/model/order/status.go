package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Lifecycle graph (legal transitions are defined by the lifecycle state
// machine; this type only names the states):
//
//	New ──> Sent ──> InKitchen ──> Ready ──> Served ──> Closed
//	 │        │          │           └──────────────────> Closed
//	 │        ├──────────┼──> Ready
//	 │        └──────────┘    Served (fast-food shortcut from Sent)
//	 └──> Voided (also reachable from Sent and InKitchen)
//
// Closed and Voided are terminal.
//
// Status is a value object that provides string representations for
// persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status: the order is open on a terminal and
	// items may still be edited.
	New

	// Sent indicates the order has been sent to the kitchen.
	Sent

	// InKitchen indicates the kitchen has acknowledged the ticket and
	// started preparation. This detour is optional; kitchens without
	// acknowledgment hardware go straight from Sent to Ready.
	InKitchen

	// Ready indicates all items are prepared and awaiting pickup by staff.
	Ready

	// Served indicates the order has been delivered to the table.
	Served

	// Voided indicates the order was cancelled. Terminal.
	Voided

	// Closed indicates the order was fully paid and settled. Terminal.
	Closed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		New:       "New",
		Sent:      "Sent",
		InKitchen: "InKitchen",
		Ready:     "Ready",
		Served:    "Served",
		Voided:    "Voided",
		Closed:    "Closed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:       "New",
		Sent:      "Sent",
		InKitchen: "InKitchen",
		Ready:     "Ready",
		Served:    "Served",
		Voided:    "Voided",
		Closed:    "Closed",
	}
}

// StatusFromString parses a status name as carried on the wire.
// Matching is exact; unknown names return an error.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status name", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid. Used to vet Status
// values arriving from external sources (database, API) before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
