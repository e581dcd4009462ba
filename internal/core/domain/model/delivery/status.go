package delivery

import (
	"fmt"

	"broker/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Assigned ──> PickedUp ──> InTransit ──> Delivered ──> Paid
//	    │            │             │
//	    └────────────┴─────────────┴──> Cancelled
//
// The happy path is strictly linear; Paid has no successor. Cancellation is
// reachable from every state before Delivered and from nowhere after.
type Status int

const (
	Unknown Status = iota
	Assigned
	PickedUp
	InTransit
	Delivered
	Paid
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Paid:      "paid",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses a wire name ("assigned", "picked_up", ...).
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a known delivery status", s))
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("delivery status")
	}
	return nil
}

// Next returns the single deterministic successor in the linear progression.
// Paid and Cancelled have no successor.
func (s Status) Next() (Status, error) {
	switch s {
	case Assigned:
		return PickedUp, nil
	case PickedUp:
		return InTransit, nil
	case InTransit:
		return Delivered, nil
	case Delivered:
		return Paid, nil
	default:
		return 0, errs.NewInvalidStateError("delivery", s.String(), "advance")
	}
}

// CanCancel reports whether cancellation is allowed from this state.
func (s Status) CanCancel() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}
