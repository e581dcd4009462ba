package quote

import (
	"broker/internal/pkg/errs"
)

// Status represents the lifecycle state of a quote.
//
// State transitions:
//
//	Pending ──┬──> Accepted
//	          ├──> Cancelled
//	          └──> Expired
//
// Every transition leaves Pending and every non-pending state is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the quote is open for offers.
	Pending

	// Accepted means one of the quote's offers was accepted and a delivery
	// now carries the narrative forward.
	Accepted

	// Cancelled means the client withdrew the quote.
	Cancelled

	// Expired means the quote outlived its TTL without being accepted.
	Expired
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Pending:   "pending",
		Accepted:  "accepted",
		Cancelled: "cancelled",
		Expired:   "expired",
	}
}

// String returns the wire name of the status ("pending", "accepted", ...).
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("quote status")
	}
	return nil
}

// IsTerminal reports whether the quote can no longer change state.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Cancelled || s == Expired
}

// Accept transitions Pending -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("quote", s.String(), "accept")
	}
	return Accepted, nil
}

// Cancel transitions Pending -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("quote", s.String(), "cancel")
	}
	return Cancelled, nil
}

// Expire transitions Pending -> Expired.
func (s Status) Expire() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("quote", s.String(), "expire")
	}
	return Expired, nil
}
