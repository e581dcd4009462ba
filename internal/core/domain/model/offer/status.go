package offer

import (
	"broker/internal/pkg/errs"
)

// Status represents the lifecycle state of an offer.
//
// State transitions:
//
//	Pending ──┬──> Accepted
//	          ├──> Rejected
//	          └──> Expired
type Status int

const (
	Unknown Status = iota
	Pending
	Accepted
	Rejected
	Expired
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Pending:  "pending",
		Accepted: "accepted",
		Rejected: "rejected",
		Expired:  "expired",
	}
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
		return errs.NewValueIsInvalidError("offer status")
	}
	return nil
}

// IsTerminal reports whether the offer can no longer change state.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Rejected || s == Expired
}

// Accept transitions Pending -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("offer", s.String(), "accept")
	}
	return Accepted, nil
}

// Reject transitions Pending -> Rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("offer", s.String(), "reject")
	}
	return Rejected, nil
}

// Expire transitions Pending -> Expired.
func (s Status) Expire() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("offer", s.String(), "expire")
	}
	return Expired, nil
}
