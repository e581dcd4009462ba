// Package history contains the append-only event log entity. Events are
// keyed by the lifecycle-correlation id rather than a foreign key to any
// deletable row, so the full narrative of one client request survives the
// hard deletion of its quote and offers. Events are never updated or
// deleted; ordering is by creation time.
package history

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Kind classifies a history event.
type Kind int

const (
	KindUnknown Kind = iota
	KindQuoteCreated
	KindOfferMade
	KindOfferAccepted
	KindOfferRejected
	KindStatusChanged
	KindCancelled
	KindCompleted
)

func kindStrings() map[Kind]string {
	return map[Kind]string{
		KindQuoteCreated:  "quote_created",
		KindOfferMade:     "offer_made",
		KindOfferAccepted: "offer_accepted",
		KindOfferRejected: "offer_rejected",
		KindStatusChanged: "status_changed",
		KindCancelled:     "cancelled",
		KindCompleted:     "completed",
	}
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if str, ok := kindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the kind is one of the known values.
func (k Kind) Validate() error {
	if _, ok := kindStrings()[k]; !ok {
		return errs.NewValueIsInvalidError("event kind")
	}
	return nil
}

// Event is one immutable entry in the lifecycle audit trail.
type Event struct {
	id            kernel.UUID
	correlationID kernel.UUID
	kind          Kind
	description   string
	changedBy     kernel.UUID
	createdAt     time.Time

	isConstructed bool
}

// NewEvent creates a history event for the given correlation id. changedBy
// identifies the acting principal (a user id, or the system principal for
// sweeper-driven events).
func NewEvent(
	correlationID kernel.UUID,
	kind Kind,
	description string,
	changedBy kernel.UUID,
	createdAt time.Time,
) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), correlationID, kind, description, changedBy, createdAt)
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id kernel.UUID,
	correlationID kernel.UUID,
	kind Kind,
	description string,
	changedBy kernel.UUID,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		correlationID.Validate(),
		kind.Validate(),
		changedBy.Validate(),
	); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Event{
		id:            id,
		correlationID: correlationID,
		kind:          kind,
		description:   description,
		changedBy:     changedBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the event was built through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// CorrelationID returns the lifecycle-correlation id this event belongs to.
func (e *Event) CorrelationID() kernel.UUID {
	return e.correlationID
}

// Kind returns the event classification.
func (e *Event) Kind() Kind {
	return e.kind
}

// Description returns the human-readable event description.
func (e *Event) Description() string {
	return e.description
}

// ChangedBy returns the acting principal's identifier.
func (e *Event) ChangedBy() kernel.UUID {
	return e.changedBy
}

// CreatedAt returns the append timestamp; events are ordered by it.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}
