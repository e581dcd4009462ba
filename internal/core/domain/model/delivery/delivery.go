package delivery

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Details carries the descriptive fields copied from the originating quote.
type Details struct {
	PickupAddress   string
	DeliveryAddress string
	CategoryID      kernel.UUID
	Description     string
	Observations    []string
	EstimatedWeight *float64
	EstimatedSize   *string
}

func (d Details) validate() error {
	if d.PickupAddress == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if d.DeliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	if err := d.CategoryID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("categoryID", err)
	}
	return nil
}

// Delivery is the aggregate root for a binding delivery job.
//
// Invariants:
//   - final price is copied from the accepted offer and never changes
//   - the correlation id equals the originating quote's correlation id
//   - completedAt is set exactly once, on the first transition to Delivered
//   - cancelledAt is set exactly once, on the transition to Cancelled
//   - cancellation is forbidden once status is Delivered, Paid, or Cancelled
type Delivery struct {
	id            kernel.UUID
	clientID      kernel.UUID
	courierID     kernel.UUID
	correlationID kernel.UUID
	details       Details
	finalPrice    kernel.Price
	vehicleID     *kernel.UUID
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	completedAt   *time.Time
	cancelledAt   *time.Time

	isConstructed bool
}

// NewDelivery creates an assigned delivery from an accepted offer. The
// correlation id must be the quote's, so the history narrative continues
// unbroken across the quote's deletion.
func NewDelivery(
	id kernel.UUID,
	clientID kernel.UUID,
	courierID kernel.UUID,
	correlationID kernel.UUID,
	details Details,
	finalPrice kernel.Price,
	vehicleID *kernel.UUID,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:        Assigned,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setParties(clientID, courierID),
		d.setCorrelationID(correlationID),
		d.setDetails(details),
		d.setFinalPrice(finalPrice),
		d.setVehicleID(vehicleID),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	d.updatedAt = createdAt
	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
func RestoreDelivery(
	id kernel.UUID,
	clientID kernel.UUID,
	courierID kernel.UUID,
	correlationID kernel.UUID,
	details Details,
	finalPrice kernel.Price,
	vehicleID *kernel.UUID,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
	cancelledAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setParties(clientID, courierID),
		d.setCorrelationID(correlationID),
		d.setDetails(details),
		d.setFinalPrice(finalPrice),
		d.setVehicleID(vehicleID),
		d.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	d.status = status
	d.updatedAt = updatedAt
	d.completedAt = completedAt
	d.cancelledAt = cancelledAt
	return d, nil
}

// Validate ensures the delivery was built through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// ClientID returns the requesting client's identifier.
func (d *Delivery) ClientID() kernel.UUID {
	return d.clientID
}

// CourierID returns the assigned courier's identifier.
func (d *Delivery) CourierID() kernel.UUID {
	return d.courierID
}

// CorrelationID returns the lifecycle-correlation identifier inherited from
// the originating quote.
func (d *Delivery) CorrelationID() kernel.UUID {
	return d.correlationID
}

// Details returns the descriptive fields copied from the quote.
func (d *Delivery) Details() Details {
	return d.details
}

// FinalPrice returns the price frozen from the accepted offer.
func (d *Delivery) FinalPrice() kernel.Price {
	return d.finalPrice
}

// VehicleID returns the courier's vehicle, if given.
func (d *Delivery) VehicleID() *kernel.UUID {
	return d.vehicleID
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last-modification timestamp.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// CompletedAt returns when the delivery first reached Delivered, or nil.
func (d *Delivery) CompletedAt() *time.Time {
	return d.completedAt
}

// CancelledAt returns when the delivery was cancelled, or nil.
func (d *Delivery) CancelledAt() *time.Time {
	return d.cancelledAt
}

// Advance moves the delivery to the single next state in the linear table
// and returns the state it moved to. Fails when the current state has no
// successor (Paid, Cancelled).
func (d *Delivery) Advance(now time.Time) (Status, error) {
	next, err := d.status.Next()
	if err != nil {
		return 0, err
	}

	d.applyStatus(next, now)
	return next, nil
}

// SetStatus moves the delivery to an explicit target state. This is the
// administrative entry point, decoupled from the linear advance table; it
// validates only that the target is a known state and still enforces the
// one-shot completion and cancellation timestamps.
func (d *Delivery) SetStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == Cancelled && !d.status.CanCancel() {
		return errs.NewInvalidStateError("delivery", d.status.String(), "cancel")
	}

	d.applyStatus(target, now)
	return nil
}

// Cancel marks the delivery cancelled. Forbidden from Delivered, Paid, and
// Cancelled.
func (d *Delivery) Cancel(now time.Time) error {
	if !d.status.CanCancel() {
		return errs.NewInvalidStateError("delivery", d.status.String(), "cancel")
	}

	d.applyStatus(Cancelled, now)
	return nil
}

// applyStatus performs the shared bookkeeping of any status change:
// completedAt on the first entry into Delivered, cancelledAt on entry into
// Cancelled, updatedAt always.
func (d *Delivery) applyStatus(target Status, now time.Time) {
	d.status = target
	d.updatedAt = now

	if target == Delivered && d.completedAt == nil {
		ts := now
		d.completedAt = &ts
	}
	if target == Cancelled && d.cancelledAt == nil {
		ts := now
		d.cancelledAt = &ts
	}
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setParties(clientID, courierID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	d.clientID = clientID
	d.courierID = courierID
	return nil
}

func (d *Delivery) setCorrelationID(correlationID kernel.UUID) error {
	if err := correlationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("correlationID", err)
	}
	d.correlationID = correlationID
	return nil
}

func (d *Delivery) setDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}
	d.details = details
	return nil
}

func (d *Delivery) setFinalPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	d.finalPrice = price
	return nil
}

func (d *Delivery) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("vehicleID", err)
		}
	}
	d.vehicleID = vehicleID
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt
	return nil
}
