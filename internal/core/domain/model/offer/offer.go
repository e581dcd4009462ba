package offer

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
)

// ErrOfferIsNotConstructed is returned when an Offer instance was not
// created through NewOffer or RestoreOffer.
var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer or RestoreOffer")

// Offer is a courier's bid against one quote.
//
// Invariants:
//   - the proposed price is strictly positive
//   - the bid references exactly one quote and one courier
//   - only pending offers may be updated, extended, or resolved
type Offer struct {
	id                kernel.UUID
	courierID         kernel.UUID
	quoteID           kernel.UUID
	proposedPrice     kernel.Price
	estimatedDuration *time.Duration
	vehicleID         *kernel.UUID
	status            Status
	createdAt         time.Time
	updatedAt         time.Time
	expiresAt         time.Time

	isConstructed bool
}

// NewOffer creates a pending offer. The expiry is supplied by the caller
// (normally now + the configured offer TTL). The courier-vs-client check
// happens in the submit use case, which is the only place that sees both.
func NewOffer(
	id kernel.UUID,
	courierID kernel.UUID,
	quoteID kernel.UUID,
	proposedPrice kernel.Price,
	estimatedDuration *time.Duration,
	vehicleID *kernel.UUID,
	createdAt time.Time,
	expiresAt time.Time,
) (*Offer, error) {
	o := &Offer{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCourierID(courierID),
		o.setQuoteID(quoteID),
		o.setProposedPrice(proposedPrice),
		o.setEstimatedDuration(estimatedDuration),
		o.setVehicleID(vehicleID),
		o.setTimestamps(createdAt, expiresAt),
	); err != nil {
		return nil, err
	}

	o.updatedAt = createdAt
	return o, nil
}

// RestoreOffer reconstructs an offer from persistence.
func RestoreOffer(
	id kernel.UUID,
	courierID kernel.UUID,
	quoteID kernel.UUID,
	proposedPrice kernel.Price,
	estimatedDuration *time.Duration,
	vehicleID *kernel.UUID,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	expiresAt time.Time,
) (*Offer, error) {
	o := &Offer{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCourierID(courierID),
		o.setQuoteID(quoteID),
		o.setProposedPrice(proposedPrice),
		o.setEstimatedDuration(estimatedDuration),
		o.setVehicleID(vehicleID),
		o.setTimestamps(createdAt, expiresAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the offer was built through a constructor.
func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

// ID returns the offer's unique identifier.
func (o *Offer) ID() kernel.UUID {
	return o.id
}

// CourierID returns the bidding courier's identifier.
func (o *Offer) CourierID() kernel.UUID {
	return o.courierID
}

// QuoteID returns the identifier of the quote this bid targets.
func (o *Offer) QuoteID() kernel.UUID {
	return o.quoteID
}

// ProposedPrice returns the courier's bid price.
func (o *Offer) ProposedPrice() kernel.Price {
	return o.proposedPrice
}

// EstimatedDuration returns the courier's delivery time estimate, if given.
func (o *Offer) EstimatedDuration() *time.Duration {
	return o.estimatedDuration
}

// VehicleID returns the courier's chosen vehicle, if given.
func (o *Offer) VehicleID() *kernel.UUID {
	return o.vehicleID
}

// Status returns the current lifecycle state.
func (o *Offer) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Offer) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-modification timestamp.
func (o *Offer) UpdatedAt() time.Time {
	return o.updatedAt
}

// ExpiresAt returns the current expiry timestamp.
func (o *Offer) ExpiresAt() time.Time {
	return o.expiresAt
}

// IsExpired reports whether the offer has outlived its TTL at the given
// instant.
func (o *Offer) IsExpired(now time.Time) bool {
	return !o.expiresAt.After(now)
}

// UpdateBid replaces the price, duration estimate, and vehicle of a pending
// offer in place. This is how a courier resubmits against the same quote
// without creating a duplicate row.
func (o *Offer) UpdateBid(
	price kernel.Price,
	estimatedDuration *time.Duration,
	vehicleID *kernel.UUID,
	now time.Time,
) error {
	if o.status != Pending {
		return errs.NewInvalidStateError("offer", o.status.String(), "update")
	}
	if err := errors.Join(
		o.setProposedPrice(price),
		o.setEstimatedDuration(estimatedDuration),
		o.setVehicleID(vehicleID),
	); err != nil {
		return err
	}

	o.updatedAt = now
	return nil
}

// Accept marks the offer accepted.
func (o *Offer) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Reject marks the offer rejected.
func (o *Offer) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Expire marks the offer expired.
func (o *Offer) Expire() error {
	newStatus, err := o.status.Expire()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// ExtendExpiration pushes the expiry out by the given number of minutes.
// Only pending offers can be extended.
func (o *Offer) ExtendExpiration(now time.Time, minutes int) error {
	if minutes <= 0 {
		return errs.NewValueIsOutOfRangeError("minutes", minutes, 1, 1440)
	}
	if o.status != Pending {
		return errs.NewInvalidStateError("offer", o.status.String(), "extend")
	}

	o.expiresAt = kernel.ExtendedExpiry(o.expiresAt, now, minutes)
	return nil
}

func (o *Offer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Offer) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	o.courierID = courierID
	return nil
}

func (o *Offer) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("quoteID", err)
	}
	o.quoteID = quoteID
	return nil
}

func (o *Offer) setProposedPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.proposedPrice = price
	return nil
}

func (o *Offer) setEstimatedDuration(d *time.Duration) error {
	if d != nil && *d <= 0 {
		return errs.NewValueIsInvalidError("estimatedDuration")
	}
	o.estimatedDuration = d
	return nil
}

func (o *Offer) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("vehicleID", err)
		}
	}
	o.vehicleID = vehicleID
	return nil
}

func (o *Offer) setTimestamps(createdAt, expiresAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if !expiresAt.After(createdAt) {
		return errs.NewValueIsInvalidError("expiresAt must be after createdAt")
	}
	o.createdAt = createdAt
	o.expiresAt = expiresAt
	return nil
}
