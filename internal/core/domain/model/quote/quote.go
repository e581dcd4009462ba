package quote

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
)

var (
	// ErrQuoteIsNotConstructed is returned when a Quote instance was not
	// created through NewQuote or RestoreQuote.
	ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote or RestoreQuote")

	// ErrSameAddresses is returned when pickup and delivery addresses match.
	ErrSameAddresses = errors.New("pickup and delivery addresses must differ")
)

// Details carries the descriptive part of a delivery request. It is captured
// on the quote and copied verbatim onto the Delivery at acceptance time.
type Details struct {
	PickupAddress   string
	DeliveryAddress string
	CategoryID      kernel.UUID
	Description     string
	Observations    []string
	VehicleTypeID   *kernel.UUID
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
	if d.PickupAddress == d.DeliveryAddress {
		return errs.NewValueIsInvalidErrorWithCause("deliveryAddress", ErrSameAddresses)
	}
	if err := d.CategoryID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("categoryID", err)
	}
	if d.VehicleTypeID != nil {
		if err := d.VehicleTypeID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("vehicleTypeID", err)
		}
	}
	if d.EstimatedWeight != nil && *d.EstimatedWeight <= 0 {
		return errs.NewValueIsInvalidError("estimatedWeight")
	}
	return nil
}

// Quote is the aggregate root for a client's open delivery request.
//
// Invariants:
//   - client price is strictly positive
//   - pickup and delivery addresses are set and differ
//   - the correlation id is generated once at creation and never changes
//   - status only ever leaves Pending, and only once
type Quote struct {
	id            kernel.UUID
	clientID      kernel.UUID
	correlationID kernel.UUID
	details       Details
	clientPrice   kernel.Price
	paymentMethod PaymentMethod
	status        Status
	createdAt     time.Time
	expiresAt     time.Time

	isConstructed bool
}

// NewQuote creates a pending quote with a fresh correlation id. The expiry is
// supplied by the caller (normally now + the configured quote TTL).
func NewQuote(
	id kernel.UUID,
	clientID kernel.UUID,
	details Details,
	clientPrice kernel.Price,
	paymentMethod PaymentMethod,
	createdAt time.Time,
	expiresAt time.Time,
) (*Quote, error) {
	q := &Quote{
		correlationID: kernel.NewUUID(),
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		q.setID(id),
		q.setClientID(clientID),
		q.setDetails(details),
		q.setClientPrice(clientPrice),
		q.setPaymentMethod(paymentMethod),
		q.setTimestamps(createdAt, expiresAt),
	); err != nil {
		return nil, err
	}

	return q, nil
}

// RestoreQuote reconstructs a quote from persistence, including its original
// correlation id and status.
func RestoreQuote(
	id kernel.UUID,
	clientID kernel.UUID,
	correlationID kernel.UUID,
	details Details,
	clientPrice kernel.Price,
	paymentMethod PaymentMethod,
	status Status,
	createdAt time.Time,
	expiresAt time.Time,
) (*Quote, error) {
	q := &Quote{
		isConstructed: true,
	}

	if err := errors.Join(
		q.setID(id),
		q.setClientID(clientID),
		q.setDetails(details),
		q.setClientPrice(clientPrice),
		q.setPaymentMethod(paymentMethod),
		q.setTimestamps(createdAt, expiresAt),
		status.Validate(),
		correlationID.Validate(),
	); err != nil {
		return nil, err
	}

	q.status = status
	q.correlationID = correlationID
	return q, nil
}

// Validate ensures the quote was built through a constructor.
func (q *Quote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrQuoteIsNotConstructed
	}
	return nil
}

// ID returns the quote's unique identifier.
func (q *Quote) ID() kernel.UUID {
	return q.id
}

// ClientID returns the identifier of the client who posted the quote.
func (q *Quote) ClientID() kernel.UUID {
	return q.clientID
}

// CorrelationID returns the lifecycle-correlation identifier shared by this
// quote, its eventual delivery, and every history event in between.
func (q *Quote) CorrelationID() kernel.UUID {
	return q.correlationID
}

// Details returns the descriptive part of the request.
func (q *Quote) Details() Details {
	return q.details
}

// ClientPrice returns the client's proposed price.
func (q *Quote) ClientPrice() kernel.Price {
	return q.clientPrice
}

// PaymentMethod returns how the client intends to pay.
func (q *Quote) PaymentMethod() PaymentMethod {
	return q.paymentMethod
}

// Status returns the current lifecycle state.
func (q *Quote) Status() Status {
	return q.status
}

// CreatedAt returns the creation timestamp.
func (q *Quote) CreatedAt() time.Time {
	return q.createdAt
}

// ExpiresAt returns the current expiry timestamp.
func (q *Quote) ExpiresAt() time.Time {
	return q.expiresAt
}

// IsExpired reports whether the quote has outlived its TTL at the given
// instant. Expiry is cooperative: an expired quote stays pending until the
// sweeper or an explicit expire call removes it.
func (q *Quote) IsExpired(now time.Time) bool {
	return !q.expiresAt.After(now)
}

// Accept marks the quote accepted. Only pending quotes can be accepted.
func (q *Quote) Accept() error {
	newStatus, err := q.status.Accept()
	if err != nil {
		return err
	}
	q.status = newStatus
	return nil
}

// Cancel marks the quote cancelled. Only pending quotes can be cancelled.
func (q *Quote) Cancel() error {
	newStatus, err := q.status.Cancel()
	if err != nil {
		return err
	}
	q.status = newStatus
	return nil
}

// Expire marks the quote expired. Only pending quotes can expire.
func (q *Quote) Expire() error {
	newStatus, err := q.status.Expire()
	if err != nil {
		return err
	}
	q.status = newStatus
	return nil
}

// ExtendExpiration pushes the expiry out by the given number of minutes,
// counted from the current expiry or from now when the quote has already
// lapsed. Only pending quotes can be extended.
func (q *Quote) ExtendExpiration(now time.Time, minutes int) error {
	if minutes <= 0 {
		return errs.NewValueIsOutOfRangeError("minutes", minutes, 1, 1440)
	}
	if q.status != Pending {
		return errs.NewInvalidStateError("quote", q.status.String(), "extend")
	}

	q.expiresAt = kernel.ExtendedExpiry(q.expiresAt, now, minutes)
	return nil
}

func (q *Quote) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.id = id
	return nil
}

func (q *Quote) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	q.clientID = clientID
	return nil
}

func (q *Quote) setDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}
	q.details = details
	return nil
}

func (q *Quote) setClientPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	q.clientPrice = price
	return nil
}

func (q *Quote) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	q.paymentMethod = method
	return nil
}

func (q *Quote) setTimestamps(createdAt, expiresAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if !expiresAt.After(createdAt) {
		return errs.NewValueIsInvalidError("expiresAt must be after createdAt")
	}
	q.createdAt = createdAt
	q.expiresAt = expiresAt
	return nil
}
