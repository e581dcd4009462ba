package commands

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrSubmitOfferCommandIsNotConstructed = errors.New(
	"SubmitOfferCommand must be created via NewSubmitOfferCommand constructor",
)

// SubmitOfferCommand represents a courier's bid against an open quote. If the
// courier already has a live offer on the quote, the handler updates that
// offer in place instead of creating a duplicate.
//
// Example:
//
//	offerID := kernel.NewUUID()
//	cmd, err := NewSubmitOfferCommand(offerID, courierID, quoteID, price, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid offer data: %w", err)
//	}
//
//	handler := NewSubmitOfferCommandHandler(uowFactory, broadcaster, ttl)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit offer: %w", err)
//	}
type SubmitOfferCommand struct { //nolint:recvcheck //using for validation
	offerID           kernel.UUID
	courierID         kernel.UUID
	quoteID           kernel.UUID
	proposedPrice     kernel.Price
	estimatedDuration *time.Duration
	vehicleID         *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitOfferCommand creates a command to submit or refresh a bid.
// Duration and vehicle are optional; when given they must be valid.
func NewSubmitOfferCommand(
	offerID kernel.UUID,
	courierID kernel.UUID,
	quoteID kernel.UUID,
	proposedPrice kernel.Price,
	estimatedDuration *time.Duration,
	vehicleID *kernel.UUID,
) (SubmitOfferCommand, error) {
	offerCommand := SubmitOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		offerCommand.setOfferID(offerID),
		offerCommand.setCourierID(courierID),
		offerCommand.setQuoteID(quoteID),
		offerCommand.setProposedPrice(proposedPrice),
		offerCommand.setEstimatedDuration(estimatedDuration),
		offerCommand.setVehicleID(vehicleID),
	); err != nil {
		return SubmitOfferCommand{}, err
	}

	return offerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOfferCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOfferCommandIsNotConstructed)
}

// OfferID returns the identifier for a newly created offer. Unused when the
// submission updates an existing offer.
func (c SubmitOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// CourierID returns the bidding courier's identifier.
func (c SubmitOfferCommand) CourierID() kernel.UUID {
	return c.courierID
}

// QuoteID returns the identifier of the quote being bid on.
func (c SubmitOfferCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// ProposedPrice returns the courier's bid price.
func (c SubmitOfferCommand) ProposedPrice() kernel.Price {
	return c.proposedPrice
}

// EstimatedDuration returns the courier's delivery time estimate, if given.
func (c SubmitOfferCommand) EstimatedDuration() *time.Duration {
	return c.estimatedDuration
}

// VehicleID returns the courier's chosen vehicle, if given.
func (c SubmitOfferCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

func (c *SubmitOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *SubmitOfferCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	c.courierID = courierID
	return nil
}

func (c *SubmitOfferCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("quoteID", err)
	}

	c.quoteID = quoteID
	return nil
}

func (c *SubmitOfferCommand) setProposedPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}

	c.proposedPrice = price
	return nil
}

func (c *SubmitOfferCommand) setEstimatedDuration(d *time.Duration) error {
	if d != nil && *d <= 0 {
		return errs.NewValueIsInvalidError("estimatedDuration")
	}

	c.estimatedDuration = d
	return nil
}

func (c *SubmitOfferCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("vehicleID", err)
		}
	}

	c.vehicleID = vehicleID
	return nil
}
