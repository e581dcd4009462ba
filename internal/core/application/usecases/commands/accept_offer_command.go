package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand picks the winning bid on a quote. Acceptance converts
// the quote into a delivery, removes the quote and all its offers, and is the
// only path that creates deliveries.
//
// Example:
//
//	cmd, err := NewAcceptOfferCommand(offerID, clientID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAcceptOfferCommandHandler(uowFactory, broadcaster)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another accept, a cancel, or the sweeper got there first
//	}
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command to accept an offer.
func NewAcceptOfferCommand(offerID, actorID kernel.UUID) (AcceptOfferCommand, error) {
	acceptCommand := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOfferID(offerID),
		acceptCommand.setActorID(actorID),
	); err != nil {
		return AcceptOfferCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// OfferID returns the identifier of the winning offer.
func (c AcceptOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// ActorID returns the identifier of the accepting principal.
func (c AcceptOfferCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AcceptOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *AcceptOfferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}
