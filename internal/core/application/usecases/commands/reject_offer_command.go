package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand declines a courier's bid. The offer row stays around in
// rejected status; only expiry and quote removal delete offers.
type RejectOfferCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectOfferCommand creates a command to reject an offer.
func NewRejectOfferCommand(offerID, actorID kernel.UUID) (RejectOfferCommand, error) {
	rejectCommand := RejectOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rejectCommand.setOfferID(offerID),
		rejectCommand.setActorID(actorID),
	); err != nil {
		return RejectOfferCommand{}, err
	}

	return rejectCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

// OfferID returns the identifier of the offer to reject.
func (c RejectOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// ActorID returns the identifier of the requesting principal.
func (c RejectOfferCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RejectOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *RejectOfferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}
