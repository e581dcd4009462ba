package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrExtendOfferCommandIsNotConstructed = errors.New(
	"ExtendOfferCommand must be created via NewExtendOfferCommand constructor",
)

// ExtendOfferCommand pushes a pending offer's expiry further out, keeping the
// bid alive while the client decides.
type ExtendOfferCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	minutes int

	guard guard.ConstructorGuard
}

// NewExtendOfferCommand creates a command to extend an offer's TTL by the
// given number of minutes. Minutes must be between 1 and 1440.
func NewExtendOfferCommand(offerID kernel.UUID, minutes int) (ExtendOfferCommand, error) {
	extendCommand := ExtendOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		extendCommand.setOfferID(offerID),
		extendCommand.setMinutes(minutes),
	); err != nil {
		return ExtendOfferCommand{}, err
	}

	return extendCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ExtendOfferCommand) Validate() error {
	return c.guard.Validate(ErrExtendOfferCommandIsNotConstructed)
}

// OfferID returns the identifier of the offer to extend.
func (c ExtendOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// Minutes returns the extension length in minutes.
func (c ExtendOfferCommand) Minutes() int {
	return c.minutes
}

func (c *ExtendOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *ExtendOfferCommand) setMinutes(minutes int) error {
	if minutes <= 0 || minutes > maxExtensionMinutes {
		return errs.NewValueIsOutOfRangeError("minutes", minutes, 1, maxExtensionMinutes)
	}

	c.minutes = minutes
	return nil
}
