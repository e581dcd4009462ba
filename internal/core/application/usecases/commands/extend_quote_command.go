package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrExtendQuoteCommandIsNotConstructed = errors.New(
	"ExtendQuoteCommand must be created via NewExtendQuoteCommand constructor",
)

// maxExtensionMinutes caps a single extension at one day.
const maxExtensionMinutes = 1440

// ExtendQuoteCommand pushes a pending quote's expiry further out so it stays
// visible to couriers.
type ExtendQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID kernel.UUID
	minutes int

	guard guard.ConstructorGuard
}

// NewExtendQuoteCommand creates a command to extend a quote's TTL by the
// given number of minutes. Minutes must be between 1 and 1440.
func NewExtendQuoteCommand(quoteID kernel.UUID, minutes int) (ExtendQuoteCommand, error) {
	extendCommand := ExtendQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		extendCommand.setQuoteID(quoteID),
		extendCommand.setMinutes(minutes),
	); err != nil {
		return ExtendQuoteCommand{}, err
	}

	return extendCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ExtendQuoteCommand) Validate() error {
	return c.guard.Validate(ErrExtendQuoteCommandIsNotConstructed)
}

// QuoteID returns the identifier of the quote to extend.
func (c ExtendQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// Minutes returns the extension length in minutes.
func (c ExtendQuoteCommand) Minutes() int {
	return c.minutes
}

func (c *ExtendQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}

	c.quoteID = quoteID
	return nil
}

func (c *ExtendQuoteCommand) setMinutes(minutes int) error {
	if minutes <= 0 || minutes > maxExtensionMinutes {
		return errs.NewValueIsOutOfRangeError("minutes", minutes, 1, maxExtensionMinutes)
	}

	c.minutes = minutes
	return nil
}
