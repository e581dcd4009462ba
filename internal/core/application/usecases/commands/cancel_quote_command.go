package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrCancelQuoteCommandIsNotConstructed = errors.New(
	"CancelQuoteCommand must be created via NewCancelQuoteCommand constructor",
)

// CancelQuoteCommand withdraws a pending quote. The quote row and its offers
// are removed; the history trail survives under the correlation id.
type CancelQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelQuoteCommand creates a command to cancel a quote. The actor id
// identifies who requested the cancellation and is recorded in history.
func NewCancelQuoteCommand(quoteID, actorID kernel.UUID) (CancelQuoteCommand, error) {
	cancelCommand := CancelQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setQuoteID(quoteID),
		cancelCommand.setActorID(actorID),
	); err != nil {
		return CancelQuoteCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCancelQuoteCommandIsNotConstructed)
}

// QuoteID returns the identifier of the quote to cancel.
func (c CancelQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// ActorID returns the identifier of the requesting principal.
func (c CancelQuoteCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CancelQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}

	c.quoteID = quoteID
	return nil
}

func (c *CancelQuoteCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}
