package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
	"broker/internal/pkg/guard"
)

var ErrExpireQuoteCommandIsNotConstructed = errors.New(
	"ExpireQuoteCommand must be created via NewExpireQuoteCommand constructor",
)

// ExpireQuoteCommand forces one quote through the expiry path immediately,
// without waiting for the sweeper. Restricted to the quote's owner or an
// administrator.
type ExpireQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID   kernel.UUID
	principal ports.Principal

	guard guard.ConstructorGuard
}

// NewExpireQuoteCommand creates a command to expire a quote on demand.
func NewExpireQuoteCommand(quoteID kernel.UUID, principal ports.Principal) (ExpireQuoteCommand, error) {
	expireCommand := ExpireQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		expireCommand.setQuoteID(quoteID),
		expireCommand.setPrincipal(principal),
	); err != nil {
		return ExpireQuoteCommand{}, err
	}

	return expireCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireQuoteCommand) Validate() error {
	return c.guard.Validate(ErrExpireQuoteCommandIsNotConstructed)
}

// QuoteID returns the identifier of the quote to expire.
func (c ExpireQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// Principal returns the authenticated caller.
func (c ExpireQuoteCommand) Principal() ports.Principal {
	return c.principal
}

func (c *ExpireQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}

	c.quoteID = quoteID
	return nil
}

func (c *ExpireQuoteCommand) setPrincipal(principal ports.Principal) error {
	if err := principal.ID.Validate(); err != nil {
		return err
	}

	c.principal = principal
	return nil
}
