package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/quote"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrCreateQuoteCommandIsNotConstructed = errors.New(
	"CreateQuoteCommand must be created via NewCreateQuoteCommand constructor",
)

// CreateQuoteCommand represents a client's request to open a new quote and
// invite courier offers. Encapsulates the request details, the client's
// proposed price, and the payment method.
//
// Example:
//
//	quoteID := kernel.NewUUID()
//	cmd, err := NewCreateQuoteCommand(quoteID, clientID, details, price, quote.PaymentCash)
//	if err != nil {
//	    return fmt.Errorf("invalid quote data: %w", err)
//	}
//
//	handler := NewCreateQuoteCommandHandler(uowFactory, broadcaster, ttl)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create quote: %w", err)
//	}
type CreateQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID       kernel.UUID
	clientID      kernel.UUID
	details       quote.Details
	clientPrice   kernel.Price
	paymentMethod quote.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateQuoteCommand creates a command to open a new quote. Validates ids,
// the address pair, the price, and the payment method. Returns an error if
// any validation fails.
func NewCreateQuoteCommand(
	quoteID kernel.UUID,
	clientID kernel.UUID,
	details quote.Details,
	clientPrice kernel.Price,
	paymentMethod quote.PaymentMethod,
) (CreateQuoteCommand, error) {
	quoteCommand := CreateQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		quoteCommand.setQuoteID(quoteID),
		quoteCommand.setClientID(clientID),
		quoteCommand.setDetails(details),
		quoteCommand.setClientPrice(clientPrice),
		quoteCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateQuoteCommand{}, err
	}

	return quoteCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateQuoteCommandIsNotConstructed if validation fails.
func (c CreateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuoteCommandIsNotConstructed)
}

// QuoteID returns the unique identifier for the quote.
func (c CreateQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// ClientID returns the identifier of the posting client.
func (c CreateQuoteCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Details returns the descriptive part of the request.
func (c CreateQuoteCommand) Details() quote.Details {
	return c.details
}

// ClientPrice returns the client's proposed price.
func (c CreateQuoteCommand) ClientPrice() kernel.Price {
	return c.clientPrice
}

// PaymentMethod returns how the client intends to pay.
func (c CreateQuoteCommand) PaymentMethod() quote.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}

	c.quoteID = quoteID
	return nil
}

func (c *CreateQuoteCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}

	c.clientID = clientID
	return nil
}

func (c *CreateQuoteCommand) setDetails(details quote.Details) error {
	if details.PickupAddress == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if details.DeliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.details = details
	return nil
}

func (c *CreateQuoteCommand) setClientPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}

	c.clientPrice = price
	return nil
}

func (c *CreateQuoteCommand) setPaymentMethod(method quote.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
