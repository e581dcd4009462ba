package commands

import (
	"context"
	"time"
)

// ExtendQuoteCommandHandler handles quote TTL extension. The new expiry is
// counted from the current expiry, or from now when the quote has already
// lapsed but the sweeper has not caught it yet.
type ExtendQuoteCommandHandler struct {
	uowFactory QuoteUoWFactory
}

// NewExtendQuoteCommandHandler creates a handler for quote extension
// operations.
func NewExtendQuoteCommandHandler(uowFactory QuoteUoWFactory) ExtendQuoteCommandHandler {
	return ExtendQuoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the quote extension command. Only pending quotes can be
// extended; anything else surfaces an invalid state error from the domain.
func (h ExtendQuoteCommandHandler) Handle(ctx context.Context, cmd ExtendQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.QuoteRepository()
	extendedQuote, err := quoteRepo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return err
	}

	if err = extendedQuote.ExtendExpiration(time.Now().UTC(), cmd.Minutes()); err != nil {
		return err
	}

	if err = quoteRepo.Update(ctx, extendedQuote); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
