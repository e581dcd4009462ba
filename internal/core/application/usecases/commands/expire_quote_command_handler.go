package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"
)

// ExpireQuoteCommandHandler handles on-demand quote expiry. Same removal and
// fan-out as the sweeper, but with an ownership check and a history entry
// naming the principal who pulled the trigger.
type ExpireQuoteCommandHandler struct {
	uowFactory  QuoteUoWFactory
	broadcaster ports.Broadcaster
}

// NewExpireQuoteCommandHandler creates a handler for on-demand quote expiry.
func NewExpireQuoteCommandHandler(
	uowFactory QuoteUoWFactory,
	broadcaster ports.Broadcaster,
) ExpireQuoteCommandHandler {
	return ExpireQuoteCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the on-demand expiry command. Only the quote's owner or an
// admin may expire it; only pending quotes can expire. Deletes the quote and
// its offers, then publishes quote_expired with the pre-deletion snapshot.
func (h ExpireQuoteCommandHandler) Handle(ctx context.Context, cmd ExpireQuoteCommand) error {
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
	expiredQuote, err := quoteRepo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return err
	}

	principal := cmd.Principal()
	if !principal.IsAdmin() && !principal.ID.IsEqual(expiredQuote.ClientID()) {
		return errs.NewUnauthorizedError("only the quote owner or an admin may expire it")
	}

	if err = expiredQuote.Expire(); err != nil {
		return err
	}

	payload := NewQuotePayload(expiredQuote)

	event, err := history.NewEvent(
		expiredQuote.CorrelationID(),
		history.KindCancelled,
		"quote expired on demand",
		principal.ID,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, event); err != nil {
		return err
	}

	if err = uow.OfferRepository().DeleteByQuote(ctx, expiredQuote.ID()); err != nil {
		return err
	}

	if err = quoteRepo.Delete(ctx, expiredQuote.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	broadcastEvent := ports.Event{Type: ports.EventQuoteExpired, Data: payload}
	h.broadcaster.Publish(ports.GroupQuote(expiredQuote.ID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupUserQuotes(expiredQuote.ClientID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupNewQuotes, broadcastEvent)

	return nil
}
