package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/ports"
)

// CancelQuoteCommandHandler handles quote cancellation. The payload is
// snapshotted before the rows go away so subscribers still receive a full
// quote in the removal event.
type CancelQuoteCommandHandler struct {
	uowFactory  QuoteUoWFactory
	broadcaster ports.Broadcaster
}

// NewCancelQuoteCommandHandler creates a handler for quote cancellation
// operations.
func NewCancelQuoteCommandHandler(
	uowFactory QuoteUoWFactory,
	broadcaster ports.Broadcaster,
) CancelQuoteCommandHandler {
	return CancelQuoteCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the quote cancellation command. Only pending quotes can be
// cancelled. Appends a cancelled history event, deletes the quote's offers
// and the quote itself, then publishes quote_expired to the quote group, the
// client's private feed, and the global feed so watchers drop it.
func (h CancelQuoteCommandHandler) Handle(ctx context.Context, cmd CancelQuoteCommand) error {
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
	cancelledQuote, err := quoteRepo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return err
	}

	if err = cancelledQuote.Cancel(); err != nil {
		return err
	}

	payload := NewQuotePayload(cancelledQuote)

	event, err := history.NewEvent(
		cancelledQuote.CorrelationID(),
		history.KindCancelled,
		"quote cancelled",
		cmd.ActorID(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, event); err != nil {
		return err
	}

	if err = uow.OfferRepository().DeleteByQuote(ctx, cancelledQuote.ID()); err != nil {
		return err
	}

	if err = quoteRepo.Delete(ctx, cancelledQuote.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	broadcastEvent := ports.Event{Type: ports.EventQuoteExpired, Data: payload}
	h.broadcaster.Publish(ports.GroupQuote(cancelledQuote.ID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupUserQuotes(cancelledQuote.ClientID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupNewQuotes, broadcastEvent)

	return nil
}
