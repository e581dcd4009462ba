package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/quote"
	"broker/internal/core/ports"
)

// CreateQuoteCommandHandler handles the business logic for quote creation.
// Persists the quote with a fresh correlation id and a TTL-derived expiry,
// appends the opening history event, and announces the quote on the global
// feed once the transaction has committed.
type CreateQuoteCommandHandler struct {
	uowFactory  QuoteUoWFactory
	broadcaster ports.Broadcaster
	ttl         kernel.TTLPolicy
}

// NewCreateQuoteCommandHandler creates a handler for quote creation
// operations. Requires a QuoteUoWFactory for transactional persistence, a
// Broadcaster for realtime fan-out, and the TTL policy that sets the expiry.
func NewCreateQuoteCommandHandler(
	uowFactory QuoteUoWFactory,
	broadcaster ports.Broadcaster,
	ttl kernel.TTLPolicy,
) CreateQuoteCommandHandler {
	return CreateQuoteCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		ttl:         ttl,
	}
}

// Handle processes the quote creation command. Creates the quote in pending
// status expiring at now plus the quote TTL, appends a quote_created history
// event, and publishes quote_created to the quote's own group and the global
// new_quotes feed after commit.
func (h CreateQuoteCommandHandler) Handle(ctx context.Context, cmd CreateQuoteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	newQuote, err := quote.NewQuote(
		cmd.QuoteID(),
		cmd.ClientID(),
		cmd.Details(),
		cmd.ClientPrice(),
		cmd.PaymentMethod(),
		now,
		h.ttl.QuoteExpiry(now),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.QuoteRepository().Add(ctx, newQuote); err != nil {
		return err
	}

	event, err := history.NewEvent(
		newQuote.CorrelationID(),
		history.KindQuoteCreated,
		"quote created",
		cmd.ClientID(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := NewQuotePayload(newQuote)
	broadcastEvent := ports.Event{Type: ports.EventQuoteCreated, Data: payload}
	h.broadcaster.Publish(ports.GroupQuote(newQuote.ID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupNewQuotes, broadcastEvent)

	return nil
}
