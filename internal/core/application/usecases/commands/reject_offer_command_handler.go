package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/ports"
)

// RejectOfferCommandHandler handles offer rejection.
type RejectOfferCommandHandler struct {
	uowFactory  QuoteUoWFactory
	broadcaster ports.Broadcaster
}

// NewRejectOfferCommandHandler creates a handler for offer rejection
// operations.
func NewRejectOfferCommandHandler(
	uowFactory QuoteUoWFactory,
	broadcaster ports.Broadcaster,
) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the offer rejection command. Only pending offers can be
// rejected. Publishes offer_rejected to the quote group, the client's feed,
// and the courier's own feed so the bidder learns the outcome.
func (h RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) error {
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

	offerRepo := uow.OfferRepository()
	rejectedOffer, err := offerRepo.Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	targetQuote, err := uow.QuoteRepository().Get(ctx, rejectedOffer.QuoteID())
	if err != nil {
		return err
	}

	if err = rejectedOffer.Reject(); err != nil {
		return err
	}

	if err = offerRepo.Update(ctx, rejectedOffer); err != nil {
		return err
	}

	event, err := history.NewEvent(
		targetQuote.CorrelationID(),
		history.KindOfferRejected,
		"offer rejected",
		cmd.ActorID(),
		time.Now().UTC(),
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

	broadcastEvent := ports.Event{Type: ports.EventOfferRejected, Data: NewOfferPayload(rejectedOffer)}
	h.broadcaster.Publish(ports.GroupQuote(targetQuote.ID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupUserQuotes(targetQuote.ClientID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupUserQuotes(rejectedOffer.CourierID()), broadcastEvent)

	return nil
}
