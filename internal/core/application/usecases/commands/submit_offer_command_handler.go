package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"
)

// SubmitOfferCommandHandler handles bid submission. Enforces the
// one-offer-per-courier-per-quote rule by updating the courier's live offer
// in place when one exists, and rejects self-bidding.
type SubmitOfferCommandHandler struct {
	uowFactory  QuoteUoWFactory
	broadcaster ports.Broadcaster
	ttl         kernel.TTLPolicy
}

// NewSubmitOfferCommandHandler creates a handler for bid submission
// operations.
func NewSubmitOfferCommandHandler(
	uowFactory QuoteUoWFactory,
	broadcaster ports.Broadcaster,
	ttl kernel.TTLPolicy,
) SubmitOfferCommandHandler {
	return SubmitOfferCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		ttl:         ttl,
	}
}

// Handle processes the bid submission command. The quote must still be
// pending and the bidder must not be the quote's own client. Publishes
// offer_made (new bid) or offer_updated (refreshed bid) to the quote group
// and the client's private feed only; the global feed never carries bids.
func (h SubmitOfferCommandHandler) Handle(ctx context.Context, cmd SubmitOfferCommand) error {
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

	targetQuote, err := uow.QuoteRepository().Get(ctx, cmd.QuoteID())
	if err != nil {
		return err
	}

	if targetQuote.Status().IsTerminal() {
		return errs.NewInvalidStateError("quote", targetQuote.Status().String(), "bid on")
	}

	if cmd.CourierID().IsEqual(targetQuote.ClientID()) {
		return errs.NewValueIsInvalidError("courierID: a client cannot bid on their own quote")
	}

	now := time.Now().UTC()
	offerRepo := uow.OfferRepository()

	submittedOffer, err := offerRepo.GetPendingByCourierAndQuote(ctx, cmd.CourierID(), cmd.QuoteID())
	if err != nil {
		return err
	}

	eventType := ports.EventOfferUpdated
	if submittedOffer == nil {
		eventType = ports.EventOfferMade
		submittedOffer, err = offer.NewOffer(
			cmd.OfferID(),
			cmd.CourierID(),
			cmd.QuoteID(),
			cmd.ProposedPrice(),
			cmd.EstimatedDuration(),
			cmd.VehicleID(),
			now,
			h.ttl.OfferExpiry(now),
		)
		if err != nil {
			return err
		}

		if err = offerRepo.Add(ctx, submittedOffer); err != nil {
			return err
		}
	} else {
		if err = submittedOffer.UpdateBid(
			cmd.ProposedPrice(), cmd.EstimatedDuration(), cmd.VehicleID(), now,
		); err != nil {
			return err
		}

		if err = offerRepo.Update(ctx, submittedOffer); err != nil {
			return err
		}
	}

	event, err := history.NewEvent(
		targetQuote.CorrelationID(),
		history.KindOfferMade,
		"offer made",
		cmd.CourierID(),
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

	broadcastEvent := ports.Event{Type: eventType, Data: NewOfferPayload(submittedOffer)}
	h.broadcaster.Publish(ports.GroupQuote(targetQuote.ID()), broadcastEvent)
	h.broadcaster.Publish(ports.GroupUserQuotes(targetQuote.ClientID()), broadcastEvent)

	return nil
}
