package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/quote"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"
)

// AcceptOfferCommandHandler handles the atomic conversion of an accepted
// offer into a delivery. The quote's pending status is claimed with a
// conditional update inside the transaction, so exactly one accept wins under
// any interleaving with sibling accepts, a cancel, or the sweeper. Everyone
// else gets a conflict error.
type AcceptOfferCommandHandler struct {
	uowFactory  UoWFactory
	broadcaster ports.Broadcaster
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance
// operations. Requires the full UoWFactory: acceptance touches quotes,
// offers, deliveries, and history in one transaction.
func NewAcceptOfferCommandHandler(
	uowFactory UoWFactory,
	broadcaster ports.Broadcaster,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the offer acceptance command.
//
// In one transaction: re-reads the offer and its quote, claims the quote with
// a pending-to-accepted conditional update, creates the delivery under the
// quote's correlation id with the offer's price frozen in, appends the
// acceptance history, and deletes the quote with all its offers. Returns a
// conflict error when the offer is no longer pending or the quote claim
// loses the race. Publishes quote_accepted and delivery_created only after
// the commit.
func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
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
	winningOffer, err := offerRepo.Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	if winningOffer.Status().IsTerminal() {
		return errs.NewConflictError("offer", cmd.OfferID())
	}

	quoteRepo := uow.QuoteRepository()
	acceptedQuote, err := quoteRepo.Get(ctx, winningOffer.QuoteID())
	if err != nil {
		return err
	}

	claimed, err := quoteRepo.UpdateStatusIfPending(ctx, acceptedQuote.ID(), quote.Accepted)
	if err != nil {
		return err
	}
	if !claimed {
		return errs.NewConflictError("quote", acceptedQuote.ID())
	}

	if err = acceptedQuote.Accept(); err != nil {
		return err
	}
	if err = winningOffer.Accept(); err != nil {
		return err
	}

	now := time.Now().UTC()
	quoteDetails := acceptedQuote.Details()
	newDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(),
		acceptedQuote.ClientID(),
		winningOffer.CourierID(),
		acceptedQuote.CorrelationID(),
		delivery.Details{
			PickupAddress:   quoteDetails.PickupAddress,
			DeliveryAddress: quoteDetails.DeliveryAddress,
			CategoryID:      quoteDetails.CategoryID,
			Description:     quoteDetails.Description,
			Observations:    quoteDetails.Observations,
			EstimatedWeight: quoteDetails.EstimatedWeight,
			EstimatedSize:   quoteDetails.EstimatedSize,
		},
		winningOffer.ProposedPrice(),
		winningOffer.VehicleID(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return err
	}

	// Two entries under the same correlation id: the acceptance itself and
	// the delivery it spawned. The narrative must stay readable after the
	// quote row is gone.
	historyRepo := uow.HistoryRepository()
	for _, description := range []string{"offer accepted", "delivery created"} {
		var event *history.Event
		event, err = history.NewEvent(
			acceptedQuote.CorrelationID(),
			history.KindOfferAccepted,
			description,
			cmd.ActorID(),
			now,
		)
		if err != nil {
			return err
		}

		if err = historyRepo.Append(ctx, event); err != nil {
			return err
		}
	}

	if err = offerRepo.DeleteByQuote(ctx, acceptedQuote.ID()); err != nil {
		return err
	}

	if err = quoteRepo.Delete(ctx, acceptedQuote.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	quoteEvent := ports.Event{Type: ports.EventQuoteAccepted, Data: NewQuotePayload(acceptedQuote)}
	h.broadcaster.Publish(ports.GroupQuote(acceptedQuote.ID()), quoteEvent)
	h.broadcaster.Publish(ports.GroupUserQuotes(acceptedQuote.ClientID()), quoteEvent)
	h.broadcaster.Publish(ports.GroupNewQuotes, quoteEvent)

	deliveryEvent := ports.Event{Type: ports.EventDeliveryCreated, Data: NewDeliveryPayload(newDelivery)}
	h.broadcaster.Publish(ports.GroupDelivery(newDelivery.ID()), deliveryEvent)
	h.broadcaster.Publish(ports.GroupUserDeliveries(newDelivery.ClientID()), deliveryEvent)
	h.broadcaster.Publish(ports.GroupUserDeliveries(newDelivery.CourierID()), deliveryEvent)

	return nil
}
