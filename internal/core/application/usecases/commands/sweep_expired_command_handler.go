package commands

import (
	"context"
	"time"

	"broker/internal/core/ports"
)

// SweepReport summarizes one sweep pass for job logging.
type SweepReport struct {
	QuotesExpired int
	OffersExpired int
}

// groupedEvent pairs an already-serialized event with its target groups so
// publication can happen after the deleting transaction commits.
type groupedEvent struct {
	groups []string
	event  ports.Event
}

// SweepExpiredCommandHandler handles TTL enforcement. Payloads are serialized
// before deletion inside the transaction; nothing is published unless the
// commit succeeds. Zero-row deletes keep the sweep safe against racing
// accepts and cancels.
type SweepExpiredCommandHandler struct {
	uowFactory  UoWFactory
	broadcaster ports.Broadcaster
}

// NewSweepExpiredCommandHandler creates a handler for expiry sweep
// operations.
func NewSweepExpiredCommandHandler(
	uowFactory UoWFactory,
	broadcaster ports.Broadcaster,
) SweepExpiredCommandHandler {
	return SweepExpiredCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes one sweep pass. Expired pending quotes go first, taking
// their offers with them; then pending offers that outlived their own TTL.
// Quote removals reach the quote group, the owner's feed, and the global
// feed; offer removals reach the quote group and the quote owner's feed.
func (h SweepExpiredCommandHandler) Handle(ctx context.Context, cmd SweepExpiredCommand) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{}, err
	}

	now := time.Now().UTC()
	report := SweepReport{}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return report, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	quoteRepo := uow.QuoteRepository()
	offerRepo := uow.OfferRepository()

	var pending []groupedEvent

	expiredQuotes, err := quoteRepo.GetAllPendingExpiredBefore(ctx, now)
	if err != nil {
		return report, err
	}

	for _, expiredQuote := range expiredQuotes {
		if err = expiredQuote.Expire(); err != nil {
			return report, err
		}

		pending = append(pending, groupedEvent{
			groups: []string{
				ports.GroupQuote(expiredQuote.ID()),
				ports.GroupUserQuotes(expiredQuote.ClientID()),
				ports.GroupNewQuotes,
			},
			event: ports.Event{Type: ports.EventQuoteExpired, Data: NewQuotePayload(expiredQuote)},
		})

		if err = offerRepo.DeleteByQuote(ctx, expiredQuote.ID()); err != nil {
			return report, err
		}
		if err = quoteRepo.Delete(ctx, expiredQuote.ID()); err != nil {
			return report, err
		}

		report.QuotesExpired++
	}

	expiredOffers, err := offerRepo.GetAllPendingExpiredBefore(ctx, now)
	if err != nil {
		return report, err
	}

	for _, expiredOffer := range expiredOffers {
		if err = expiredOffer.Expire(); err != nil {
			return report, err
		}

		groups := []string{ports.GroupQuote(expiredOffer.QuoteID())}

		// The owning quote usually outlives its offers; when it does, the
		// client's private feed learns about the lapsed bid too.
		owningQuote, quoteErr := quoteRepo.Get(ctx, expiredOffer.QuoteID())
		if quoteErr == nil {
			groups = append(groups, ports.GroupUserQuotes(owningQuote.ClientID()))
		}

		pending = append(pending, groupedEvent{
			groups: groups,
			event:  ports.Event{Type: ports.EventOfferExpired, Data: NewOfferPayload(expiredOffer)},
		})

		if err = offerRepo.Delete(ctx, expiredOffer.ID()); err != nil {
			return report, err
		}

		report.OffersExpired++
	}

	if err = uow.Commit(ctx); err != nil {
		return SweepReport{}, err
	}

	for _, ge := range pending {
		for _, group := range ge.groups {
			h.broadcaster.Publish(group, ge.event)
		}
	}

	return report, nil
}
