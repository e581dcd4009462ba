package commands

import (
	"context"
	"time"
)

// ExtendOfferCommandHandler handles offer TTL extension.
type ExtendOfferCommandHandler struct {
	uowFactory QuoteUoWFactory
}

// NewExtendOfferCommandHandler creates a handler for offer extension
// operations.
func NewExtendOfferCommandHandler(uowFactory QuoteUoWFactory) ExtendOfferCommandHandler {
	return ExtendOfferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the offer extension command. Only pending offers can be
// extended.
func (h ExtendOfferCommandHandler) Handle(ctx context.Context, cmd ExtendOfferCommand) error {
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
	extendedOffer, err := offerRepo.Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	if err = extendedOffer.ExtendExpiration(time.Now().UTC(), cmd.Minutes()); err != nil {
		return err
	}

	if err = offerRepo.Update(ctx, extendedOffer); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
