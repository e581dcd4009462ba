package commands

import (
	"context"
	"time"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/ports"
)

// CancelDeliveryCommandHandler handles delivery cancellation.
type CancelDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	broadcaster ports.Broadcaster
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation
// operations.
func NewCancelDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	broadcaster ports.Broadcaster,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the delivery cancellation command. The delivery row stays
// around in cancelled status with cancelled_at stamped; unlike quotes,
// deliveries are never deleted.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	cancelledDelivery, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = cancelledDelivery.Cancel(now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, cancelledDelivery); err != nil {
		return err
	}

	event, err := history.NewEvent(
		cancelledDelivery.CorrelationID(),
		history.KindCancelled,
		"delivery cancelled",
		cmd.ActorID(),
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

	publishDeliveryEvent(h.broadcaster, ports.EventDeliveryCancelled, cancelledDelivery)
	return nil
}
