package commands

import (
	"context"
	"fmt"
	"time"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/history"
	"broker/internal/core/ports"
)

// SetDeliveryStatusCommandHandler handles explicit delivery status changes.
type SetDeliveryStatusCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	broadcaster ports.Broadcaster
}

// NewSetDeliveryStatusCommandHandler creates a handler for explicit status
// changes.
func NewSetDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	broadcaster ports.Broadcaster,
) SetDeliveryStatusCommandHandler {
	return SetDeliveryStatusCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the status change command. A target of cancelled goes
// through the cancellation rules and is broadcast as delivery_cancelled;
// everything else is a delivery_status_changed. completed_at and
// cancelled_at stamping follows the same one-shot rules as the linear path.
func (h SetDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd SetDeliveryStatusCommand) error {
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
	changedDelivery, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = changedDelivery.SetStatus(cmd.Status(), now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, changedDelivery); err != nil {
		return err
	}

	kind := history.KindStatusChanged
	eventType := ports.EventDeliveryStatusChanged
	switch cmd.Status() {
	case delivery.Cancelled:
		kind = history.KindCancelled
		eventType = ports.EventDeliveryCancelled
	case delivery.Delivered:
		kind = history.KindCompleted
	}

	event, err := history.NewEvent(
		changedDelivery.CorrelationID(),
		kind,
		fmt.Sprintf("delivery status changed to %s", cmd.Status()),
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

	publishDeliveryEvent(h.broadcaster, eventType, changedDelivery)
	return nil
}
