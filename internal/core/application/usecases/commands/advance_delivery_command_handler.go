package commands

import (
	"context"
	"fmt"
	"time"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/history"
	"broker/internal/core/ports"
)

// AdvanceDeliveryCommandHandler handles the linear delivery progression.
type AdvanceDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	broadcaster ports.Broadcaster
}

// NewAdvanceDeliveryCommandHandler creates a handler for delivery advance
// operations.
func NewAdvanceDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	broadcaster ports.Broadcaster,
) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the delivery advance command. Terminal states have no
// successor and surface an invalid state error. The first arrival at
// delivered also stamps completed_at; the history entry for that step is
// recorded as a completion rather than a plain status change.
func (h AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
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
	advancedDelivery, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	next, err := advancedDelivery.Advance(now)
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, advancedDelivery); err != nil {
		return err
	}

	kind := history.KindStatusChanged
	if next == delivery.Delivered {
		kind = history.KindCompleted
	}

	event, err := history.NewEvent(
		advancedDelivery.CorrelationID(),
		kind,
		fmt.Sprintf("delivery status changed to %s", next),
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

	publishDeliveryEvent(h.broadcaster, ports.EventDeliveryStatusChanged, advancedDelivery)
	return nil
}

// publishDeliveryEvent fans a delivery event out to the delivery's group and
// both parties' private feeds.
func publishDeliveryEvent(broadcaster ports.Broadcaster, eventType string, d *delivery.Delivery) {
	broadcastEvent := ports.Event{Type: eventType, Data: NewDeliveryPayload(d)}
	broadcaster.Publish(ports.GroupDelivery(d.ID()), broadcastEvent)
	broadcaster.Publish(ports.GroupUserDeliveries(d.ClientID()), broadcastEvent)
	broadcaster.Publish(ports.GroupUserDeliveries(d.CourierID()), broadcastEvent)
}
