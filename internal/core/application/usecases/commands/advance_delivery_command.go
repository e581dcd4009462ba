package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand moves a delivery one step forward along the fixed
// lifecycle: assigned, picked_up, in_transit, delivered, paid.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates a command to advance a delivery.
func NewAdvanceDeliveryCommand(deliveryID, actorID kernel.UUID) (AdvanceDeliveryCommand, error) {
	advanceCommand := AdvanceDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setDeliveryID(deliveryID),
		advanceCommand.setActorID(actorID),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to advance.
func (c AdvanceDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ActorID returns the identifier of the requesting principal.
func (c AdvanceDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AdvanceDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AdvanceDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}
