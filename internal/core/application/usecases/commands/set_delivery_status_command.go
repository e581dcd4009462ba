package commands

import (
	"errors"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

var ErrSetDeliveryStatusCommandIsNotConstructed = errors.New(
	"SetDeliveryStatusCommand must be created via NewSetDeliveryStatusCommand constructor",
)

// SetDeliveryStatusCommand moves a delivery to an explicit target state.
// Administrative entry point decoupled from the linear advance table.
type SetDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	status     delivery.Status
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetDeliveryStatusCommand creates a command to set a delivery's status.
// The target must be a known status.
func NewSetDeliveryStatusCommand(
	deliveryID kernel.UUID,
	status delivery.Status,
	actorID kernel.UUID,
) (SetDeliveryStatusCommand, error) {
	statusCommand := SetDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setDeliveryID(deliveryID),
		statusCommand.setStatus(status),
		statusCommand.setActorID(actorID),
	); err != nil {
		return SetDeliveryStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to modify.
func (c SetDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Status returns the target status.
func (c SetDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

// ActorID returns the identifier of the requesting principal.
func (c SetDeliveryStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SetDeliveryStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *SetDeliveryStatusCommand) setStatus(status delivery.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *SetDeliveryStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}
