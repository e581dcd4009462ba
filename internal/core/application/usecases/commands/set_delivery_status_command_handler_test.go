package commands_test

import (
	"testing"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetDeliveryStatusCommandHandler_Handle_StatusChanged(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	assignedDelivery := newAssignedDelivery(clientID, courierID)
	cmd, err := commands.NewSetDeliveryStatusCommand(assignedDelivery.ID(), delivery.InTransit, kernel.NewUUID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("HistoryRepository").Return(historyRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	deliveryRepo.On("Get", mock.Anything, assignedDelivery.ID()).Return(assignedDelivery, nil).Once()
	deliveryRepo.On("Update", mock.Anything, assignedDelivery).Return(nil).Once()
	historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*history.Event")).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventDeliveryStatusChanged
	})).Times(3)

	h := commands.NewSetDeliveryStatusCommandHandler(factory, broadcaster)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, delivery.InTransit, assignedDelivery.Status())
	deliveryRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestSetDeliveryStatusCommandHandler_Handle_CancelledTarget(t *testing.T) {
	ctx := t.Context()
	assignedDelivery := newAssignedDelivery(kernel.NewUUID(), kernel.NewUUID())
	cmd, err := commands.NewSetDeliveryStatusCommand(assignedDelivery.ID(), delivery.Cancelled, kernel.NewUUID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("HistoryRepository").Return(historyRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	deliveryRepo.On("Get", mock.Anything, assignedDelivery.ID()).Return(assignedDelivery, nil).Once()
	deliveryRepo.On("Update", mock.Anything, assignedDelivery).Return(nil).Once()
	historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*history.Event")).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventDeliveryCancelled
	})).Times(3)

	h := commands.NewSetDeliveryStatusCommandHandler(factory, broadcaster)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, delivery.Cancelled, assignedDelivery.Status())
	require.NotNil(t, assignedDelivery.CancelledAt())
	broadcaster.AssertExpectations(t)
}

func TestSetDeliveryStatusCommandHandler_Handle_CancelAfterDelivered(t *testing.T) {
	ctx := t.Context()
	deliveredDelivery := newAssignedDelivery(kernel.NewUUID(), kernel.NewUUID())
	for range 3 {
		_, advErr := deliveredDelivery.Advance(deliveredDelivery.CreatedAt())
		require.NoError(t, advErr)
	}
	require.Equal(t, delivery.Delivered, deliveredDelivery.Status())

	cmd, err := commands.NewSetDeliveryStatusCommand(deliveredDelivery.ID(), delivery.Cancelled, kernel.NewUUID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("Rollback", ctx).Return(nil)
	deliveryRepo.On("Get", mock.Anything, deliveredDelivery.ID()).Return(deliveredDelivery, nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)

	h := commands.NewSetDeliveryStatusCommandHandler(factory, broadcaster)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	require.Equal(t, delivery.Delivered, deliveredDelivery.Status())
	broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	deliveryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSetDeliveryStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewSetDeliveryStatusCommand(deliveryID, delivery.PickedUp, kernel.NewUUID())
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("Rollback", ctx).Return(nil)
	deliveryRepo.On("Get", mock.Anything, deliveryID).
		Return(nil, errs.NewObjectNotFoundError("deliveryID", deliveryID)).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetDeliveryStatusCommandHandler(factory, new(MockBroadcaster))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
