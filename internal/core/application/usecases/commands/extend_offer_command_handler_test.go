package commands_test

import (
	"testing"
	"time"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExtendOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pendingOffer := newPendingOffer(kernel.NewUUID(), kernel.NewUUID())
	originalExpiry := pendingOffer.ExpiresAt()
	cmd, err := commands.NewExtendOfferCommand(pendingOffer.ID(), 3)
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	offerRepo.On("Get", mock.Anything, pendingOffer.ID()).Return(pendingOffer, nil).Once()
	offerRepo.On("Update", mock.Anything, pendingOffer).Return(nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExtendOfferCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, originalExpiry.Add(3*time.Minute), pendingOffer.ExpiresAt())
	offerRepo.AssertExpectations(t)
}

func TestExtendOfferCommandHandler_Handle_AlreadyResolved(t *testing.T) {
	ctx := t.Context()
	resolvedOffer := newPendingOffer(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, resolvedOffer.Reject())
	cmd, err := commands.NewExtendOfferCommand(resolvedOffer.ID(), 3)
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Rollback", ctx).Return(nil)
	offerRepo.On("Get", mock.Anything, resolvedOffer.ID()).Return(resolvedOffer, nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExtendOfferCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	offerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
