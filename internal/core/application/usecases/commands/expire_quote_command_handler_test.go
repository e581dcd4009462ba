package commands_test

import (
	"testing"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireQuoteCommandHandler_Handle_OwnerMayExpire(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	pendingQuote := newPendingQuote(clientID)
	principal := ports.Principal{ID: clientID, Role: ports.RoleClient}
	cmd, err := commands.NewExpireQuoteCommand(pendingQuote.ID(), principal)
	require.NoError(t, err)

	quoteRepo := new(MockQuoteRepository)
	offerRepo := new(MockOfferRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("HistoryRepository").Return(historyRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	quoteRepo.On("Get", mock.Anything, pendingQuote.ID()).Return(pendingQuote, nil).Once()
	historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	offerRepo.On("DeleteByQuote", mock.Anything, pendingQuote.ID()).Return(nil).Once()
	quoteRepo.On("Delete", mock.Anything, pendingQuote.ID()).Return(nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventQuoteExpired
	})).Times(3)

	h := commands.NewExpireQuoteCommandHandler(factory, broadcaster)
	require.NoError(t, h.Handle(ctx, cmd))
	broadcaster.AssertExpectations(t)
}

func TestExpireQuoteCommandHandler_Handle_AdminMayExpire(t *testing.T) {
	ctx := t.Context()
	pendingQuote := newPendingQuote(kernel.NewUUID())
	principal := ports.Principal{ID: kernel.NewUUID(), Role: ports.RoleAdmin}
	cmd, err := commands.NewExpireQuoteCommand(pendingQuote.ID(), principal)
	require.NoError(t, err)

	quoteRepo := new(MockQuoteRepository)
	offerRepo := new(MockOfferRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("HistoryRepository").Return(historyRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	quoteRepo.On("Get", mock.Anything, pendingQuote.ID()).Return(pendingQuote, nil).Once()
	historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	offerRepo.On("DeleteByQuote", mock.Anything, pendingQuote.ID()).Return(nil).Once()
	quoteRepo.On("Delete", mock.Anything, pendingQuote.ID()).Return(nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", mock.Anything, mock.Anything).Times(3)

	h := commands.NewExpireQuoteCommandHandler(factory, broadcaster)
	require.NoError(t, h.Handle(ctx, cmd))
}

func TestExpireQuoteCommandHandler_Handle_StrangerForbidden(t *testing.T) {
	ctx := t.Context()
	pendingQuote := newPendingQuote(kernel.NewUUID())
	principal := ports.Principal{ID: kernel.NewUUID(), Role: ports.RoleCourier}
	cmd, err := commands.NewExpireQuoteCommand(pendingQuote.ID(), principal)
	require.NoError(t, err)

	quoteRepo := new(MockQuoteRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("Rollback", ctx).Return(nil)
	quoteRepo.On("Get", mock.Anything, pendingQuote.ID()).Return(pendingQuote, nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)

	h := commands.NewExpireQuoteCommandHandler(factory, broadcaster)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
