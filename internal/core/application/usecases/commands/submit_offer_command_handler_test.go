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

func TestSubmitOfferCommandHandler_Handle_NewOffer(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	pendingQuote := newPendingQuote(clientID)
	price, _ := kernel.NewPrice(4500)
	cmd, err := commands.NewSubmitOfferCommand(
		kernel.NewUUID(), courierID, pendingQuote.ID(), price, nil, nil,
	)
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
	offerRepo.On("GetPendingByCourierAndQuote", mock.Anything, courierID, pendingQuote.ID()).
		Return(nil, nil).Once()
	offerRepo.On("Add", mock.Anything, mock.AnythingOfType("*offer.Offer")).Return(nil).Once()
	historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*history.Event")).Return(nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", ports.GroupQuote(pendingQuote.ID()), mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventOfferMade
	})).Once()
	broadcaster.On("Publish", ports.GroupUserQuotes(clientID), mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventOfferMade
	})).Once()

	h := commands.NewSubmitOfferCommandHandler(factory, broadcaster, kernel.DefaultTTLPolicy())
	require.NoError(t, h.Handle(ctx, cmd))
	offerRepo.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
	// Bids never reach the global feed.
	broadcaster.AssertNotCalled(t, "Publish", ports.GroupNewQuotes, mock.Anything)
}

func TestSubmitOfferCommandHandler_Handle_ResubmitUpdatesInPlace(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	pendingQuote := newPendingQuote(clientID)
	existingOffer := newPendingOffer(courierID, pendingQuote.ID())
	newPrice, _ := kernel.NewPrice(4000)
	cmd, err := commands.NewSubmitOfferCommand(
		kernel.NewUUID(), courierID, pendingQuote.ID(), newPrice, nil, nil,
	)
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
	offerRepo.On("GetPendingByCourierAndQuote", mock.Anything, courierID, pendingQuote.ID()).
		Return(existingOffer, nil).Once()
	offerRepo.On("Update", mock.Anything, existingOffer).Return(nil).Once()
	historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventOfferUpdated
	})).Twice()

	h := commands.NewSubmitOfferCommandHandler(factory, broadcaster, kernel.DefaultTTLPolicy())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, newPrice, existingOffer.ProposedPrice())
	offerRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	broadcaster.AssertExpectations(t)
}

func TestSubmitOfferCommandHandler_Handle_SelfBid(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	pendingQuote := newPendingQuote(clientID)
	price, _ := kernel.NewPrice(4500)
	cmd, err := commands.NewSubmitOfferCommand(
		kernel.NewUUID(), clientID, pendingQuote.ID(), price, nil, nil,
	)
	require.NoError(t, err)

	quoteRepo := new(MockQuoteRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("Rollback", ctx).Return(nil)
	quoteRepo.On("Get", mock.Anything, pendingQuote.ID()).Return(pendingQuote, nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOfferCommandHandler(factory, new(MockBroadcaster), kernel.DefaultTTLPolicy())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSubmitOfferCommandHandler_Handle_QuoteNotPending(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	acceptedQuote := newPendingQuote(clientID)
	require.NoError(t, acceptedQuote.Accept())
	price, _ := kernel.NewPrice(4500)
	cmd, err := commands.NewSubmitOfferCommand(
		kernel.NewUUID(), kernel.NewUUID(), acceptedQuote.ID(), price, nil, nil,
	)
	require.NoError(t, err)

	quoteRepo := new(MockQuoteRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("Rollback", ctx).Return(nil)
	quoteRepo.On("Get", mock.Anything, acceptedQuote.ID()).Return(acceptedQuote, nil).Once()

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOfferCommandHandler(factory, new(MockBroadcaster), kernel.DefaultTTLPolicy())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}
