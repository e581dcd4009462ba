package commands_test

import (
	"errors"
	"testing"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"
	"broker/internal/core/domain/model/quote"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepExpiredCommandHandler_Handle_NothingExpired(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSweepExpiredCommand()

	quoteRepo := new(MockQuoteRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	quoteRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*quote.Quote{}, nil).Once()
	offerRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*offer.Offer{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)

	h := commands.NewSweepExpiredCommandHandler(factory, broadcaster)
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Zero(t, report.QuotesExpired)
	require.Zero(t, report.OffersExpired)
	broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSweepExpiredCommandHandler_Handle_ExpiresQuoteWithOffers(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSweepExpiredCommand()
	clientID := kernel.NewUUID()
	expiredQuote := newPendingQuote(clientID)

	quoteRepo := new(MockQuoteRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	quoteRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*quote.Quote{expiredQuote}, nil).Once()
	offerRepo.On("DeleteByQuote", mock.Anything, expiredQuote.ID()).Return(nil).Once()
	quoteRepo.On("Delete", mock.Anything, expiredQuote.ID()).Return(nil).Once()
	offerRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*offer.Offer{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", ports.GroupQuote(expiredQuote.ID()), mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventQuoteExpired
	})).Once()
	broadcaster.On("Publish", ports.GroupUserQuotes(clientID), mock.Anything).Once()
	broadcaster.On("Publish", ports.GroupNewQuotes, mock.Anything).Once()

	h := commands.NewSweepExpiredCommandHandler(factory, broadcaster)
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, report.QuotesExpired)
	quoteRepo.AssertExpectations(t)
	offerRepo.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestSweepExpiredCommandHandler_Handle_ExpiresOfferOnLiveQuote(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSweepExpiredCommand()
	clientID := kernel.NewUUID()
	liveQuote := newPendingQuote(clientID)
	expiredOffer := newPendingOffer(kernel.NewUUID(), liveQuote.ID())

	quoteRepo := new(MockQuoteRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	quoteRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*quote.Quote{}, nil).Once()
	offerRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*offer.Offer{expiredOffer}, nil).Once()
	quoteRepo.On("Get", mock.Anything, liveQuote.ID()).Return(liveQuote, nil).Once()
	offerRepo.On("Delete", mock.Anything, expiredOffer.ID()).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", ports.GroupQuote(liveQuote.ID()), mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == ports.EventOfferExpired
	})).Once()
	broadcaster.On("Publish", ports.GroupUserQuotes(clientID), mock.Anything).Once()

	h := commands.NewSweepExpiredCommandHandler(factory, broadcaster)
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, report.OffersExpired)
	broadcaster.AssertExpectations(t)
	broadcaster.AssertNotCalled(t, "Publish", ports.GroupNewQuotes, mock.Anything)
}

func TestSweepExpiredCommandHandler_Handle_OrphanOfferSkipsOwnerFeed(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSweepExpiredCommand()
	expiredOffer := newPendingOffer(kernel.NewUUID(), kernel.NewUUID())

	quoteRepo := new(MockQuoteRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	quoteRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*quote.Quote{}, nil).Once()
	offerRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*offer.Offer{expiredOffer}, nil).Once()
	quoteRepo.On("Get", mock.Anything, expiredOffer.QuoteID()).
		Return(nil, errs.NewObjectNotFoundError("quoteID", expiredOffer.QuoteID())).Once()
	offerRepo.On("Delete", mock.Anything, expiredOffer.ID()).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", ports.GroupQuote(expiredOffer.QuoteID()), mock.Anything).Once()

	h := commands.NewSweepExpiredCommandHandler(factory, broadcaster)
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, report.OffersExpired)
	broadcaster.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSweepExpiredCommandHandler_Handle_NoPublishOnCommitError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSweepExpiredCommand()
	expiredQuote := newPendingQuote(kernel.NewUUID())

	quoteRepo := new(MockQuoteRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("QuoteRepository").Return(quoteRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(errors.New("commit error"))
	uow.On("Rollback", ctx).Return(nil)

	quoteRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*quote.Quote{expiredQuote}, nil).Once()
	offerRepo.On("DeleteByQuote", mock.Anything, expiredQuote.ID()).Return(nil).Once()
	quoteRepo.On("Delete", mock.Anything, expiredQuote.ID()).Return(nil).Once()
	offerRepo.On("GetAllPendingExpiredBefore", mock.Anything, mock.Anything).
		Return([]*offer.Offer{}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)

	h := commands.NewSweepExpiredCommandHandler(factory, broadcaster)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	broadcaster.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
