package commands_test

import (
	"context"
	"time"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"
	"broker/internal/core/domain/model/quote"
	"broker/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockQuoteRepository struct{ mock.Mock }

func (m *MockQuoteRepository) Add(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) GetAllPendingExpiredBefore(ctx context.Context, t time.Time) ([]*quote.Quote, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) UpdateStatusIfPending(
	ctx context.Context, id kernel.UUID, status quote.Status,
) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetPendingByCourierAndQuote(
	ctx context.Context, courierID, quoteID kernel.UUID,
) (*offer.Offer, error) {
	args := m.Called(ctx, courierID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetAllByQuote(ctx context.Context, quoteID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetAllPendingExpiredBefore(ctx context.Context, t time.Time) ([]*offer.Offer, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) DeleteByQuote(ctx context.Context, quoteID kernel.UUID) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}

func (m *MockOfferRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, event *history.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetByCorrelationID(
	ctx context.Context, correlationID kernel.UUID,
) ([]*history.Event, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*history.Event), args.Error(1)
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Publish(group string, event ports.Event) {
	m.Called(group, event)
}

// MockUoW satisfies every UoW flavor; tests wire up only the repositories a
// handler actually reaches for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) QuoteRepository() ports.QuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.QuoteRepository)
}

func (m *MockUoW) OfferRepository() ports.OfferRepository {
	args := m.Called()
	return args.Get(0).(ports.OfferRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockQuoteUoWFactory struct{ mock.Mock }

func (m *MockQuoteUoWFactory) Create() commands.QuoteUoW {
	args := m.Called()
	return args.Get(0).(commands.QuoteUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// Aggregate builders shared by the handler tests.

func testDetails() quote.Details {
	return quote.Details{
		PickupAddress:   "100 Origin Way",
		DeliveryAddress: "200 Target Blvd",
		CategoryID:      kernel.NewUUID(),
	}
}

func newPendingQuote(clientID kernel.UUID) *quote.Quote {
	price, _ := kernel.NewPrice(5000)
	now := time.Now().UTC()
	q, _ := quote.NewQuote(
		kernel.NewUUID(), clientID, testDetails(), price, quote.PaymentCash, now, now.Add(10*time.Minute),
	)
	return q
}

func newPendingOffer(courierID, quoteID kernel.UUID) *offer.Offer {
	price, _ := kernel.NewPrice(4500)
	now := time.Now().UTC()
	o, _ := offer.NewOffer(
		kernel.NewUUID(), courierID, quoteID, price, nil, nil, now, now.Add(4*time.Minute),
	)
	return o
}

func newAssignedDelivery(clientID, courierID kernel.UUID) *delivery.Delivery {
	price, _ := kernel.NewPrice(4500)
	d, _ := delivery.NewDelivery(
		kernel.NewUUID(), clientID, courierID, kernel.NewUUID(),
		delivery.Details{
			PickupAddress:   "100 Origin Way",
			DeliveryAddress: "200 Target Blvd",
			CategoryID:      kernel.NewUUID(),
		},
		price, nil, time.Now().UTC(),
	)
	return d
}
