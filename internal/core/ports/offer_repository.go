package ports

import (
	"context"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for offer aggregates.
type OfferRepository interface {
	// Add persists a new offer aggregate.
	Add(ctx context.Context, aggregate *offer.Offer) error

	// Update persists changes to an existing offer aggregate.
	Update(ctx context.Context, aggregate *offer.Offer) error

	// Get retrieves an offer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// GetPendingByCourierAndQuote retrieves the courier's live offer on the
	// given quote, if one exists. Backs the one-offer-per-courier-per-quote
	// invariant: submit updates this offer instead of creating a duplicate.
	GetPendingByCourierAndQuote(ctx context.Context, courierID, quoteID kernel.UUID) (*offer.Offer, error)

	// GetAllByQuote retrieves every offer on the given quote.
	GetAllByQuote(ctx context.Context, quoteID kernel.UUID) ([]*offer.Offer, error)

	// GetAllPendingExpiredBefore retrieves pending offers whose expiry is at
	// or before the given instant. Used by the expiration sweeper.
	GetAllPendingExpiredBefore(ctx context.Context, t time.Time) ([]*offer.Offer, error)

	// DeleteByQuote removes every offer on the given quote. Zero rows is a
	// no-op, not an error.
	DeleteByQuote(ctx context.Context, quoteID kernel.UUID) error

	// Delete removes one offer row. Zero rows is a no-op, not an error.
	Delete(ctx context.Context, id kernel.UUID) error
}
