package ports

import (
	"context"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quote aggregates.
type QuoteRepository interface {
	// Add persists a new quote aggregate.
	Add(ctx context.Context, aggregate *quote.Quote) error

	// Update persists changes to an existing quote aggregate.
	Update(ctx context.Context, aggregate *quote.Quote) error

	// Get retrieves a quote by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// GetAllPendingExpiredBefore retrieves pending quotes whose expiry is at
	// or before the given instant. Used by the expiration sweeper.
	GetAllPendingExpiredBefore(ctx context.Context, t time.Time) ([]*quote.Quote, error)

	// UpdateStatusIfPending atomically moves the quote from pending to the
	// given status. Returns false without error when the quote was no longer
	// pending at write time, meaning the caller lost the race.
	UpdateStatusIfPending(ctx context.Context, id kernel.UUID, status quote.Status) (bool, error)

	// Delete removes the quote row. Deleting an already-removed quote is a
	// no-op, not an error, so racing removal paths stay safe.
	Delete(ctx context.Context, id kernel.UUID) error
}
