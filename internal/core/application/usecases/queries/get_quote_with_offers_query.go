package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrGetQuoteWithOffersQueryIsNotConstructed = errors.New(
	"GetQuoteWithOffersQuery must be created via NewGetQuoteWithOffersQuery constructor",
)

// GetQuoteWithOffersQuery retrieves one quote together with every offer made
// against it. This is the owner's view and the initial snapshot of a
// per-quote subscription.
type GetQuoteWithOffersQuery struct {
	guard   guard.ConstructorGuard
	quoteID kernel.UUID
}

// NewGetQuoteWithOffersQuery creates a query for one quote's full picture.
func NewGetQuoteWithOffersQuery(quoteID kernel.UUID) (GetQuoteWithOffersQuery, error) {
	if err := quoteID.Validate(); err != nil {
		return GetQuoteWithOffersQuery{}, err
	}
	return GetQuoteWithOffersQuery{
		guard:   guard.NewConstructorGuard(),
		quoteID: quoteID,
	}, nil
}

// QuoteID returns the target quote's identifier.
func (q GetQuoteWithOffersQuery) QuoteID() kernel.UUID {
	return q.quoteID
}

// Validate ensures the query was created through the constructor.
func (q GetQuoteWithOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteWithOffersQueryIsNotConstructed)
}
