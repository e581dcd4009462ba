package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"
	"broker/internal/pkg/guard"
)

var ErrListOffersQueryIsNotConstructed = errors.New(
	"ListOffersQuery must be created via NewListOffersQuery constructor",
)

// ListOffersQuery retrieves the offers made against one quote, optionally
// narrowed to a single status.
type ListOffersQuery struct {
	guard        guard.ConstructorGuard
	quoteID      kernel.UUID
	statusFilter *offer.Status
}

// NewListOffersQuery creates a query for one quote's offers. A nil status
// filter returns all of them.
func NewListOffersQuery(quoteID kernel.UUID, statusFilter *offer.Status) (ListOffersQuery, error) {
	if err := quoteID.Validate(); err != nil {
		return ListOffersQuery{}, err
	}
	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return ListOffersQuery{}, err
		}
	}
	return ListOffersQuery{
		guard:        guard.NewConstructorGuard(),
		quoteID:      quoteID,
		statusFilter: statusFilter,
	}, nil
}

// QuoteID returns the target quote's identifier.
func (q ListOffersQuery) QuoteID() kernel.UUID {
	return q.quoteID
}

// StatusFilter returns the optional status filter.
func (q ListOffersQuery) StatusFilter() *offer.Status {
	return q.statusFilter
}

// Validate ensures the query was created through the constructor.
func (q ListOffersQuery) Validate() error {
	return q.guard.Validate(ErrListOffersQueryIsNotConstructed)
}
