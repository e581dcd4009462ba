package queries

import (
	"errors"

	"broker/internal/pkg/guard"
)

var ErrGetPendingQuotesQueryIsNotConstructed = errors.New(
	"GetPendingQuotesQuery must be created via NewGetPendingQuotesQuery constructor",
)

// GetPendingQuotesQuery retrieves every quote still open for offers, without
// the offers embedded. This is the board couriers browse and the initial
// snapshot of the new-quotes feed.
type GetPendingQuotesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingQuotesQuery creates a query to retrieve open quotes.
func NewGetPendingQuotesQuery() GetPendingQuotesQuery {
	return GetPendingQuotesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingQuotesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingQuotesQueryIsNotConstructed)
}
