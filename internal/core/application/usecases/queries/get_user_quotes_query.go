package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrGetUserQuotesQueryIsNotConstructed = errors.New(
	"GetUserQuotesQuery must be created via NewGetUserQuotesQuery constructor",
)

// GetUserQuotesQuery retrieves every quote posted by one client, each with
// its offers embedded. This is the client's own-quotes feed snapshot.
type GetUserQuotesQuery struct {
	guard  guard.ConstructorGuard
	userID kernel.UUID
}

// NewGetUserQuotesQuery creates a query for one client's quotes.
func NewGetUserQuotesQuery(userID kernel.UUID) (GetUserQuotesQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserQuotesQuery{}, err
	}
	return GetUserQuotesQuery{
		guard:  guard.NewConstructorGuard(),
		userID: userID,
	}, nil
}

// UserID returns the client's identifier.
func (q GetUserQuotesQuery) UserID() kernel.UUID {
	return q.userID
}

// Validate ensures the query was created through the constructor.
func (q GetUserQuotesQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQuotesQueryIsNotConstructed)
}
