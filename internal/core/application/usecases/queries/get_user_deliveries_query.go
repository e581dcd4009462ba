package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrGetUserDeliveriesQueryIsNotConstructed = errors.New(
	"GetUserDeliveriesQuery must be created via NewGetUserDeliveriesQuery constructor",
)

// GetUserDeliveriesQuery retrieves the in-progress deliveries one user is a
// party to, on either side of the exchange. This is the deliveries feed
// snapshot.
type GetUserDeliveriesQuery struct {
	guard  guard.ConstructorGuard
	userID kernel.UUID
}

// NewGetUserDeliveriesQuery creates a query for one user's live deliveries.
func NewGetUserDeliveriesQuery(userID kernel.UUID) (GetUserDeliveriesQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserDeliveriesQuery{}, err
	}
	return GetUserDeliveriesQuery{
		guard:  guard.NewConstructorGuard(),
		userID: userID,
	}, nil
}

// UserID returns the user's identifier.
func (q GetUserDeliveriesQuery) UserID() kernel.UUID {
	return q.userID
}

// Validate ensures the query was created through the constructor.
func (q GetUserDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetUserDeliveriesQueryIsNotConstructed)
}
