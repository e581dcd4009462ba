package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrGetCourierStatsQueryIsNotConstructed = errors.New(
	"GetCourierStatsQuery must be created via NewGetCourierStatsQuery constructor",
)

// GetCourierStatsQuery retrieves one courier's completed-work totals. Backs
// the courier-stats subscription snapshot.
type GetCourierStatsQuery struct {
	guard     guard.ConstructorGuard
	courierID kernel.UUID
}

// NewGetCourierStatsQuery creates a query for one courier's totals.
func NewGetCourierStatsQuery(courierID kernel.UUID) (GetCourierStatsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierStatsQuery{}, err
	}
	return GetCourierStatsQuery{
		guard:     guard.NewConstructorGuard(),
		courierID: courierID,
	}, nil
}

// CourierID returns the courier's identifier.
func (q GetCourierStatsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Validate ensures the query was created through the constructor.
func (q GetCourierStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierStatsQueryIsNotConstructed)
}

// GetCourierStatsQueryResponse carries completed delivery totals for one
// courier. Earnings sum the frozen final prices of delivered and paid work.
type GetCourierStatsQueryResponse struct {
	CourierID      string `json:"courier_id"`
	CompletedCount int64  `json:"completed_count"`
	TotalEarnings  int64  `json:"total_earnings"`
}
