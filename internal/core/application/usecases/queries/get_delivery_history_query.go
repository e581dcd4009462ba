package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
	"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
)

// GetDeliveryHistoryQuery retrieves the full audit trail for one lifecycle
// correlation id. Works for live lifecycles and for quotes long since
// deleted: history rows reference nothing else.
type GetDeliveryHistoryQuery struct {
	guard         guard.ConstructorGuard
	correlationID kernel.UUID
}

// NewGetDeliveryHistoryQuery creates a query for one correlation chain.
func NewGetDeliveryHistoryQuery(correlationID kernel.UUID) (GetDeliveryHistoryQuery, error) {
	if err := correlationID.Validate(); err != nil {
		return GetDeliveryHistoryQuery{}, err
	}
	return GetDeliveryHistoryQuery{
		guard:         guard.NewConstructorGuard(),
		correlationID: correlationID,
	}, nil
}

// CorrelationID returns the lifecycle-correlation identifier.
func (q GetDeliveryHistoryQuery) CorrelationID() kernel.UUID {
	return q.correlationID
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}
