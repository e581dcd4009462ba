package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one delivery together with the history of its
// whole lifecycle, quote phase included.
type GetDeliveryQuery struct {
	guard      guard.ConstructorGuard
	deliveryID kernel.UUID
}

// NewGetDeliveryQuery creates a query for one delivery.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{
		guard:      guard.NewConstructorGuard(),
		deliveryID: deliveryID,
	}, nil
}

// DeliveryID returns the delivery's identifier.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// GetDeliveryQueryResponse pairs a delivery with its audit trail.
type GetDeliveryQueryResponse struct {
	Delivery DeliveryView       `json:"delivery"`
	History  []HistoryEventView `json:"history"`
}
