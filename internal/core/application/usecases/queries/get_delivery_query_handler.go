package queries

import (
	"context"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryQueryHandler projects one delivery and its lifecycle history.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for the delivery detail view.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns the delivery with its events in append order, or an
// object-not-found error when the delivery does not exist.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetDeliveryQueryResponse{}, err
		}
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
	}

	view, err := scanDeliveryView(rows)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	correlationID, err := kernel.UUIDFromString(view.CorrelationID)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	events, err := listHistoryByCorrelationID(ctx, h.db, correlationID)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	return GetDeliveryQueryResponse{
		Delivery: view,
		History:  events,
	}, nil
}
