package queries

import (
	"context"

	"broker/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetUserDeliveriesQueryHandler projects a user's live deliveries, matching
// them as client or courier. Paid and cancelled rows are excluded; a
// delivered-but-unpaid delivery still counts as in progress.
type GetUserDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetUserDeliveriesQueryHandler creates a handler for the deliveries feed.
func NewGetUserDeliveriesQueryHandler(db *gorm.DB) GetUserDeliveriesQueryHandler {
	return GetUserDeliveriesQueryHandler{db: db}
}

// Handle returns the user's in-progress deliveries newest first.
func (h GetUserDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetUserDeliveriesQuery,
) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]DeliveryView, 0)

	userID := query.UserID().Bytes()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE (client_id = ? OR courier_id = ?)
		  AND status NOT IN (?, ?)
		ORDER BY created_at DESC
	`, userID, userID, int(delivery.Paid), int(delivery.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanDeliveryView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
