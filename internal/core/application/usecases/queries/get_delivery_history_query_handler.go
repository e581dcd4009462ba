package queries

import (
	"context"

	"broker/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetDeliveryHistoryQueryHandler projects one correlation chain's events.
type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryHistoryQueryHandler creates a handler for history lookups.
func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle returns the chain's events in append order. An unknown correlation
// id yields an empty list.
func (h GetDeliveryHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryHistoryQuery,
) ([]HistoryEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return listHistoryByCorrelationID(ctx, h.db, query.CorrelationID())
}

// listHistoryByCorrelationID is the history projection shared with the
// single-delivery view.
func listHistoryByCorrelationID(
	ctx context.Context, db *gorm.DB, correlationID kernel.UUID,
) ([]HistoryEventView, error) {
	events := make([]HistoryEventView, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT `+historyColumns+`
		FROM history_events
		WHERE correlation_id = ?
		ORDER BY created_at ASC
	`, correlationID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanHistoryEventView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
