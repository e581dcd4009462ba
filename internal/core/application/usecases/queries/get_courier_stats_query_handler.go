package queries

import (
	"context"

	"broker/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetCourierStatsQueryHandler aggregates one courier's delivered work.
type GetCourierStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierStatsQueryHandler creates a handler for courier totals.
func NewGetCourierStatsQueryHandler(db *gorm.DB) GetCourierStatsQueryHandler {
	return GetCourierStatsQueryHandler{db: db}
}

// Handle returns the courier's completed count and summed earnings. A
// courier with no finished deliveries gets zeros, not an error.
func (h GetCourierStatsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierStatsQuery,
) (GetCourierStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	response := GetCourierStatsQueryResponse{
		CourierID: query.CourierID().String(),
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*), COALESCE(SUM(final_price), 0)
		FROM deliveries
		WHERE courier_id = ? AND status IN (?, ?)
	`, query.CourierID().Bytes(), int(delivery.Delivered), int(delivery.Paid)).Row()

	if err := row.Scan(&response.CompletedCount, &response.TotalEarnings); err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	return response, nil
}
