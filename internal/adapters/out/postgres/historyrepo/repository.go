package historyrepo

import (
	"context"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM. Append-only:
// the interface offers no update or delete, and neither does the table.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append persists a new history event.
func (r *GormHistoryRepository) Append(ctx context.Context, event *history.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByCorrelationID retrieves every event for one lifecycle-correlation id,
// ordered by creation time ascending.
func (r *GormHistoryRepository) GetByCorrelationID(
	ctx context.Context, correlationID kernel.UUID,
) ([]*history.Event, error) {
	if err := correlationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&dtos, "correlation_id = ?", correlationID.Bytes()).Error; err != nil {
		return nil, err
	}

	events := make([]*history.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}
