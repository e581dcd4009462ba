// Package historyrepo provides data transfer objects and mapping functions
// for the append-only history event log.
package historyrepo

import (
	"time"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting history events.
// Rows are written once and never touched again; the correlation id index is
// the only access path.
type EventDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CorrelationID uuid.UUID `gorm:"type:uuid;index"`
	Kind          int
	Description   string    `gorm:"type:text"`
	ChangedBy     uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for history events.
func (EventDTO) TableName() string {
	return "history_events"
}

// fromDomain converts a history event to its database representation.
func fromDomain(event *history.Event) EventDTO {
	return EventDTO{
		ID:            event.ID().Bytes(),
		CorrelationID: event.CorrelationID().Bytes(),
		Kind:          int(event.Kind()),
		Description:   event.Description(),
		ChangedBy:     event.ChangedBy().Bytes(),
		CreatedAt:     event.CreatedAt(),
	}
}

// toDomain converts a database DTO to a history event.
func toDomain(dto EventDTO) (*history.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	correlationID, err := kernel.UUIDFromBytes(dto.CorrelationID[:])
	if err != nil {
		return nil, err
	}

	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return nil, err
	}

	return history.RestoreEvent(
		id,
		correlationID,
		history.Kind(dto.Kind),
		dto.Description,
		changedBy,
		dto.CreatedAt,
	)
}
