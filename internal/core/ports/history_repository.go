package ports

import (
	"context"

	"broker/internal/core/domain/model/history"
	"broker/internal/core/domain/model/kernel"
)

// HistoryRepository defines the persistence contract for the append-only
// event log. There is deliberately no update or delete operation: the log
// is the one record that survives quote and offer deletion.
type HistoryRepository interface {
	// Append persists a new history event.
	Append(ctx context.Context, event *history.Event) error

	// GetByCorrelationID retrieves every event for one lifecycle-correlation
	// id, ordered by creation time ascending.
	GetByCorrelationID(ctx context.Context, correlationID kernel.UUID) ([]*history.Event, error)
}
