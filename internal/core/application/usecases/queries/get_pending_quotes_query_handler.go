package queries

import (
	"context"

	"broker/internal/core/domain/model/quote"

	"gorm.io/gorm"
)

// GetPendingQuotesQueryHandler projects all pending quotes from the database.
// Offers are deliberately not embedded: the courier-facing board only needs
// the request itself, and the per-quote feed carries the bids.
type GetPendingQuotesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingQuotesQueryHandler creates a handler for the open-quotes board.
func NewGetPendingQuotesQueryHandler(db *gorm.DB) GetPendingQuotesQueryHandler {
	return GetPendingQuotesQueryHandler{db: db}
}

// Handle returns pending quotes newest first.
func (h GetPendingQuotesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingQuotesQuery,
) ([]QuoteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	quotes := make([]QuoteView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+quoteColumns+`
		FROM quotes
		WHERE status = ?
		ORDER BY created_at DESC
	`, int(quote.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanQuoteView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		quotes = append(quotes, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}
