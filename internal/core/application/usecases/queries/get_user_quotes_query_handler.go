package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserQuotesQueryHandler projects one client's quotes with their offers.
type GetUserQuotesQueryHandler struct {
	db *gorm.DB
}

// NewGetUserQuotesQueryHandler creates a handler for the client quote feed.
func NewGetUserQuotesQueryHandler(db *gorm.DB) GetUserQuotesQueryHandler {
	return GetUserQuotesQueryHandler{db: db}
}

// Handle returns the client's quotes newest first, offers embedded oldest
// first. The offers come back in one query and are grouped in memory.
func (h GetUserQuotesQueryHandler) Handle(
	ctx context.Context,
	query GetUserQuotesQuery,
) ([]QuoteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	quotes := make([]QuoteView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+quoteColumns+`
		FROM quotes
		WHERE client_id = ?
		ORDER BY created_at DESC
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanQuoteView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		view.Offers = make([]OfferView, 0)
		quotes = append(quotes, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(quotes) == 0 {
		return quotes, nil
	}

	offerRows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+offerColumns+`
		FROM offers
		WHERE quote_id IN (SELECT id FROM quotes WHERE client_id = ?)
		ORDER BY created_at ASC
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer offerRows.Close()

	byQuote := make(map[string]int, len(quotes))
	for i, q := range quotes {
		byQuote[q.ID] = i
	}

	for offerRows.Next() {
		view, scanErr := scanOfferView(offerRows)
		if scanErr != nil {
			return nil, scanErr
		}
		if i, ok := byQuote[view.QuoteID]; ok {
			quotes[i].Offers = append(quotes[i].Offers, view)
		}
	}
	if err = offerRows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}
