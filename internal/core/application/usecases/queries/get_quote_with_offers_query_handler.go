package queries

import (
	"context"

	"broker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetQuoteWithOffersQueryHandler projects one quote and its offers.
type GetQuoteWithOffersQueryHandler struct {
	db *gorm.DB
}

// NewGetQuoteWithOffersQueryHandler creates a handler for the owner view.
func NewGetQuoteWithOffersQueryHandler(db *gorm.DB) GetQuoteWithOffersQueryHandler {
	return GetQuoteWithOffersQueryHandler{db: db}
}

// Handle returns the quote with its offers ordered oldest first, or an
// object-not-found error when the quote row is gone.
func (h GetQuoteWithOffersQueryHandler) Handle(
	ctx context.Context,
	query GetQuoteWithOffersQuery,
) (QuoteView, error) {
	if err := query.Validate(); err != nil {
		return QuoteView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+quoteColumns+`
		FROM quotes
		WHERE id = ?
	`, query.QuoteID().Bytes()).Rows()
	if err != nil {
		return QuoteView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return QuoteView{}, err
		}
		return QuoteView{}, errs.NewObjectNotFoundError("quote", query.QuoteID().String())
	}

	view, err := scanQuoteView(rows)
	if err != nil {
		return QuoteView{}, err
	}

	offers, err := listOffersByQuote(ctx, h.db, query.QuoteID())
	if err != nil {
		return QuoteView{}, err
	}
	view.Offers = offers

	return view, nil
}
