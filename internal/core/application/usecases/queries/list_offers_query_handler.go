package queries

import (
	"context"

	"broker/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListOffersQueryHandler projects the offers on one quote.
type ListOffersQueryHandler struct {
	db *gorm.DB
}

// NewListOffersQueryHandler creates a handler for offer listings.
func NewListOffersQueryHandler(db *gorm.DB) ListOffersQueryHandler {
	return ListOffersQueryHandler{db: db}
}

// Handle returns the quote's offers oldest first, optionally filtered by
// status. An unknown quote simply yields an empty list.
func (h ListOffersQueryHandler) Handle(
	ctx context.Context,
	query ListOffersQuery,
) ([]OfferView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `SELECT ` + offerColumns + ` FROM offers WHERE quote_id = ?`
	args := []any{query.QuoteID().Bytes()}

	if filter := query.StatusFilter(); filter != nil {
		sql += ` AND status = ?`
		args = append(args, int(*filter))
	}
	sql += ` ORDER BY created_at ASC`

	offers := make([]OfferView, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOfferView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		offers = append(offers, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}

// listOffersByQuote is the unfiltered projection shared with the quote and
// user-quote views.
func listOffersByQuote(ctx context.Context, db *gorm.DB, quoteID kernel.UUID) ([]OfferView, error) {
	offers := make([]OfferView, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT `+offerColumns+`
		FROM offers
		WHERE quote_id = ?
		ORDER BY created_at ASC
	`, quoteID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOfferView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		offers = append(offers, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
