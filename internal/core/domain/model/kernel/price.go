package kernel

import (
	"fmt"

	"broker/internal/pkg/errs"
)

// Price is a strictly positive money amount in the smallest currency unit.
// It is used for the client's asking price on a quote, a courier's bid on an
// offer, and the frozen final price of a delivery.
type Price struct {
	amount int64
}

// NewPrice creates a Price, rejecting zero and negative amounts.
func NewPrice(amount int64) (Price, error) {
	if amount <= 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%d is not greater than 0", amount),
		)
	}
	return Price{amount: amount}, nil
}

// Amount returns the raw amount.
func (p Price) Amount() int64 {
	return p.amount
}

// IsEqual compares two prices by amount.
func (p Price) IsEqual(other Price) bool {
	return p.amount == other.amount
}

// Validate returns an error for the zero value, which cannot be produced by
// NewPrice.
func (p Price) Validate() error {
	if p.amount <= 0 {
		return errs.NewValueIsRequiredError("price must be created via NewPrice")
	}
	return nil
}

func (p Price) String() string {
	return fmt.Sprintf("$%d", p.amount)
}
