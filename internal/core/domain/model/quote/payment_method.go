package quote

import (
	"fmt"

	"broker/internal/pkg/errs"
)

// PaymentMethod is how the client intends to pay for the delivery.
type PaymentMethod int

const (
	PaymentUnknown PaymentMethod = iota
	PaymentCash
	PaymentNequi
)

func paymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentCash:  "cash",
		PaymentNequi: "nequi",
	}
}

// PaymentMethodFromString parses a wire name ("cash", "nequi").
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, name := range paymentMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod", fmt.Errorf("%q is not a known payment method", s))
}

func (m PaymentMethod) String() string {
	if str, ok := paymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the payment method is one of the known values.
func (m PaymentMethod) Validate() error {
	if _, ok := paymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidError("payment method")
	}
	return nil
}
