package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// PaymentMode is how the customer settles the order.
type PaymentMode string

// CashOnDelivery is currently the only supported payment mode and the default.
const CashOnDelivery PaymentMode = "cod"

// ParsePaymentMode validates a payment mode. An empty string selects CashOnDelivery.
func ParsePaymentMode(s string) (PaymentMode, error) {
	if s == "" {
		return CashOnDelivery, nil
	}
	mode := PaymentMode(s)
	if mode != CashOnDelivery {
		return "", errs.NewValueIsInvalidErrorWithCause("payment_mode", fmt.Errorf("%q is not supported", s))
	}
	return mode, nil
}

func (m PaymentMode) String() string {
	return string(m)
}
