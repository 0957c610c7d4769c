package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits money is stored with (numeric(10,2)).
const MoneyScale int32 = 2

// maxMoney is the largest amount a numeric(10,2) column holds.
var maxMoney = decimal.RequireFromString("99999999.99")

// Money is a non-negative decimal amount with two fractional digits.
//
// Money never goes through float64: prices come from the catalog as decimals
// and totals are computed with decimal arithmetic, so 2 x 10.00 + 1 x 5.00 is exactly 25.00.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("10.00")
//	line := price.MulQuantity(2) // 20.00
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney validates and rounds a decimal amount to MoneyScale.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	rounded := amount.Round(MoneyScale)
	if rounded.GreaterThan(maxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", rounded.String(), "0.00", maxMoney.String())
	}
	return Money{amount: rounded}, nil
}

// NewMoneyFromString parses an amount such as "10.50".
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// MustMoney is NewMoneyFromString for constants and tests. It panics on invalid input.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(MoneyScale)}
}

// MulQuantity returns the amount multiplied by a quantity.
func (m Money) MulQuantity(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyScale)}
}

// ValidateStorable rejects amounts above the largest storable amount (99999999.99).
// Sums and products are not bounded on their own, so computed totals are checked with it.
func (m Money) ValidateStorable(paramName string) error {
	if m.amount.GreaterThan(maxMoney) {
		return errs.NewValueIsOutOfRangeError(paramName, m.String(), "0.00", maxMoney.String())
	}
	return nil
}

// Equal compares amounts numerically, so 25 equals 25.00.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
