package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created through
// one of the constructor functions. This error is returned when validating a
// zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney, MoneyFromString, or MoneyFromDecimal",
)

// Money is a value object representing a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to keep arithmetic exact: order totals
// and line subtotals must never drift through binary floating point rounding.
//
// The zero value of Money is invalid and must be constructed using one of the
// provided factory functions: NewMoney, MoneyFromString, or MoneyFromDecimal.
//
// Money is immutable and safe for concurrent use.
//
// Example usage:
//
//	price, err := kernel.MoneyFromString("10.00")
//	if err != nil {
//	    // handle error
//	}
//	subtotal := price.MulInt(3) // 30.00
type Money struct {
	amount decimal.Decimal

	guard ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount),
		)
	}
	return Money{amount: amount, guard: NewConstructorGuard()}, nil
}

// MoneyFromString parses a Money value from its decimal string representation,
// e.g. "10.00" or "5". Returns an error if the string is not a valid decimal
// or the amount is negative.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(amount)
}

// MoneyFromDecimal restores a Money value from persistence.
// Unlike NewMoney it tolerates nothing extra; it exists so mapping code reads
// naturally at the persistence boundary.
func MoneyFromDecimal(amount decimal.Decimal) (Money, error) {
	return NewMoney(amount)
}

// ZeroMoney returns a valid Money value of zero amount.
// Used as the starting point for summation.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: NewConstructorGuard()}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: NewConstructorGuard()}
}

// MulInt returns the Money value multiplied by an integer factor.
// Used to derive a line subtotal from a unit price and quantity.
func (m Money) MulInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor))), guard: NewConstructorGuard()}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values by amount.
// Comparison is scale-insensitive: 10 and 10.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount formatted with two decimal places, e.g. "25.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Validate checks that the Money value was properly constructed.
// Returns ErrMoneyIsNotConstructed for a zero-value Money.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
