package kernel

import (
	"encoding/json"
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyTolerance is the rounding slack accepted when reconciling payments
// against order totals: one hundredth of a currency unit.
var moneyTolerance = decimal.New(1, -2)

// Money is a non-negative currency amount backed by arbitrary-precision decimals.
// It is the only representation used for prices, line totals, payments, and
// refunds; float arithmetic never touches ledger math.
//
// The zero value is a valid zero amount, so aggregates can accumulate into it.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money value from a decimal, rejecting negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "25.00" into a Money value.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// Decimal exposes the underlying decimal for persistence mapping.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON renders the amount as a two-decimal string; money never
// crosses the wire as a float.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.StringFixed(2))
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts. The result may be negative;
// callers that care must check IsNegative.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulQuantity multiplies the amount by an item quantity, producing a line total.
func (m Money) MulQuantity(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual reports exact equality of two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m is strictly larger than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// MatchesWithinTolerance reports whether two amounts differ by at most the
// reconciliation tolerance (0.01). Used wherever payments are compared against
// totals so that split components rounded per-method still reconcile.
func (m Money) MatchesWithinTolerance(other Money) bool {
	return m.amount.Sub(other.amount).Abs().LessThanOrEqual(moneyTolerance)
}
