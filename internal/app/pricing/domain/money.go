package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with exact fixed-point arithmetic.
// The zero value is a valid zero amount.
type Money struct {
	d decimal.Decimal
}

// Zero is a zero amount.
var Zero = Money{}

// NewMoney creates a Money from an unscaled value and an exponent.
// Example: NewMoney(249900, -2) represents 2499.00
func NewMoney(value int64, exp int32) Money {
	return Money{d: decimal.New(value, exp)}
}

// NewMoneyFromDecimal wraps an existing decimal.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// ParseMoney parses a decimal string such as "19.99".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParseMoney is like ParseMoney but panics on malformed input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Add adds two amounts and returns the sum.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// LessThan returns true if this amount is less than another.
func (m Money) LessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

// GreaterThan returns true if this amount is greater than another.
func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}

// Equals compares by value, so 1.5 equals 1.50.
func (m Money) Equals(other Money) bool {
	return m.d.Equal(other.d)
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsNegative returns true if the amount is below zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.d.StringFixed(2)
}
