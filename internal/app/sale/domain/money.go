package domain

import (
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic.
// It uses big.Rat internally to avoid floating-point precision issues.
// Money is immutable - all operations return new instances.
type Money struct {
	amount *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// For example: NewMoney(1999, 100) represents $19.99
func NewMoney(numerator, denominator int64) *Money {
	if denominator == 0 {
		panic("money: denominator cannot be zero")
	}
	return &Money{
		amount: big.NewRat(numerator, denominator),
	}
}

// NewMoneyFromDecimal creates Money from a decimal string as returned by the catalog,
// for example "19.99" or "100.0".
func NewMoneyFromDecimal(decimal string) (*Money, error) {
	rat := new(big.Rat)
	if _, ok := rat.SetString(decimal); !ok {
		return nil, fmt.Errorf("invalid decimal format: %s", decimal)
	}
	return &Money{amount: rat}, nil
}

// Zero returns a Money instance representing zero.
func Zero() *Money {
	return &Money{amount: big.NewRat(0, 1)}
}

// Subtract returns a new Money that is the difference of m and other.
func (m *Money) Subtract(other *Money) *Money {
	result := new(big.Rat).Sub(m.amount, other.amount)
	return &Money{amount: result}
}

// MultiplyByFraction multiplies Money by a fraction (numerator/denominator).
func (m *Money) MultiplyByFraction(numerator, denominator int64) *Money {
	multiplier := big.NewRat(numerator, denominator)
	result := new(big.Rat).Mul(m.amount, multiplier)
	return &Money{amount: result}
}

// IsNegative returns true if the money amount is negative.
func (m *Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

// Equals returns true if m equals other.
func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.amount.Cmp(other.amount) == 0
}

// Rat returns a copy of the internal big.Rat.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.amount)
}

// String returns the amount rounded to two decimals, e.g. "19.99".
func (m *Money) String() string {
	return m.amount.FloatString(2)
}

// FloatString returns a decimal string representation with the specified precision.
func (m *Money) FloatString(precision int) string {
	return m.amount.FloatString(precision)
}
