package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in a currency's minor units. Arithmetic across
// currencies is a programming error and panics rather than returning a
// wrong number.
type Money struct {
	Cents    int64
	Currency string
}

// NewMoney creates a Money value from minor units.
func NewMoney(cents int64, currency string) Money {
	return Money{Cents: cents, Currency: currency}
}

// MoneyFromDecimal converts a major-unit decimal amount to Money. It
// rejects sub-cent precision so "12.345" never silently truncates.
func MoneyFromDecimal(d decimal.Decimal, currency string) (Money, error) {
	cents := d.Mul(oneHundred)
	if !cents.IsInteger() {
		return Money{}, fmt.Errorf("%w: %s has sub-cent precision", ErrInvalidAmount, d)
	}
	return Money{Cents: cents.IntPart(), Currency: currency}, nil
}

// Zero returns a zero amount in the same currency.
func (m Money) Zero() Money {
	return Money{Currency: m.Currency}
}

func (m Money) IsZero() bool     { return m.Cents == 0 }
func (m Money) IsPositive() bool { return m.Cents > 0 }
func (m Money) IsNegative() bool { return m.Cents < 0 }

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.Cents == other.Cents && m.Currency == other.Currency
}

// Add returns m + other. Panics on mixed currencies.
func (m Money) Add(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Cents: m.Cents + other.Cents, Currency: m.Currency}
}

// Sub returns m - other. Panics on mixed currencies.
func (m Money) Sub(other Money) Money {
	m.assertSameCurrency(other)
	return Money{Cents: m.Cents - other.Cents, Currency: m.Currency}
}

// Min returns the smaller of m and other. Panics on mixed currencies.
func (m Money) Min(other Money) Money {
	m.assertSameCurrency(other)
	if other.Cents < m.Cents {
		return other
	}
	return m
}

// Divide splits the amount into n shares that sum exactly to the
// original: each share gets the truncated quotient and the leftover
// cents land on the first shares, one cent each. No share differs from
// another by more than one cent. n < 1 is a contract violation.
func (m Money) Divide(n int) []Money {
	if n < 1 {
		panic(fmt.Sprintf("money: divide into %d shares", n))
	}

	base := m.Cents / int64(n)
	rem := m.Cents - base*int64(n)

	step := int64(1)
	if rem < 0 {
		step = -1
		rem = -rem
	}

	shares := make([]Money, n)
	for i := range shares {
		cents := base
		if int64(i) < rem {
			cents += step
		}
		shares[i] = Money{Cents: cents, Currency: m.Currency}
	}
	return shares
}

// Percentage returns pct percent of the amount, rounded half to even.
func (m Money) Percentage(pct decimal.Decimal) Money {
	cents := decimal.NewFromInt(m.Cents).
		Mul(pct).
		Div(oneHundred).
		RoundBank(0).
		IntPart()
	return Money{Cents: cents, Currency: m.Currency}
}

// SumMoney adds up shares in the given currency.
func SumMoney(currency string, shares []Money) Money {
	total := Money{Currency: currency}
	for _, s := range shares {
		total = total.Add(s)
	}
	return total
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", decimal.New(m.Cents, -2).StringFixed(2), m.Currency)
}

func (m Money) assertSameCurrency(other Money) {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: %s op %s currency mismatch", m.Currency, other.Currency))
	}
}
