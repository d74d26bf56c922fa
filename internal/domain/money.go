package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency identifies one of the supported currencies.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
)

// ErrCurrencyMismatch is returned by any Money operation that combines
// two different currencies. Amounts are never silently converted.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ParseCurrency converts a currency code into a Currency.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(code) {
	case USD, EUR, GBP, CAD, AUD:
		return Currency(code), nil
	}
	return "", fmt.Errorf("unsupported currency: %q", code)
}

// Money is an exact-decimal amount tagged with a currency.
// All arithmetic uses decimal.Decimal, so repeated add/subtract cycles
// never drift at the cent level. Money is a value type; operations
// return new values and leave their operands untouched.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney builds a Money from an exact decimal amount.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// MoneyFromString parses a decimal string (e.g. "-42.50") into a Money.
func MoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("MoneyFromString: %w", err)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("add %s to %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns the difference of two amounts in the same currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("subtract %s from %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Mul scales the amount by a numeric factor. The currency is unchanged,
// so no currency check applies.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Equals reports whether amount and currency are both equal.
// Unlike the ordering comparisons it never fails: two amounts in
// different currencies are simply not equal.
func (m Money) Equals(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// LessThan reports m < other for same-currency amounts.
func (m Money) LessThan(other Money) (bool, error) {
	if m.Currency != other.Currency {
		return false, fmt.Errorf("compare %s with %s: %w", m.Currency, other.Currency, ErrCurrencyMismatch)
	}
	return m.Amount.LessThan(other.Amount), nil
}

// LessOrEqual reports m <= other for same-currency amounts.
func (m Money) LessOrEqual(other Money) (bool, error) {
	if m.Currency != other.Currency {
		return false, fmt.Errorf("compare %s with %s: %w", m.Currency, other.Currency, ErrCurrencyMismatch)
	}
	return m.Amount.LessThanOrEqual(other.Amount), nil
}

// GreaterThan reports m > other for same-currency amounts.
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.Currency != other.Currency {
		return false, fmt.Errorf("compare %s with %s: %w", m.Currency, other.Currency, ErrCurrencyMismatch)
	}
	return m.Amount.GreaterThan(other.Amount), nil
}

// GreaterOrEqual reports m >= other for same-currency amounts.
func (m Money) GreaterOrEqual(other Money) (bool, error) {
	if m.Currency != other.Currency {
		return false, fmt.Errorf("compare %s with %s: %w", m.Currency, other.Currency, ErrCurrencyMismatch)
	}
	return m.Amount.GreaterThanOrEqual(other.Amount), nil
}

// IsPositive reports whether the amount is strictly positive.
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

// IsNegative reports whether the amount is strictly negative.
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.Amount.IsZero() }

// Abs returns the absolute value of the amount as a bare decimal.
func (m Money) Abs() decimal.Decimal { return m.Amount.Abs() }

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.String())
}
