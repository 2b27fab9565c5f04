package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with currency. On a transaction it
// carries the original statement amount before CZK normalization.
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// NewMoneyFromString creates a new Money instance from a string amount
func NewMoneyFromString(amount, currency string) (Money, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string '%s': %w", amount, err)
	}
	return Money{
		Amount:   dec,
		Currency: currency,
	}, nil
}

// IsZero returns true if the amount is zero and no currency is set
func (m Money) IsZero() bool {
	return m.Amount.IsZero() && m.Currency == ""
}

// String returns the amount followed by the currency code
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

// UnmarshalCSV parses an "amount CUR" column value (the String format).
// A bare number parses with an empty currency; an empty value stays zero.
func (m *Money) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*m = Money{}
		return nil
	}

	parts := strings.Fields(value)
	currency := ""
	if len(parts) == 2 {
		currency = parts[1]
	} else if len(parts) != 1 {
		return fmt.Errorf("invalid money value '%s'", value)
	}

	parsed, err := NewMoneyFromString(parts[0], currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalCSV renders the value in the same "amount CUR" format.
func (m Money) MarshalCSV() (string, error) {
	if m.IsZero() {
		return "", nil
	}
	if m.Currency == "" {
		return m.Amount.String(), nil
	}
	return m.String(), nil
}

// ParseAmount converts an amount string to a decimal, returning zero when the
// string cannot be parsed. Used for lenient parsing of user-provided amounts.
func ParseAmount(amount string) decimal.Decimal {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
