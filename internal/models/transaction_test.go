package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValue(t *testing.T) {
	txn := Transaction{
		Description:         "ALBERT PRAHA",
		CounterpartyName:    "Albert Cesky",
		CounterpartyAccount: "123456/0300",
		Account:             "283337817/0300",
		Type:                "card_payment",
		AmountCZK:           decimal.NewFromFloat(-450.50),
	}

	tests := []struct {
		field    string
		expected string
		found    bool
	}{
		{"description", "ALBERT PRAHA", true},
		{"Description", "ALBERT PRAHA", true},
		{"counterparty_name", "Albert Cesky", true},
		{"counterparty_account", "123456/0300", true},
		{"account", "283337817/0300", true},
		{"type", "card_payment", true},
		{"amount", "-450.5", true},
		{"no_such_field", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			value, ok := txn.FieldValue(tt.field)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestNumericFieldValue(t *testing.T) {
	txn := Transaction{AmountCZK: decimal.NewFromInt(100)}

	amount, ok := txn.NumericFieldValue("amount")
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.NewFromInt(100)))

	_, ok = txn.NumericFieldValue("description")
	assert.False(t, ok)
}

func TestDateUnmarshalCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"2026-01-15", "2026-01-15", false},
		{"15.01.2026", "2026-01-15", false},
		{"2026-01-15 10:30:00", "2026-01-15", false},
		{"", "", false},
		{"not-a-date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Date
			err := d.UnmarshalCSV(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			out, err := d.MarshalCSV()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("-450.50").Equal(decimal.NewFromFloat(-450.5)))
	assert.True(t, ParseAmount("garbage").Equal(decimal.Zero))
}

func TestCategoryString(t *testing.T) {
	c := Category{Tier1: "Living Expenses", Tier2: "Groceries", Tier3: "Supermarket"}
	assert.Equal(t, "Living Expenses > Groceries > Supermarket", c.String())
	assert.False(t, c.IsZero())
	assert.True(t, Category{}.IsZero())
}
