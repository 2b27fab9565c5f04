// Package models defines the core data types shared by the categorization
// engine: transactions, categories, rules, and categorization results.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date wraps time.Time with lenient parsing for the date formats that bank
// statement exports actually use.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// UnmarshalCSV parses a statement date. Empty values stay zero.
func (d *Date) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date format: %q", value)
}

// MarshalCSV renders the date as YYYY-MM-DD.
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format("2006-01-02"), nil
}

// Transaction is a normalized financial transaction record as produced by the
// statement import pipeline. The engine treats it as immutable input; it is
// never modified during categorization.
type Transaction struct {
	Date                Date            `csv:"date" yaml:"date"`
	Description         string          `csv:"description" yaml:"description"`
	Amount              Money           `csv:"amount_original" yaml:"amount"`
	AmountCZK           decimal.Decimal `csv:"amount_czk" yaml:"amount_czk"`
	Account             string          `csv:"account" yaml:"account"`
	Institution         string          `csv:"institution" yaml:"institution"`
	Type                string          `csv:"type" yaml:"type"`
	Owner               string          `csv:"owner" yaml:"owner"`
	CounterpartyName    string          `csv:"counterparty_name" yaml:"counterparty_name"`
	CounterpartyAccount string          `csv:"counterparty_account" yaml:"counterparty_account"`
	VariableSymbol      string          `csv:"variable_symbol" yaml:"variable_symbol"`
	Reference           string          `csv:"reference" yaml:"reference"`
}

// Field names understood by rule conditions. These mirror the columns of the
// rule source, so rule authors reference transaction fields by these names.
const (
	FieldDescription         = "description"
	FieldCounterpartyName    = "counterparty_name"
	FieldCounterpartyAccount = "counterparty_account"
	FieldAccount             = "account"
	FieldInstitution         = "institution"
	FieldType                = "type"
	FieldVariableSymbol      = "variable_symbol"
	FieldReference           = "reference"
	FieldOwner               = "owner"
	FieldAmount              = "amount"
)

// FieldValue returns the string value of a named transaction field.
// Returns false for unknown field names so that a rule referencing a field
// the transaction does not carry is simply treated as non-matching.
func (t Transaction) FieldValue(field string) (string, bool) {
	switch strings.ToLower(field) {
	case FieldDescription:
		return t.Description, true
	case FieldCounterpartyName:
		return t.CounterpartyName, true
	case FieldCounterpartyAccount:
		return t.CounterpartyAccount, true
	case FieldAccount:
		return t.Account, true
	case FieldInstitution:
		return t.Institution, true
	case FieldType:
		return t.Type, true
	case FieldVariableSymbol:
		return t.VariableSymbol, true
	case FieldReference:
		return t.Reference, true
	case FieldOwner:
		return t.Owner, true
	case FieldAmount:
		return t.AmountCZK.String(), true
	}
	return "", false
}

// NumericFieldValue returns the decimal value of a named transaction field.
// Only the amount field is numeric today; unknown fields return false.
func (t Transaction) NumericFieldValue(field string) (decimal.Decimal, bool) {
	if strings.ToLower(field) == FieldAmount {
		return t.AmountCZK, true
	}
	return decimal.Zero, false
}
