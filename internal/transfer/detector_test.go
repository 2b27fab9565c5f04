package transfer

import (
	"testing"

	"jnovak/budget-categorizer/internal/logging"
	"jnovak/budget-categorizer/internal/models"

	"github.com/stretchr/testify/assert"
)

func newDetector(opts Options) *Detector {
	return NewDetector(opts, &logging.MockLogger{})
}

func TestDetectOwnAccount(t *testing.T) {
	d := newDetector(Options{
		OwnAccounts: []string{"283337817/0300", "115-1234567890/0100"},
	})

	tests := []struct {
		name     string
		txn      models.Transaction
		expected bool
		method   string
	}{
		{
			"counterparty is own account",
			models.Transaction{CounterpartyAccount: "283337817/0300"},
			true, "own_account",
		},
		{
			"own account without bank code suffix",
			models.Transaction{CounterpartyAccount: "283337817"},
			true, "own_account",
		},
		{
			"unknown counterparty",
			models.Transaction{CounterpartyAccount: "999999999/0800"},
			false, "",
		},
		{
			"empty counterparty account",
			models.Transaction{Description: "CARD PAYMENT"},
			false, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, method := d.Detect(&tt.txn)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.method, method)
		})
	}
}

func TestDetectSelfTransfer(t *testing.T) {
	d := newDetector(Options{})

	same := models.Transaction{Account: "283337817/0300", CounterpartyAccount: "283337817"}
	got, method := d.Detect(&same)
	assert.True(t, got)
	assert.Equal(t, "self_transfer", method)

	different := models.Transaction{Account: "283337817/0300", CounterpartyAccount: "999999999"}
	got, _ = d.Detect(&different)
	assert.False(t, got)
}

func TestDetectKeyword(t *testing.T) {
	d := newDetector(Options{
		Methods: []Method{
			{Type: "keyword", Enabled: true, Keywords: []string{"vlastni prevod", "own transfer"}},
		},
	})

	hit := models.Transaction{Description: "OWN TRANSFER to savings"}
	got, method := d.Detect(&hit)
	assert.True(t, got)
	assert.Equal(t, "keyword", method)

	counterpartyHit := models.Transaction{CounterpartyName: "Vlastni prevod"}
	got, _ = d.Detect(&counterpartyHit)
	assert.True(t, got)

	miss := models.Transaction{Description: "ALBERT PRAHA"}
	got, _ = d.Detect(&miss)
	assert.False(t, got)
}

func TestDetectDisabledMethodIsSkipped(t *testing.T) {
	d := newDetector(Options{
		OwnAccounts: []string{"283337817/0300"},
		Methods: []Method{
			{Type: "own_account", Enabled: false},
		},
	})

	txn := models.Transaction{CounterpartyAccount: "283337817/0300"}
	got, _ := d.Detect(&txn)
	assert.False(t, got)
}

func TestDetectExclusionBeatsAccountMatch(t *testing.T) {
	// A merchant collecting through an account listed as "own" must still
	// be categorized as spending, not hidden as a transfer.
	d := newDetector(Options{
		OwnAccounts:            []string{"283337817/0300"},
		ExcludedCounterparties: []string{"Raiffeisen stavebni sporitelna"},
	})

	txn := models.Transaction{
		CounterpartyAccount: "283337817/0300",
		CounterpartyName:    " RAIFFEISEN STAVEBNI SPORITELNA ",
	}
	got, _ := d.Detect(&txn)
	assert.False(t, got, "exclusion must veto detection entirely")
}

func TestDetectExclusionIsExactNameMatch(t *testing.T) {
	// Exclusions are exact counterparty names. A counterparty that merely
	// contains an excluded name is not excluded, so its transfers are
	// still detected.
	d := newDetector(Options{
		OwnAccounts:            []string{"283337817/0300"},
		ExcludedCounterparties: []string{"Raiffeisen"},
	})

	txn := models.Transaction{
		CounterpartyAccount: "283337817/0300",
		CounterpartyName:    "Raiffeisen stavebni sporitelna",
	}
	got, method := d.Detect(&txn)
	assert.True(t, got, "superstring of an excluded name must not be vetoed")
	assert.Equal(t, "own_account", method)
}

func TestDetectExcludedTransactionType(t *testing.T) {
	d := newDetector(Options{
		OwnAccounts:   []string{"283337817/0300"},
		ExcludedTypes: []string{"direct_debit"},
	})

	txn := models.Transaction{
		CounterpartyAccount: "283337817/0300",
		Type:                "DIRECT_DEBIT",
	}
	got, _ := d.Detect(&txn)
	assert.False(t, got)

	normal := models.Transaction{
		CounterpartyAccount: "283337817/0300",
		Type:                "payment",
	}
	got, _ = d.Detect(&normal)
	assert.True(t, got)
}

func TestDetectDefaultMethods(t *testing.T) {
	// With no methods configured, own-account and self-transfer checks are on.
	d := newDetector(Options{OwnAccounts: []string{"283337817/0300"}})

	own := models.Transaction{CounterpartyAccount: "283337817"}
	got, method := d.Detect(&own)
	assert.True(t, got)
	assert.Equal(t, "own_account", method)
}
