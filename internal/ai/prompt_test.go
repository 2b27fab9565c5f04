package ai

import (
	"strings"
	"testing"

	"jnovak/budget-categorizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaxonomy() models.Taxonomy {
	return models.Taxonomy{
		{
			Tier1: "Living Expenses",
			Tier2: []models.Tier2Group{
				{Tier2: "Groceries", Tier3: []string{"Supermarket", "Farmers Market", "Convenience Store", "Drugstore"}},
				{Tier2: "Dining", Tier3: []string{"Restaurant", "Cafe"}},
			},
		},
		{
			Tier1: "Housing",
			Tier2: []models.Tier2Group{
				{Tier2: "Utilities", Tier3: []string{"Electricity"}},
			},
		},
	}
}

func TestTaxonomySummary(t *testing.T) {
	summary := TaxonomySummary(testTaxonomy())

	assert.Contains(t, summary, "Living Expenses")
	assert.Contains(t, summary, "  - Groceries: Supermarket, Farmers Market, Convenience Store, ...")
	assert.Contains(t, summary, "  - Dining: Restaurant, Cafe")
	assert.Contains(t, summary, "Housing")
	assert.NotContains(t, summary, "Drugstore", "tier3 lists are truncated to three examples")
}

func TestBuildPromptDefaultTemplate(t *testing.T) {
	txn := &models.Transaction{
		Description:      "ALBERT PRAHA 4",
		CounterpartyName: "Albert Cesky",
		AmountCZK:        models.ParseAmount("-450.50"),
		Type:             "card_payment",
		Account:          "283337817/0300",
	}

	prompt, err := BuildPrompt("", txn, testTaxonomy())
	require.NoError(t, err)

	assert.Contains(t, prompt, "ALBERT PRAHA 4")
	assert.Contains(t, prompt, "-450.5 CZK")
	assert.Contains(t, prompt, "Living Expenses")
	assert.Contains(t, prompt, "Tier1:")
	assert.Contains(t, prompt, "Confidence:")
}

func TestBuildPromptForeignCurrencyAmount(t *testing.T) {
	txn := &models.Transaction{
		Description: "AMAZON.DE",
		Amount:      models.NewMoney(models.ParseAmount("-12.50"), "EUR"),
		AmountCZK:   models.ParseAmount("-312.75"),
	}

	prompt, err := BuildPrompt("", txn, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "-12.5 EUR (-312.75 CZK)")
}

func TestBuildPromptCustomTemplate(t *testing.T) {
	txn := &models.Transaction{Description: "NETFLIX.COM"}

	prompt, err := BuildPrompt("Classify {{.Description}} please", txn, nil)
	require.NoError(t, err)
	assert.Equal(t, "Classify NETFLIX.COM please", prompt)
}

func TestBuildPromptInvalidTemplate(t *testing.T) {
	_, err := BuildPrompt("{{.Broken", &models.Transaction{}, nil)
	assert.Error(t, err)
}

func TestTaxonomySummaryEmpty(t *testing.T) {
	assert.Equal(t, "", strings.TrimSpace(TaxonomySummary(nil)))
}
