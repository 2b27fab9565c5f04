package ai

import (
	"fmt"
	"strings"
	"text/template"

	"jnovak/budget-categorizer/internal/models"
)

// DefaultPromptTemplate is the classification prompt used when no custom
// template is configured. The response format it demands is what the parser
// expects.
const DefaultPromptTemplate = `You are a personal finance assistant. Categorize the following bank transaction into the taxonomy below.

Transaction:
- Date: {{.Date}}
- Description: {{.Description}}
- Counterparty: {{.Counterparty}}
- Amount: {{.Amount}}
- Type: {{.Type}}
- Account: {{.Account}}

Taxonomy (tier1 > tier2 > tier3):
{{.Taxonomy}}

Pick exactly one tier1, one tier2 under it, and one tier3 under that. Respond with exactly four lines and nothing else:
Tier1: <tier1 category>
Tier2: <tier2 category>
Tier3: <tier3 category>
Confidence: <0-100>`

// promptData is the template context for a classification prompt.
type promptData struct {
	Date         string
	Description  string
	Counterparty string
	Amount       string
	Type         string
	Account      string
	Taxonomy     string
}

// BuildPrompt renders the classification prompt for a transaction. An empty
// templateText falls back to DefaultPromptTemplate.
func BuildPrompt(templateText string, txn *models.Transaction, taxonomy models.Taxonomy) (string, error) {
	if templateText == "" {
		templateText = DefaultPromptTemplate
	}

	tmpl, err := template.New("prompt").Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("invalid prompt template: %w", err)
	}

	var buf strings.Builder
	date := ""
	if !txn.Date.IsZero() {
		date = txn.Date.Format("2006-01-02")
	}

	// Show the original statement amount when the transaction was in a
	// foreign currency; the normalized CZK amount is always present.
	amount := txn.AmountCZK.String() + " CZK"
	if !txn.Amount.IsZero() && txn.Amount.Currency != "" && txn.Amount.Currency != "CZK" {
		amount = txn.Amount.String() + " (" + amount + ")"
	}

	err = tmpl.Execute(&buf, promptData{
		Date:         date,
		Description:  txn.Description,
		Counterparty: txn.CounterpartyName,
		Amount:       amount,
		Type:         txn.Type,
		Account:      txn.Account,
		Taxonomy:     TaxonomySummary(taxonomy),
	})
	if err != nil {
		return "", fmt.Errorf("error rendering prompt template: %w", err)
	}

	return buf.String(), nil
}

// TaxonomySummary renders the taxonomy compactly for the prompt: one line per
// tier1, one indented line per tier2 listing up to three tier3 examples.
// Full tier3 lists blow up the prompt without improving answers.
func TaxonomySummary(taxonomy models.Taxonomy) string {
	var b strings.Builder
	for _, t1 := range taxonomy {
		b.WriteString(t1.Tier1)
		b.WriteString("\n")
		for _, t2 := range t1.Tier2 {
			b.WriteString("  - ")
			b.WriteString(t2.Tier2)
			if len(t2.Tier3) > 0 {
				examples := t2.Tier3
				suffix := ""
				if len(examples) > 3 {
					examples = examples[:3]
					suffix = ", ..."
				}
				b.WriteString(": ")
				b.WriteString(strings.Join(examples, ", "))
				b.WriteString(suffix)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
