// Package categorize implements the categorize command: one transaction from
// flags, or a whole CSV file in batch mode.
package categorize

import (
	"fmt"
	"os"

	"jnovak/budget-categorizer/cmd/root"
	"jnovak/budget-categorizer/internal/container"
	"jnovak/budget-categorizer/internal/engine"
	"jnovak/budget-categorizer/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	description         string
	amount              string
	currency            string
	account             string
	counterpartyName    string
	counterpartyAccount string
	transactionType     string
	owner               string

	inputFile  string
	outputFile string
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction or a CSV of transactions",
	Long: `Categorize runs the full pipeline for a transaction given via flags, or for
every row of a CSV file when --input is set. Batch results are written as CSV
with category, owner, transfer flag, source, and AI confidence columns.`,
	RunE: runCategorize,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "0", "Amount in CZK")
	Cmd.Flags().StringVar(&currency, "currency", "", "Original currency when the statement amount was not in CZK")
	Cmd.Flags().StringVar(&account, "account", "", "Own account identifier")
	Cmd.Flags().StringVarP(&counterpartyName, "counterparty", "c", "", "Counterparty name")
	Cmd.Flags().StringVar(&counterpartyAccount, "counterparty-account", "", "Counterparty account identifier")
	Cmd.Flags().StringVarP(&transactionType, "type", "t", "", "Transaction type")
	Cmd.Flags().StringVar(&owner, "owner", "", "Owner already known for this transaction")

	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file for batch mode")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file for batch mode")
}

func runCategorize(cmd *cobra.Command, args []string) error {
	app, err := root.App(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	opts := engine.CategorizeOptions{
		DisableAI:   root.NoAI,
		ForceReload: root.ReloadRules,
	}

	if inputFile != "" {
		return runBatch(cmd, app, opts)
	}

	if description == "" && counterpartyName == "" {
		return fmt.Errorf("either --description/--counterparty or --input is required")
	}

	txn := models.Transaction{
		Description:         description,
		AmountCZK:           models.ParseAmount(amount),
		Account:             account,
		CounterpartyName:    counterpartyName,
		CounterpartyAccount: counterpartyAccount,
		Type:                transactionType,
		Owner:               owner,
	}
	if currency != "" {
		txn.Amount = models.NewMoney(models.ParseAmount(amount), currency)
	}

	result, err := app.Engine.Categorize(cmd.Context(), &txn, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Category: %s\n", result.Category)
	fmt.Printf("Owner:    %s\n", result.Owner)
	fmt.Printf("Transfer: %t\n", result.IsInternalTransfer)
	fmt.Printf("Source:   %s\n", result.Source)
	if result.Source == models.SourceAI {
		fmt.Printf("AI confidence: %d\n", result.Confidence)
	}
	return nil
}

// resultRow is one output line of batch mode: the input transaction joined
// with its categorization result.
type resultRow struct {
	Date                models.Date     `csv:"date"`
	Description         string          `csv:"description"`
	Amount              models.Money    `csv:"amount_original"`
	AmountCZK           decimal.Decimal `csv:"amount_czk"`
	Account             string          `csv:"account"`
	CounterpartyName    string          `csv:"counterparty_name"`
	CounterpartyAccount string          `csv:"counterparty_account"`
	Type                string          `csv:"type"`
	Tier1               string          `csv:"category_tier1"`
	Tier2               string          `csv:"category_tier2"`
	Tier3               string          `csv:"category_tier3"`
	Owner               string          `csv:"owner"`
	IsInternalTransfer  bool            `csv:"is_internal_transfer"`
	Source              models.Source   `csv:"categorization_source"`
	Confidence          int             `csv:"ai_confidence"`
}

func runBatch(cmd *cobra.Command, app *container.Container, opts engine.CategorizeOptions) error {
	if outputFile == "" {
		return fmt.Errorf("--output is required with --input")
	}

	in, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer in.Close()

	var txns []models.Transaction
	if err := gocsv.UnmarshalFile(in, &txns); err != nil {
		return fmt.Errorf("error parsing input CSV: %w", err)
	}

	app.Logger.WithField("count", len(txns)).Info("Categorizing transactions")

	results, err := app.Engine.CategorizeAll(cmd.Context(), txns, opts)
	if err != nil {
		return err
	}

	rows := make([]resultRow, len(results))
	for i, r := range results {
		txn := txns[i]
		rows[i] = resultRow{
			Date:                txn.Date,
			Description:         txn.Description,
			Amount:              txn.Amount,
			AmountCZK:           txn.AmountCZK,
			Account:             txn.Account,
			CounterpartyName:    txn.CounterpartyName,
			CounterpartyAccount: txn.CounterpartyAccount,
			Type:                txn.Type,
			Tier1:               r.Category.Tier1,
			Tier2:               r.Category.Tier2,
			Tier3:               r.Category.Tier3,
			Owner:               r.Owner,
			IsInternalTransfer:  r.IsInternalTransfer,
			Source:              r.Source,
			Confidence:          r.Confidence,
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("error writing output CSV: %w", err)
	}

	app.Logger.WithField("output", outputFile).Info("Wrote categorized transactions")
	return nil
}
