// Package rules implements rule-management commands: validate and reload.
package rules

import (
	"fmt"

	"jnovak/budget-categorizer/cmd/root"
	"jnovak/budget-categorizer/internal/config"
	"jnovak/budget-categorizer/internal/rulestore"

	"github.com/spf13/cobra"
)

// Cmd represents the rules command group.
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and manage the categorization rule set",
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a rule file without loading it into the engine",
	Long: `Validate parses the rule file, checks every rule for a usable match
condition, and reports regex patterns that will never match. With no argument
it validates the configured rules file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Refetch the rule set, bypassing the cache TTL",
	RunE:  runReload,
}

func init() {
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(reloadCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		config.LoadEnv()
		cfg, err := config.InitializeConfig()
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		path = cfg.Rules.File
	}

	doc, err := rulestore.NewFileSource(path).Fetch()
	if err != nil {
		return err
	}

	rules, warnings, err := rulestore.ConvertRules(doc.Rules)
	if err != nil {
		return fmt.Errorf("rule file %s is invalid: %w", path, err)
	}

	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("%s: %d rules, %d owner mappings, %d top-level categories\n",
		path, len(rules), len(doc.Owners), len(doc.Taxonomy))
	return nil
}

func runReload(cmd *cobra.Command, args []string) error {
	app, err := root.App(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	bundle := app.Store.Load(true)
	fmt.Printf("Loaded %d rules, %d owner mappings (fetched %s)\n",
		len(bundle.Rules), len(bundle.Owners), bundle.LoadedAt.Format("2006-01-02 15:04:05"))
	return nil
}
