// Package root contains the root command and the shared application wiring
// used by all subcommands.
package root

import (
	"context"
	"fmt"

	"jnovak/budget-categorizer/internal/config"
	"jnovak/budget-categorizer/internal/container"

	"github.com/spf13/cobra"
)

// Shared flags available on every command.
var (
	NoAI        bool
	ReloadRules bool
)

// Cmd is the root command.
var Cmd = &cobra.Command{
	Use:   "budget-categorizer",
	Short: "Categorize bank transactions into a three-tier budget taxonomy.",
	Long: `budget-categorizer assigns each transaction a category, an owner, and an
internal-transfer flag using transfer detection, manual rules, and an
optional AI fallback, in that order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Init registers the persistent flags. Called from main before Execute.
func Init() {
	Cmd.PersistentFlags().BoolVar(&NoAI, "no-ai", false, "Skip the AI fallback; unmatched transactions go uncategorized")
	Cmd.PersistentFlags().BoolVar(&ReloadRules, "reload-rules", false, "Bypass the rule cache and refetch rules")
}

// App loads configuration and builds the application container. Each
// subcommand calls this once; the container owns any open connections, so
// callers must Close it.
func App(ctx context.Context) (*container.Container, error) {
	config.LoadEnv()

	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	c, err := container.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}
