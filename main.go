package main

import (
	"os"

	"jnovak/budget-categorizer/cmd/categorize"
	"jnovak/budget-categorizer/cmd/root"
	"jnovak/budget-categorizer/cmd/rules"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
