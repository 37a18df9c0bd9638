package cmd

import (
	"github.com/shreyashpatel5506/smellscan/core"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rulesCmd lists the smell rule catalog.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the code smell rule catalog.",
	Long: `Print every smell rule with its category, base severity and
recommendation.

Examples:
  # Full catalog as a table
  smellscan rules

  # Security rules only, as JSON
  smellscan rules --category security --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		category := schema.Category(viper.GetString("category"))
		if err := core.ExecuteRules(cfg, category); err != nil {
			contract.LogFatal("Cannot list rules", err)
		}
	},
}
