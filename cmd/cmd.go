// Package cmd defines the command-line interface for smellscan.
package cmd

import (
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("branch", "b", "", "Branch to scan (defaults to the repository's default branch)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "GitHub token (falls back to GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("plan", string(schema.FreeTier), "Plan tier: free or pro or enterprise")
	rootCmd.PersistentFlags().String("min-severity", "", "Only show findings at or above this severity: high or medium or low")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("scan-ttl", contract.DefaultScanTTLMin, "Minutes a cached scan report stays fresh")
	rootCmd.PersistentFlags().Int("immutable-ttl", contract.DefaultImmutableTTLMin, "Minutes cached trees and file contents stay resident")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of rulesCmd to Viper
	rulesCmd.Flags().String("category", "", "Filter rules by category: maintainability, reliability, performance or security")
	if err := viper.BindPFlags(rulesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rules flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().IntP("limit", "l", 20, "Number of runs to display")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}
}
