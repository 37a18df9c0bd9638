package cmd

import (
	"fmt"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/iocache"
	"github.com/shreyashpatel5506/smellscan/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd groups scan history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage recorded scan runs.",
	Long: `Work with the durable scan history store.

History tracking is off by default; enable it with --history-backend
(sqlite, mysql or postgresql) on scan commands, then use these
subcommands to inspect what was recorded.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// historyListCmd lists recorded scan runs.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recorded scan runs, newest first.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iocache.Store().ListRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Cannot list history", err)
		}
		if err := outwriter.WriteHistoryRuns(cfg, runs); err != nil {
			contract.LogFatal("Cannot write history", err)
		}
	},
}

// historyStatusCmd summarizes the history store contents.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show history store backend and record counts.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Store().GetStatus()
		if err != nil {
			contract.LogFatal("Cannot get history status", err)
		}
		if err := outwriter.WriteHistoryStatus(cfg, status); err != nil {
			contract.LogFatal("Cannot write history status", err)
		}
	},
}

// historyClearCmd removes all recorded runs and findings.
var historyClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete all recorded scan runs and findings.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.Store().Clear(); err != nil {
			contract.LogFatal("Cannot clear history", err)
		}
		fmt.Println("Scan history cleared.")
	},
}

// historyExportCmd exports the history store to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scan history to Parquet files.",
	Long: `Export recorded runs and findings to Parquet for analysis with
Spark, Pandas, DuckDB or any other Parquet-compatible tool.

Requires --output-file as the path prefix for the generated files.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot export history", err)
		}
	},
}
