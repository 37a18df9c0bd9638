package cmd

import (
	"github.com/shreyashpatel5506/smellscan/core"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/iocache"
	"github.com/spf13/cobra"
)

// scanCmd scans a GitHub repository for code smells.
var scanCmd = &cobra.Command{
	Use:   "scan <owner>/<repo>",
	Short: "Scan a repository for code smells.",
	Long: `Fetch a repository over the GitHub API and analyze its JavaScript and
TypeScript files for code smells.

The scan resolves the target branch, walks the repository tree, filters
files by extension, directory and size, fetches contents in batches and
runs every smell rule over each file. Findings carry a severity adjusted
for file context: security findings and reliability findings in API
routes are always high.

Examples:
  # Scan the default branch
  smellscan scan vercel/next.js

  # Scan a specific branch with a token for private repos
  smellscan scan myorg/myapp --branch develop --token ghp_abc123

  # Only high severity findings as JSON
  smellscan scan myorg/myapp --min-severity high --output json

  # Keep a record of scans in SQLite
  smellscan scan myorg/myapp --history-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := contract.RequireRepoTarget(cfg); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
		if err := core.ExecuteScan(rootCtx, cfg, ghClient, scanCache, iocache.Store()); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
