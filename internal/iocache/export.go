package iocache

import (
	"errors"
	"fmt"

	"github.com/shreyashpatel5506/smellscan/internal/parquet"
)

// ExecuteHistoryExport exports the recorded scan history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	history := Store()
	status, err := history.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no scan history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scan runs: %d\n", status.TotalRuns)
	fmt.Printf("Total findings: %d\n", status.TotalFindings)

	runs, err := history.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve scan runs: %w", err)
	}
	findings, err := history.ListFindings()
	if err != nil {
		return fmt.Errorf("failed to retrieve findings: %w", err)
	}

	runsFile := outputFile + ".scan_runs.parquet"
	runRecords := parquet.ConvertScanRunRecords(runs)
	if err := parquet.WriteScanRunsParquet(runRecords, runsFile); err != nil {
		return fmt.Errorf("failed to write scan runs: %w", err)
	}
	fmt.Printf("Exported %d scan runs to: %s\n", len(runRecords), runsFile)

	findingsFile := outputFile + ".findings.parquet"
	findingRecords := parquet.ConvertFindingRecords(findings)
	if err := parquet.WriteFindingsParquet(findingRecords, findingsFile); err != nil {
		return fmt.Errorf("failed to write findings: %w", err)
	}
	fmt.Printf("Exported %d findings to: %s\n", len(findingRecords), findingsFile)

	return nil
}
