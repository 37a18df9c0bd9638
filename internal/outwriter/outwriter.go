// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
	"golang.org/x/term"
)

// WriteScanReport prints a scan report using the configured output format.
func WriteScanReport(cfg *contract.Config, report *schema.ScanReport) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanCSV(w, report)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanTable(w, cfg, report)
		}, "Wrote table")
	}
}

// WriteSmellRules prints the rule catalog using the configured output format.
func WriteSmellRules(cfg *contract.Config, rules []schema.SmellRule) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rules)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesCSV(w, rules)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesTable(w, cfg, rules)
		}, "Wrote table")
	}
}

// WriteHistoryRuns prints recorded scan runs using the configured output format.
func WriteHistoryRuns(cfg *contract.Config, runs []schema.ScanRun) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, runs)
		}, "Wrote table")
	}
}

// WriteHistoryStatus prints the history store status.
func WriteHistoryStatus(cfg *contract.Config, status schema.HistoryStatus) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Backend:        %s\n", status.Backend)
		fmt.Fprintf(w, "Location:       %s\n", status.Location)
		fmt.Fprintf(w, "Total runs:     %d\n", status.TotalRuns)
		fmt.Fprintf(w, "Total findings: %d\n", status.TotalFindings)
		if status.OldestRun != nil {
			fmt.Fprintf(w, "Oldest run:     %s\n", status.OldestRun.Format("2006-01-02 15:04:05"))
		}
		if status.NewestRun != nil {
			fmt.Fprintf(w, "Newest run:     %s\n", status.NewestRun.Format("2006-01-02 15:04:05"))
		}
		return nil
	}, "Wrote status")
}

// getMaxTablePathWidth calculates the maximum width for file paths in
// table output based on terminal width and the fixed columns around it.
func getMaxTablePathWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detected
		}
	}

	// Reserve space for the ID, severity, line and confidence columns
	// plus table borders and padding.
	available := termWidth - 55
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
