package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// writeScanTable generates the human-readable scan summary and findings table.
func writeScanTable(w io.Writer, cfg *contract.Config, report *schema.ScanReport) error {
	fmt.Fprintf(w, "Repository: %s/%s @ %s\n", report.Owner, report.Repo, report.Branch)
	if report.CommitSHA != "" {
		fmt.Fprintf(w, "Commit:     %s\n", report.CommitSHA)
	}
	if report.Metadata != nil && report.Metadata.Language != "" {
		fmt.Fprintf(w, "Language:   %s\n", report.Metadata.Language)
	}
	stats := report.Statistics
	fmt.Fprintf(w, "Files:      %d analyzed, %d skipped\n", stats.FilesAnalyzed, stats.FilesSkipped)
	fmt.Fprintf(w, "Smells:     %d (high %d, medium %d, low %d)\n",
		stats.TotalSmells,
		stats.SmellsBySeverity[schema.HighSeverity],
		stats.SmellsBySeverity[schema.MediumSeverity],
		stats.SmellsBySeverity[schema.LowSeverity])
	fmt.Fprintf(w, "Complexity: %.*f average\n", cfg.Precision, stats.AverageComplexity)

	for _, fileErr := range report.FileErrors {
		fmt.Fprintf(w, "Skipped %s: %s\n", fileErr.Path, fileErr.Message)
	}
	for _, scanErr := range report.Errors {
		fmt.Fprintf(w, "Error: %s\n", scanErr)
	}
	if len(report.Smells) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Severity", "Rule", "File", "Line", "Conf", "Message"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	maxPath := getMaxTablePathWidth(cfg)
	var data [][]string
	for _, smell := range report.Smells {
		line := strconv.Itoa(smell.LineStart)
		if smell.LineEnd > smell.LineStart {
			line = fmt.Sprintf("%d-%d", smell.LineStart, smell.LineEnd)
		}
		label := contract.GetPlainLabel(smell.Severity)
		if cfg.Color {
			label = contract.GetColorLabel(smell.Severity)
		}
		data = append(data, []string{
			label,
			string(smell.ID),
			contract.TruncatePath(smell.File, maxPath),
			line,
			fmt.Sprintf("%.2f", smell.Confidence),
			smell.Message,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeScanCSV writes one row per finding. Aggregate statistics are a
// JSON concern; CSV stays flat for spreadsheet use.
func writeScanCSV(w io.Writer, report *schema.ScanReport) error {
	header := []string{"severity", "rule", "category", "file", "line_start", "line_end", "confidence", "message", "github_url"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, smell := range report.Smells {
			row := []string{
				string(smell.Severity),
				string(smell.ID),
				string(smell.Category),
				smell.File,
				strconv.Itoa(smell.LineStart),
				strconv.Itoa(smell.LineEnd),
				fmt.Sprintf("%.2f", smell.Confidence),
				smell.Message,
				smell.GitHubURL,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
