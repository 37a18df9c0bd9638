package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shreyashpatel5506/smellscan/schema"
)

const runTimeFormat = "2006-01-02 15:04:05"

// writeRunsTable prints recorded scan runs as a table.
func writeRunsTable(w io.Writer, runs []schema.ScanRun) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Repository", "Branch", "Started", "Files", "Smells", "Status"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		status := "ok"
		if run.Failed {
			status = "failed"
		} else if run.CompletedAt == nil {
			status = "running"
		}
		data = append(data, []string{
			strconv.FormatInt(run.ID, 10),
			fmt.Sprintf("%s/%s", run.Owner, run.Repo),
			run.Branch,
			run.StartedAt.Format(runTimeFormat),
			strconv.Itoa(run.FilesAnalyzed),
			strconv.Itoa(run.TotalSmells),
			status,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRunsCSV writes recorded scan runs as CSV.
func writeRunsCSV(w io.Writer, runs []schema.ScanRun) error {
	header := []string{"id", "owner", "repo", "branch", "commit_sha", "started_at", "completed_at", "files_analyzed", "total_smells", "failed"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, run := range runs {
			completed := ""
			if run.CompletedAt != nil {
				completed = run.CompletedAt.Format(runTimeFormat)
			}
			row := []string{
				strconv.FormatInt(run.ID, 10),
				run.Owner,
				run.Repo,
				run.Branch,
				run.CommitSHA,
				run.StartedAt.Format(runTimeFormat),
				completed,
				strconv.Itoa(run.FilesAnalyzed),
				strconv.Itoa(run.TotalSmells),
				strconv.FormatBool(run.Failed),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
