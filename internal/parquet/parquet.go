// Package parquet provides data structures and functions for exporting
// scan history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// ScanRunRecord maps a recorded scan run to a Parquet row.
type ScanRunRecord struct {
	ScanID        int64      `parquet:"scan_id,snappy"`
	Owner         string     `parquet:"owner,snappy"`
	Repo          string     `parquet:"repo,snappy"`
	Branch        string     `parquet:"branch,snappy"`
	CommitSHA     string     `parquet:"commit_sha,snappy"`
	StartedAt     time.Time  `parquet:"started_at,snappy"`
	CompletedAt   *time.Time `parquet:"completed_at,optional,snappy"`
	FilesAnalyzed int32      `parquet:"files_analyzed,snappy"`
	TotalSmells   int32      `parquet:"total_smells,snappy"`
	Failed        bool       `parquet:"failed,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// FindingRecord maps a persisted finding to a Parquet row.
type FindingRecord struct {
	ScanID     int64   `parquet:"scan_id,snappy"`
	File       string  `parquet:"file,snappy"`
	RuleID     string  `parquet:"rule_id,snappy"`
	Category   string  `parquet:"category,snappy"`
	Severity   string  `parquet:"severity,snappy"`
	LineStart  int32   `parquet:"line_start,snappy"`
	LineEnd    int32   `parquet:"line_end,snappy"`
	Confidence float64 `parquet:"confidence,snappy"`
	Message    string  `parquet:"message,snappy"`
}

// ConvertScanRunRecords converts scan runs to Parquet rows.
func ConvertScanRunRecords(runs []schema.ScanRun) []ScanRunRecord {
	records := make([]ScanRunRecord, 0, len(runs))
	for _, run := range runs {
		record := ScanRunRecord{
			ScanID:        run.ID,
			Owner:         run.Owner,
			Repo:          run.Repo,
			Branch:        run.Branch,
			CommitSHA:     run.CommitSHA,
			StartedAt:     run.StartedAt,
			CompletedAt:   run.CompletedAt,
			FilesAnalyzed: int32(run.FilesAnalyzed),
			TotalSmells:   int32(run.TotalSmells),
			Failed:        run.Failed,
		}
		if run.ConfigParams != "" {
			params := run.ConfigParams
			record.ConfigParams = &params
		}
		records = append(records, record)
	}
	return records
}

// ConvertFindingRecords converts persisted findings to Parquet rows.
func ConvertFindingRecords(findings []schema.ScanFinding) []FindingRecord {
	records := make([]FindingRecord, 0, len(findings))
	for _, f := range findings {
		records = append(records, FindingRecord{
			ScanID:     f.ScanID,
			File:       f.File,
			RuleID:     string(f.RuleID),
			Category:   string(f.Category),
			Severity:   string(f.Severity),
			LineStart:  int32(f.LineStart),
			LineEnd:    int32(f.LineEnd),
			Confidence: f.Confidence,
			Message:    f.Message,
		})
	}
	return records
}

// WriteScanRunsParquet writes scan run rows to a Parquet file.
func WriteScanRunsParquet(data []ScanRunRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFindingsParquet writes finding rows to a Parquet file.
func WriteFindingsParquet(data []FindingRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with the schema inferred from
// the row struct's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
