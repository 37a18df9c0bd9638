// Package core orchestrates the repository scan pipeline: resolve the
// branch, fetch the tree, filter files, fetch contents, detect smells
// and aggregate a report.
package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shreyashpatel5506/smellscan/core/detect"
	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/internal/repocache"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// ScanRepository runs the full pipeline for one repository. The returned
// report is always non-nil: pipeline failures land in report.Errors and
// per-file fetch failures in report.FileErrors. The error return is
// reserved for context cancellation.
func ScanRepository(ctx context.Context, cfg *contract.Config, client contract.GitHubClient, cache *repocache.Cache, history contract.HistoryStore) (report *schema.ScanReport, err error) {
	report = schema.NewScanReport(cfg.Owner, cfg.Repo, cfg.Branch)

	defer func() {
		if r := recover(); r != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Scan error: %v", r))
			err = nil
		}
	}()

	scanID, histErr := history.BeginScan(report.Timestamp, cfg.Owner, cfg.Repo, report.Branch, map[string]any{
		"plan":     string(cfg.Plan),
		"maxFiles": cfg.Limits.MaxFiles,
	})
	if histErr != nil {
		contract.LogWarn("recording scan start", histErr)
	}
	defer func() {
		if endErr := history.EndScan(scanID, time.Now().UTC(), report); endErr != nil {
			contract.LogWarn("recording scan end", endErr)
		}
	}()

	// Step 1: repository metadata.
	meta, metaErr := client.GetRepoMeta(ctx, cfg.Owner, cfg.Repo)
	if metaErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		report.Errors = append(report.Errors, metaErr.Error())
		return report, nil
	}
	report.Metadata = meta

	// Step 2: resolve branch to a head commit.
	resolution, branchErr := ResolveBranch(ctx, client, cfg.Owner, cfg.Repo, cfg.Branch, meta.DefaultBranch)
	if branchErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		report.Errors = append(report.Errors, branchErr.Error())
		return report, nil
	}
	report.Branch = resolution.Branch
	report.CommitSHA = resolution.SHA

	// Step 3: recursive tree.
	tree, treeErr := FetchTree(ctx, client, cache, cfg.Owner, cfg.Repo, resolution.SHA)
	if treeErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		report.Errors = append(report.Errors, treeErr.Error())
		return report, nil
	}

	// Step 4: file filter.
	scannable, filterStats := FilterFiles(tree.Entries, cfg.Limits)
	report.Statistics.FilesSkipped = filterStats.Excluded

	// Step 5: file contents.
	requests := make([]schema.FileRequest, len(scannable))
	for i, entry := range scannable {
		requests[i] = schema.FileRequest{Path: entry.Path, SHA: entry.SHA}
	}
	contents, fetchErr := FetchContents(ctx, client, cache, cfg.Owner, cfg.Repo, resolution.Branch, requests)
	if fetchErr != nil {
		return nil, fetchErr
	}

	// Step 6: detect and map severity per file.
	totalComplexity := 0
	for i := range contents {
		content := &contents[i]
		if content.Failed() {
			report.FileErrors = append(report.FileErrors, schema.FileError{
				Path:    content.Path,
				Message: content.Error,
			})
			continue
		}

		analysis := detect.Detect(content.Content, content.Path)
		report.Files = append(report.Files, schema.FileSummary{
			Path:       content.Path,
			Extension:  content.Extension,
			Size:       content.Size,
			Metrics:    analysis.Metrics,
			SmellCount: len(analysis.Smells),
		})
		report.Statistics.FilesAnalyzed++
		totalComplexity += analysis.Metrics.Complexity

		for _, smell := range analysis.Smells {
			smell.Severity = detect.MapSeverity(smell, content.Path)
			smell.File = content.Path
			smell.GitHubURL = BuildBlobURL(cfg.Owner, cfg.Repo, resolution.Branch, content.Path, smell.LineStart, smell.LineEnd)
			report.Smells = append(report.Smells, smell)
			if recErr := history.RecordFinding(scanID, smell); recErr != nil {
				contract.LogWarn("recording finding", recErr)
			}
		}
	}

	// Step 7: aggregate.
	report.Smells = detect.SortBySeverity(report.Smells)
	report.Statistics.TotalSmells = len(report.Smells)
	if report.Statistics.FilesAnalyzed > 0 {
		avg := float64(totalComplexity) / float64(report.Statistics.FilesAnalyzed)
		report.Statistics.AverageComplexity = math.Round(avg*100) / 100
	}
	for _, smell := range report.Smells {
		report.Statistics.SmellsByCategory[smell.Category]++
		report.Statistics.SmellsBySeverity[smell.Severity]++
	}
	report.Metadata.ScanURL = BuildTreeURL(cfg.Owner, cfg.Repo, resolution.Branch)

	return report, nil
}

// BuildBlobURL links a finding to its lines on github.com.
func BuildBlobURL(owner, repo, branch, path string, lineStart, lineEnd int) string {
	base := fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", owner, repo, branch, path)
	if lineStart <= 0 {
		return base
	}
	if lineEnd > lineStart {
		return fmt.Sprintf("%s#L%d-L%d", base, lineStart, lineEnd)
	}
	return fmt.Sprintf("%s#L%d", base, lineStart)
}

// BuildTreeURL links to the scanned branch on github.com.
func BuildTreeURL(owner, repo, branch string) string {
	return fmt.Sprintf("https://github.com/%s/%s/tree/%s", owner, repo, branch)
}
