// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/shreyashpatel5506/smellscan/schema"
)

// GitHubClient defines the upstream operations the scan pipeline needs.
// This allows the core logic to be tested without a real GitHub API.
type GitHubClient interface {
	// GetRepoMeta returns normalized repository metadata.
	GetRepoMeta(ctx context.Context, owner, repo string) (*schema.RepoMetadata, error)

	// GetBranchHead returns the head commit SHA for a branch.
	GetBranchHead(ctx context.Context, owner, repo, branch string) (string, error)

	// GetCommitTree returns the root tree SHA of a commit.
	GetCommitTree(ctx context.Context, owner, repo, commitSHA string) (string, error)

	// GetTreeRecursive returns the full recursive tree listing for a tree SHA,
	// retaining both blob and tree entries.
	GetTreeRecursive(ctx context.Context, owner, repo, treeSHA string) (*schema.RepoTree, error)

	// GetFileContent fetches and decodes a single file at the given ref.
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (*schema.FileContent, error)
}

// HistoryStore defines the interface for durable scan-run tracking.
// This allows the history layer to be mocked for testing.
type HistoryStore interface {
	// BeginScan records the start of a scan run and returns its unique ID.
	BeginScan(startTime time.Time, owner, repo, branch string, configParams map[string]any) (int64, error)

	// EndScan records the completion of a scan run from the final report.
	EndScan(scanID int64, endTime time.Time, report *schema.ScanReport) error

	// RecordFinding persists a single finding for a scan run.
	RecordFinding(scanID int64, finding schema.SmellFinding) error

	// ListRuns returns the most recent scan runs, newest first.
	ListRuns(limit int) ([]schema.ScanRun, error)

	// ListFindings returns all persisted findings, grouped by run.
	ListFindings() ([]schema.ScanFinding, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs and findings.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
