// Package schema has the data model shared by all parts of smellscan.
package schema

import "time"

// RepoMetadata is the normalized repository metadata from the upstream API.
type RepoMetadata struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Owner         string    `json:"owner"`
	Visibility    string    `json:"visibility"`
	DefaultBranch string    `json:"defaultBranch"`
	Language      string    `json:"language"`
	Stargazers    int       `json:"stargazers"`
	Forks         int       `json:"forks"`
	Topics        []string  `json:"topics"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	HomepageURL   string    `json:"homepageUrl,omitempty"`
	Archived      bool      `json:"isArchived"`
	ScanURL       string    `json:"scanUrl,omitempty"`
}

// BranchResolution is the result of resolving a branch to its head commit.
// SHA is treated as immutable for caching purposes; a branch may move over
// time and the system accepts staleness up to the cache TTL.
type BranchResolution struct {
	Branch        string `json:"branch"`
	DefaultBranch string `json:"defaultBranch"`
	SHA           string `json:"sha"`
}

// TreeEntry is a single entry in a recursive git tree listing.
// SHA is content-addressed and uniquely identifies the entry's bytes.
type TreeEntry struct {
	Path string    `json:"path"`
	Type EntryType `json:"type"`
	SHA  string    `json:"sha"`
	Size int64     `json:"size"`
}

// TreeStats summarizes a recursive tree listing.
type TreeStats struct {
	Total     int   `json:"total"`
	Blobs     int   `json:"blobs"`
	Trees     int   `json:"trees"`
	TotalSize int64 `json:"totalSize"`
}

// RepoTree is the fetched (and cached) recursive tree of a commit.
// Both blob and tree entries are retained; the filter stage restricts to files.
type RepoTree struct {
	Entries []TreeEntry `json:"entries"`
	Stats   TreeStats   `json:"stats"`
}

// FileRequest is the explicit form of the content fetcher's batch input.
// SHA may be empty when the blob SHA is unknown; the fetcher then skips the
// content-cache lookup and fetches by path.
type FileRequest struct {
	Path string
	SHA  string
}

// FileContent is a fetched file, or a per-file failure when Error is set.
// Produced once and consumed immutably by the detector.
type FileContent struct {
	Path      string `json:"path"`
	Content   string `json:"content,omitempty"`
	Size      int64  `json:"size"`
	Extension string `json:"extension,omitempty"`
	SHA       string `json:"sha,omitempty"`
	Encoding  string `json:"encoding,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Failed reports whether the fetch or decode of this file failed.
func (fc *FileContent) Failed() bool { return fc.Error != "" }

// Metrics is the per-file structural summary computed by a single-pass
// line scan. All counts are non-negative.
type Metrics struct {
	TotalLines      int `json:"totalLines"`
	CodeLines       int `json:"codeLines"`
	CommentLines    int `json:"commentLines"`
	BlankLines      int `json:"blankLines"`
	Functions       int `json:"functions"`
	AsyncFunctions  int `json:"asyncFunctions"`
	ConsoleCount    int `json:"consoleCount"`
	MaxNestingDepth int `json:"maxNestingDepth"`
	Complexity      int `json:"complexity"`
}

// SmellFinding is a single detected code smell. Severity starts at the rule's
// base severity and is adjusted exactly once by the severity mapper before the
// finding is frozen into the report. ID and Category never change.
type SmellFinding struct {
	ID         SmellID  `json:"id"`
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	LineStart  int      `json:"lineStart"`
	LineEnd    int      `json:"lineEnd"`
	Message    string   `json:"message"`
	Confidence float64  `json:"confidence"`
	File       string   `json:"file,omitempty"`
	GitHubURL  string   `json:"githubUrl,omitempty"`
}

// FileAnalysis is the detector's result for a single file.
type FileAnalysis struct {
	Path     string         `json:"path"`
	Language Language       `json:"language"`
	Metrics  Metrics        `json:"metrics"`
	Smells   []SmellFinding `json:"smells"`
}

// FileSummary is the per-file entry in a scan report.
type FileSummary struct {
	Path       string  `json:"path"`
	Extension  string  `json:"extension"`
	Size       int64   `json:"size"`
	Metrics    Metrics `json:"metrics"`
	SmellCount int     `json:"smellCount"`
}

// FileError itemizes a per-file fetch or decode failure. These are reported
// separately from ScanReport.Errors: a per-file failure does not fail the scan.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Statistics is the aggregate summary of a scan.
type Statistics struct {
	FilesAnalyzed     int              `json:"filesAnalyzed"`
	FilesSkipped      int              `json:"filesSkipped"`
	TotalSmells       int              `json:"totalSmells"`
	SmellsByCategory  map[Category]int `json:"smellsByCategory"`
	SmellsBySeverity  map[Severity]int `json:"smellsBySeverity"`
	AverageComplexity float64          `json:"averageComplexity"`
}

// FilterStats reports what the file filter admitted and why it excluded.
// Included + Excluded always equals TotalInput.
type FilterStats struct {
	TotalInput int                  `json:"totalInput"`
	Included   int                  `json:"included"`
	Excluded   int                  `json:"excluded"`
	ByReason   map[FilterReason]int `json:"byReason"`
}

// ScanReport is the aggregate root produced by a repository scan.
// A report with a non-empty Errors slice is partial: later pipeline stages
// did not run, but earlier fields (Metadata, Branch) may still be populated
// for diagnosability.
type ScanReport struct {
	Owner      string         `json:"owner"`
	Repo       string         `json:"repo"`
	Branch     string         `json:"branch"`
	CommitSHA  string         `json:"commitSha,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Metadata   *RepoMetadata  `json:"metadata"`
	Files      []FileSummary  `json:"files"`
	Smells     []SmellFinding `json:"smells"`
	Statistics Statistics     `json:"statistics"`
	FileErrors []FileError    `json:"fileErrors,omitempty"`
	Errors     []string       `json:"errors"`
}

// Failed reports whether the scan aborted at some pipeline stage.
// Failed reports are never cached and must not be charged against quotas.
func (r *ScanReport) Failed() bool { return len(r.Errors) > 0 }

// NewScanReport returns an empty report with initialized aggregates.
func NewScanReport(owner, repo, branch string) *ScanReport {
	b := branch
	if b == "" {
		b = "default"
	}
	return &ScanReport{
		Owner:     owner,
		Repo:      repo,
		Branch:    b,
		Timestamp: time.Now().UTC(),
		Files:     []FileSummary{},
		Smells:    []SmellFinding{},
		Statistics: Statistics{
			SmellsByCategory: map[Category]int{},
			SmellsBySeverity: map[Severity]int{},
		},
		Errors: []string{},
	}
}
