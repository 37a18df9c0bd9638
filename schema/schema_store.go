package schema

import "time"

// ScanRun is a single recorded scan in the history store.
type ScanRun struct {
	ID            int64      `json:"id"`
	Owner         string     `json:"owner"`
	Repo          string     `json:"repo"`
	Branch        string     `json:"branch"`
	CommitSHA     string     `json:"commitSha"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	FilesAnalyzed int        `json:"filesAnalyzed"`
	TotalSmells   int        `json:"totalSmells"`
	Failed        bool       `json:"failed"`
	ConfigParams  string     `json:"configParams,omitempty"`
}

// ScanFinding is a persisted finding belonging to a scan run.
type ScanFinding struct {
	ScanID     int64    `json:"scanId"`
	File       string   `json:"file"`
	RuleID     SmellID  `json:"ruleId"`
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	LineStart  int      `json:"lineStart"`
	LineEnd    int      `json:"lineEnd"`
	Confidence float64  `json:"confidence"`
	Message    string   `json:"message"`
}

// HistoryStatus reports status information about the history store.
type HistoryStatus struct {
	Backend       DatabaseBackend `json:"backend"`
	Location      string          `json:"location"`
	TotalRuns     int64           `json:"totalRuns"`
	TotalFindings int64           `json:"totalFindings"`
	OldestRun     *time.Time      `json:"oldestRun,omitempty"`
	NewestRun     *time.Time      `json:"newestRun,omitempty"`
}
