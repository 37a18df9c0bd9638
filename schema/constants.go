package schema

import (
	"strings"
	"time"
)

// Custom string types for type safety.
type (
	// Severity represents how dangerous a finding is.
	Severity string

	// Category represents the smell category a rule belongs to.
	Category string

	// SmellID identifies a rule in the smell catalog.
	SmellID string

	// Language represents the detected source language of a file.
	Language string

	// EntryType represents the kind of a git tree entry.
	EntryType string

	// PlanTier represents the caller-supplied quota class.
	PlanTier string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for scan history.
	DatabaseBackend string

	// FilterReason explains why the file filter excluded an entry.
	FilterReason string
)

// All severities supported.
const (
	HighSeverity   Severity = "high"
	MediumSeverity Severity = "medium"
	LowSeverity    Severity = "low"
)

// All smell categories supported.
const (
	Maintainability Category = "maintainability"
	Reliability     Category = "reliability"
	Performance     Category = "performance"
	Security        Category = "security"
)

// Languages recognized by the detector.
const (
	JavaScript      Language = "javascript"
	TypeScript      Language = "typescript"
	JSX             Language = "jsx"
	TSX             Language = "tsx"
	UnknownLanguage Language = "unknown"
)

// Git tree entry types.
const (
	BlobEntry EntryType = "blob"
	DirEntry  EntryType = "tree"
)

// All plan tiers supported.
const (
	FreeTier       PlanTier = "free" // default
	ProTier        PlanTier = "pro"
	EnterpriseTier PlanTier = "enterprise"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Filter exclusion reasons reported in FilterStats.ByReason.
const (
	ReasonNotFile           FilterReason = "notFile"
	ReasonInvalidExtension  FilterReason = "invalidExtension"
	ReasonExcludedDirectory FilterReason = "excludedDirectory"
	ReasonFileTooLarge      FilterReason = "fileTooLarge"
	ReasonMaxFilesReached   FilterReason = "maxFilesReached"
)

// Code smell thresholds used by the detector rules.
const (
	LargeFileLOC            = 1000
	LargeFunctionLOC        = 100
	MaxNestingDepth         = 5
	MaxParameters           = 5
	MaxConsoleLogs          = 5
	MaxCyclomaticComplexity = 10
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidPlanTiers lists all valid plan tiers.
var ValidPlanTiers = map[PlanTier]struct{}{
	FreeTier:       {},
	ProTier:        {},
	EnterpriseTier: {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllCategories returns the smell categories in display order.
var AllCategories = []Category{Maintainability, Reliability, Performance, Security}

// SeverityRank returns the total order used for sorting findings.
// Lower rank sorts first; unknown severities sort last.
func SeverityRank(s Severity) int {
	switch s {
	case HighSeverity:
		return 0
	case MediumSeverity:
		return 1
	case LowSeverity:
		return 2
	default:
		return 3
	}
}

// ScanLimits holds the per-scan quotas selected by a plan tier.
type ScanLimits struct {
	MaxFiles    int           // Maximum number of files admitted by the filter
	MaxFileSize int64         // Maximum file size in bytes admitted by the filter
	Timeout     time.Duration // Per-request upstream timeout
}

// GetScanLimits returns the scan limits for a plan tier.
// Unknown tiers fall back to the free tier.
func GetScanLimits(tier PlanTier) ScanLimits {
	base := ScanLimits{
		MaxFiles:    500,
		MaxFileSize: 1000 * 1024,
		Timeout:     30 * time.Second,
	}
	switch tier {
	case ProTier:
		base.MaxFiles = 1000
		base.Timeout = 60 * time.Second
	case EnterpriseTier:
		base.MaxFiles = 5000
		base.Timeout = 120 * time.Second
	}
	return base
}

// LanguageForPath infers the source language from a file extension.
func LanguageForPath(path string) Language {
	switch {
	case strings.HasSuffix(path, ".tsx"):
		return TSX
	case strings.HasSuffix(path, ".ts"):
		return TypeScript
	case strings.HasSuffix(path, ".jsx"):
		return JSX
	case strings.HasSuffix(path, ".js"):
		return JavaScript
	default:
		return UnknownLanguage
	}
}
