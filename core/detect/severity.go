package detect

import (
	"sort"
	"strings"

	"github.com/shreyashpatel5506/smellscan/schema"
)

// criticalPathSegments mark files whose findings get amplified severity.
var criticalPathSegments = []string{"/api/", "/auth/", "/database/", "/lib/"}

// MapSeverity adjusts a finding's base severity for its file context.
// Applied exactly once per finding, after detection and before the
// finding is frozen into a report. The adjustment never lowers severity:
// critical paths bump one level, security findings and reliability
// findings in API routes are forced to high.
func MapSeverity(smell schema.SmellFinding, filePath string) schema.Severity {
	severity := smell.Severity
	if severity == "" {
		severity = schema.LowSeverity
	}

	if isCriticalPath(filePath) {
		switch severity {
		case schema.LowSeverity:
			severity = schema.MediumSeverity
		case schema.MediumSeverity:
			severity = schema.HighSeverity
		}
	}

	if smell.Category == schema.Security {
		severity = schema.HighSeverity
	}

	if (smell.Category == schema.Reliability || smell.ID == schema.AsyncNoTryCatch) &&
		strings.Contains(normalizePath(filePath), "/api/") {
		severity = schema.HighSeverity
	}

	return severity
}

// isCriticalPath matches segment patterns against the path with a
// leading slash so top-level directories like "lib/" still match.
func isCriticalPath(filePath string) bool {
	normalized := normalizePath(filePath)
	for _, segment := range criticalPathSegments {
		if strings.Contains(normalized, segment) {
			return true
		}
	}
	return false
}

func normalizePath(filePath string) string {
	if strings.HasPrefix(filePath, "/") {
		return filePath
	}
	return "/" + filePath
}

// SortBySeverity returns a new slice ordered high to low. The sort is
// stable so equal severities keep their detection order.
func SortBySeverity(smells []schema.SmellFinding) []schema.SmellFinding {
	sorted := make([]schema.SmellFinding, len(smells))
	copy(sorted, smells)
	sort.SliceStable(sorted, func(i, j int) bool {
		return schema.SeverityRank(sorted[i].Severity) < schema.SeverityRank(sorted[j].Severity)
	})
	return sorted
}

// FilterBySeverity keeps findings at or above minSeverity. An unknown
// minimum admits everything.
func FilterBySeverity(smells []schema.SmellFinding, minSeverity schema.Severity) []schema.SmellFinding {
	threshold := inclusionRank(minSeverity)
	filtered := []schema.SmellFinding{}
	for _, smell := range smells {
		if inclusionRank(smell.Severity) >= threshold {
			filtered = append(filtered, smell)
		}
	}
	return filtered
}

// inclusionRank orders severities for threshold checks, higher is worse.
func inclusionRank(s schema.Severity) int {
	switch s {
	case schema.HighSeverity:
		return 3
	case schema.MediumSeverity:
		return 2
	case schema.LowSeverity:
		return 1
	default:
		return 0
	}
}
