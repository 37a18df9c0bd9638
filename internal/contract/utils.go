package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// Severity label constants.
const (
	HighValue   = "High"
	MediumValue = "Medium"
	LowValue    = "Low"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // standard danger
	MediumColor = color.New(color.FgYellow)          // standard caution, not bold
	LowColor    = color.New(color.FgCyan)            // informational signal
)

// GetPlainLabel returns a plain text label for a severity. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(s schema.Severity) string {
	switch s {
	case schema.HighSeverity:
		return HighValue
	case schema.MediumSeverity:
		return MediumValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output.
func GetColorLabel(s schema.Severity) string {
	text := GetPlainLabel(s)
	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncatePath shortens a path for table display, keeping the tail which
// carries the file name.
func TruncatePath(path string, maxWidth int) string {
	if maxWidth <= 0 || len(path) <= maxWidth {
		return path
	}
	if maxWidth <= 3 {
		return path[len(path)-maxWidth:]
	}
	return "..." + path[len(path)-(maxWidth-3):]
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for scan history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".smellscan_history.db"
	}
	return filepath.Join(homeDir, ".smellscan_history.db")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogScanHeader prints the scan banner to stderr so stdout stays clean for
// machine-readable output.
func LogScanHeader(cfg *Config) {
	branch := cfg.Branch
	if branch == "" {
		branch = "default branch"
	}
	_, _ = fmt.Fprintf(os.Stderr, "Scanning %s/%s (%s, plan %s, up to %d files)\n",
		cfg.Owner, cfg.Repo, branch, cfg.Plan, cfg.Limits.MaxFiles)
}
