package core

import (
	"strings"

	"github.com/shreyashpatel5506/smellscan/schema"
)

// includedExtensions are the only file types the detector understands.
var includedExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// excludedDirs are never scanned, at any nesting level.
var excludedDirs = map[string]struct{}{
	"node_modules":     {},
	"build":            {},
	"dist":             {},
	".next":            {},
	"public":           {},
	".git":             {},
	"coverage":         {},
	".vercel":          {},
	".nuxt":            {},
	"out":              {},
	"venv":             {},
	"env":              {},
	".cache":           {},
	".pytest_cache":    {},
	"__pycache__":      {},
}

// priorityDirs are scanned first when the file budget is tight.
var priorityDirs = []string{
	"/app", "/pages", "/components", "/api", "/lib", "/src", "/server", "/client",
}

// FilterFiles selects the tree entries worth scanning and reports why the
// rest were excluded. Every input entry is counted exactly once: either
// in Included or under one reason in Excluded. Priority directories sort
// first in the returned slice so the file budget spends itself on the
// directories most likely to hold application code.
func FilterFiles(entries []schema.TreeEntry, limits schema.ScanLimits) ([]schema.TreeEntry, schema.FilterStats) {
	stats := schema.FilterStats{
		TotalInput: len(entries),
		ByReason: map[schema.FilterReason]int{
			schema.ReasonNotFile:           0,
			schema.ReasonInvalidExtension:  0,
			schema.ReasonExcludedDirectory: 0,
			schema.ReasonFileTooLarge:      0,
			schema.ReasonMaxFilesReached:   0,
		},
	}

	exclude := func(reason schema.FilterReason) {
		stats.Excluded++
		stats.ByReason[reason]++
	}

	var priority, regular []schema.TreeEntry
	for _, entry := range entries {
		if stats.Included >= limits.MaxFiles {
			exclude(schema.ReasonMaxFilesReached)
			continue
		}
		if entry.Type != schema.BlobEntry {
			exclude(schema.ReasonNotFile)
			continue
		}
		if !hasValidExtension(entry.Path) {
			exclude(schema.ReasonInvalidExtension)
			continue
		}
		if inExcludedDir(entry.Path) {
			exclude(schema.ReasonExcludedDirectory)
			continue
		}
		if entry.Size > limits.MaxFileSize {
			exclude(schema.ReasonFileTooLarge)
			continue
		}
		stats.Included++
		if isPriorityPath(entry.Path) {
			priority = append(priority, entry)
		} else {
			regular = append(regular, entry)
		}
	}

	scannable := make([]schema.TreeEntry, 0, stats.Included)
	scannable = append(scannable, priority...)
	scannable = append(scannable, regular...)
	return scannable, stats
}

func hasValidExtension(path string) bool {
	for _, ext := range includedExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func inExcludedDir(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if _, ok := excludedDirs[segment]; ok {
			return true
		}
	}
	return false
}

// isPriorityPath matches the path, normalized with a leading slash,
// against the conventional source roots. Only a prefix counts: a file
// under a nested src/ or lib/ does not jump the queue.
func isPriorityPath(path string) bool {
	normalized := "/" + path
	for _, dir := range priorityDirs {
		if strings.HasPrefix(normalized, dir+"/") {
			return true
		}
	}
	return false
}
