package core

import (
	"fmt"
	"testing"

	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/stretchr/testify/assert"
)

func blob(path string, size int64) schema.TreeEntry {
	return schema.TreeEntry{Path: path, Type: schema.BlobEntry, SHA: "sha-" + path, Size: size}
}

func freeLimits() schema.ScanLimits {
	return schema.GetScanLimits(schema.FreeTier)
}

func TestFilterFilesBasic(t *testing.T) {
	entries := []schema.TreeEntry{
		blob("src/index.ts", 100),
		blob("README.md", 100),
		blob("node_modules/react/index.js", 100),
		{Path: "src", Type: schema.DirEntry},
		blob("src/huge.js", 5*1024*1024),
	}

	scannable, stats := FilterFiles(entries, freeLimits())

	assert.Len(t, scannable, 1)
	assert.Equal(t, "src/index.ts", scannable[0].Path)
	assert.Equal(t, 5, stats.TotalInput)
	assert.Equal(t, 1, stats.Included)
	assert.Equal(t, 4, stats.Excluded)
	assert.Equal(t, 1, stats.ByReason[schema.ReasonInvalidExtension])
	assert.Equal(t, 1, stats.ByReason[schema.ReasonExcludedDirectory])
	assert.Equal(t, 1, stats.ByReason[schema.ReasonNotFile])
	assert.Equal(t, 1, stats.ByReason[schema.ReasonFileTooLarge])
}

func TestFilterFilesCompleteness(t *testing.T) {
	var entries []schema.TreeEntry
	for i := 0; i < 600; i++ {
		entries = append(entries, blob(fmt.Sprintf("src/file%d.ts", i), 10))
	}
	entries = append(entries, blob("image.png", 10))

	scannable, stats := FilterFiles(entries, freeLimits())

	// Every input entry is counted exactly once.
	assert.Equal(t, stats.TotalInput, stats.Included+stats.Excluded)
	byReasonTotal := 0
	for _, n := range stats.ByReason {
		byReasonTotal += n
	}
	assert.Equal(t, stats.Excluded, byReasonTotal)
	assert.Equal(t, 500, stats.Included)
	assert.Len(t, scannable, 500)
	// The budget check runs first, so the trailing .png also lands in
	// maxFilesReached rather than invalidExtension.
	assert.Equal(t, 101, stats.ByReason[schema.ReasonMaxFilesReached])
}

func TestFilterFilesPriorityOrdering(t *testing.T) {
	entries := []schema.TreeEntry{
		blob("docs/sample.ts", 10),
		blob("app/page.tsx", 10),
		blob("scripts/run.js", 10),
		blob("packages/web/src/main.ts", 10),
	}

	scannable, _ := FilterFiles(entries, freeLimits())

	assert.Len(t, scannable, 4)
	// Only files under a top-level source root come first; a nested src/
	// segment does not promote packages/web/src/main.ts. Everything else
	// keeps its relative input order.
	assert.Equal(t, "app/page.tsx", scannable[0].Path)
	assert.Equal(t, "docs/sample.ts", scannable[1].Path)
	assert.Equal(t, "scripts/run.js", scannable[2].Path)
	assert.Equal(t, "packages/web/src/main.ts", scannable[3].Path)
}

func TestFilterFilesNestedExcludedDir(t *testing.T) {
	entries := []schema.TreeEntry{
		blob("packages/app/node_modules/lodash/index.js", 10),
		blob("web/.next/static/chunk.js", 10),
	}
	scannable, stats := FilterFiles(entries, freeLimits())
	assert.Empty(t, scannable)
	assert.Equal(t, 2, stats.ByReason[schema.ReasonExcludedDirectory])
}

func TestFilterFilesSizeBoundary(t *testing.T) {
	limits := freeLimits()
	entries := []schema.TreeEntry{
		blob("src/at-limit.ts", limits.MaxFileSize),
		blob("src/over-limit.ts", limits.MaxFileSize+1),
	}
	scannable, stats := FilterFiles(entries, limits)
	assert.Len(t, scannable, 1)
	assert.Equal(t, "src/at-limit.ts", scannable[0].Path)
	assert.Equal(t, 1, stats.ByReason[schema.ReasonFileTooLarge])
}

func TestFilterFilesEmptyInput(t *testing.T) {
	scannable, stats := FilterFiles(nil, freeLimits())
	assert.Empty(t, scannable)
	assert.Equal(t, 0, stats.TotalInput)
	assert.Equal(t, 0, stats.Included)
}
