package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "High", GetPlainLabel(schema.HighSeverity))
	assert.Equal(t, "Medium", GetPlainLabel(schema.MediumSeverity))
	assert.Equal(t, "Low", GetPlainLabel(schema.LowSeverity))
	assert.Equal(t, "Low", GetPlainLabel(schema.Severity("unknown")))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.ts", TruncatePath("short.ts", 20))
	assert.Equal(t, "...components/Button.tsx", TruncatePath("app/dashboard/components/Button.tsx", 24))
	assert.Equal(t, "app/a.ts", TruncatePath("app/a.ts", 0))
	// Too narrow for the ellipsis: keep the raw tail.
	assert.Equal(t, ".ts", TruncatePath("app/a.ts", 3))
}

func TestSelectOutputFileStdout(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Same(t, os.Stdout, f)
}

func TestSelectOutputFileCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	f, err := SelectOutputFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.NotSame(t, os.Stdout, f)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.Contains(t, path, ".smellscan_history.db")
}
