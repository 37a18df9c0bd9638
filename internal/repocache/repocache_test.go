package repocache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shreyashpatel5506/smellscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a mutable time source for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func okReport() *schema.ScanReport {
	return schema.NewScanReport("octo", "demo", "main")
}

func TestScanKey(t *testing.T) {
	assert.Equal(t, "octo/demo@main", ScanKey("octo", "demo", "main"))
	assert.Equal(t, "octo/demo@default", ScanKey("octo", "demo", ""))
}

func TestObjectKeysQualifiedByRepo(t *testing.T) {
	// The same SHA in two repositories must not share a cache entry.
	assert.Equal(t, "octo/demo@abc123", TreeKey("octo", "demo", "abc123"))
	assert.Equal(t, "octo/demo@blob9", FileKey("octo", "demo", "blob9"))
	assert.NotEqual(t, TreeKey("octo", "demo", "abc123"), TreeKey("octo", "other", "abc123"))
}

func TestGetOrStartScanCachesSuccess(t *testing.T) {
	cache := New()
	calls := 0
	scanFn := func() (*schema.ScanReport, error) {
		calls++
		return okReport(), nil
	}

	first, err := cache.GetOrStartScan("octo", "demo", "main", scanFn)
	require.NoError(t, err)
	second, err := cache.GetOrStartScan("octo", "demo", "main", scanFn)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Same(t, first, second)
}

func TestGetOrStartScanExpiry(t *testing.T) {
	clock := newFakeClock()
	cache := New(WithClock(clock.Now), WithScanTTL(10*time.Minute))
	calls := 0
	scanFn := func() (*schema.ScanReport, error) {
		calls++
		return okReport(), nil
	}

	_, err := cache.GetOrStartScan("octo", "demo", "main", scanFn)
	require.NoError(t, err)

	clock.Advance(9 * time.Minute)
	_, err = cache.GetOrStartScan("octo", "demo", "main", scanFn)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Minute)
	_, err = cache.GetOrStartScan("octo", "demo", "main", scanFn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrStartScanFailedReportNotCached(t *testing.T) {
	cache := New()
	calls := 0
	scanFn := func() (*schema.ScanReport, error) {
		calls++
		report := okReport()
		report.Errors = append(report.Errors, "repository not found")
		return report, nil
	}

	report, err := cache.GetOrStartScan("octo", "demo", "main", scanFn)
	require.NoError(t, err)
	assert.True(t, report.Failed())

	_, err = cache.GetOrStartScan("octo", "demo", "main", scanFn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrStartScanErrorPropagates(t *testing.T) {
	cache := New()
	wantErr := errors.New("boom")

	_, err := cache.GetOrStartScan("octo", "demo", "main", func() (*schema.ScanReport, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	scans, _, _ := cache.Stats()
	assert.Equal(t, 0, scans)
}

func TestGetOrStartScanCoalesces(t *testing.T) {
	cache := New()
	var calls atomic.Int32
	release := make(chan struct{})
	scanFn := func() (*schema.ScanReport, error) {
		calls.Add(1)
		<-release
		return okReport(), nil
	}

	const waiters = 8
	var wg sync.WaitGroup
	var started sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		started.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			report, err := cache.GetOrStartScan("octo", "demo", "main", scanFn)
			assert.NoError(t, err)
			assert.NotNil(t, report)
		}()
	}

	started.Wait()
	// Give the goroutines a moment to pile onto the same flight key
	// before the leader is released.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestTreeCacheRoundtrip(t *testing.T) {
	clock := newFakeClock()
	cache := New(WithClock(clock.Now), WithImmutableTTL(time.Hour))

	tree := &schema.RepoTree{Entries: []schema.TreeEntry{{Path: "a.js", Type: schema.BlobEntry}}}
	cache.SetTree("tree1", tree)

	got, ok := cache.GetTree("tree1")
	require.True(t, ok)
	assert.Same(t, tree, got)

	_, ok = cache.GetTree("unknown")
	assert.False(t, ok)

	clock.Advance(2 * time.Hour)
	_, ok = cache.GetTree("tree1")
	assert.False(t, ok)
}

func TestSetTreeIgnoresEmptyKey(t *testing.T) {
	cache := New()
	cache.SetTree("", &schema.RepoTree{})
	cache.SetTree("sha", nil)
	_, trees, _ := cache.Stats()
	assert.Equal(t, 0, trees)
}

func TestFileCacheSkipsFailedContent(t *testing.T) {
	cache := New()

	cache.SetFile("sha1", &schema.FileContent{Path: "a.js", Content: "let a = 1;"})
	cache.SetFile("sha2", &schema.FileContent{Path: "b.js", Error: "decode failed"})

	_, ok := cache.GetFile("sha1")
	assert.True(t, ok)
	_, ok = cache.GetFile("sha2")
	assert.False(t, ok)
}

func TestInvalidateRepo(t *testing.T) {
	cache := New()
	for _, branch := range []string{"main", "develop"} {
		branch := branch
		_, err := cache.GetOrStartScan("octo", "demo", branch, func() (*schema.ScanReport, error) {
			return schema.NewScanReport("octo", "demo", branch), nil
		})
		require.NoError(t, err)
	}
	_, err := cache.GetOrStartScan("other", "repo", "main", func() (*schema.ScanReport, error) {
		return schema.NewScanReport("other", "repo", "main"), nil
	})
	require.NoError(t, err)

	dropped := cache.InvalidateRepo("octo", "demo")
	assert.Equal(t, 2, dropped)

	scans, _, _ := cache.Stats()
	assert.Equal(t, 1, scans)
}

func TestSweep(t *testing.T) {
	clock := newFakeClock()
	cache := New(WithClock(clock.Now), WithScanTTL(10*time.Minute), WithImmutableTTL(time.Hour))

	_, err := cache.GetOrStartScan("octo", "demo", "main", func() (*schema.ScanReport, error) {
		return okReport(), nil
	})
	require.NoError(t, err)
	cache.SetTree("tree1", &schema.RepoTree{})
	cache.SetFile("sha1", &schema.FileContent{Path: "a.js", Content: "x"})

	clock.Advance(30 * time.Minute)
	dropped := cache.Sweep()
	assert.Equal(t, 1, dropped)

	scans, trees, files := cache.Stats()
	assert.Equal(t, 0, scans)
	assert.Equal(t, 1, trees)
	assert.Equal(t, 1, files)

	clock.Advance(time.Hour)
	assert.Equal(t, 2, cache.Sweep())
}
