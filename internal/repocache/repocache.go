// Package repocache keeps scan reports and immutable git objects in
// memory so repeat scans of the same repository are cheap.
//
// Scan reports are cached per owner/repo/branch with a short TTL since
// branches move. Trees and file contents are keyed by owner/repo plus a
// SHA; a SHA never changes meaning within a repository, so those get a
// longer TTL. Concurrent scans of the same key are coalesced into a
// single execution.
package repocache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shreyashpatel5506/smellscan/schema"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultScanTTL bounds staleness of a cached scan report.
	DefaultScanTTL = 30 * time.Minute

	// DefaultImmutableTTL bounds memory held by SHA-keyed objects.
	// The objects never go stale; eviction is purely about space.
	DefaultImmutableTTL = 60 * time.Minute

	// DefaultSweepInterval is how often expired entries get purged.
	DefaultSweepInterval = 10 * time.Minute
)

type scanEntry struct {
	report  *schema.ScanReport
	expires time.Time
}

type treeEntry struct {
	tree    *schema.RepoTree
	expires time.Time
}

type fileEntry struct {
	content *schema.FileContent
	expires time.Time
}

// Cache is the in-memory cache and request coalescer. Safe for
// concurrent use.
type Cache struct {
	mu    sync.RWMutex
	scans map[string]scanEntry
	trees map[string]treeEntry
	files map[string]fileEntry

	flight singleflight.Group

	now          func() time.Time
	scanTTL      time.Duration
	immutableTTL time.Duration
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithScanTTL overrides the scan report TTL.
func WithScanTTL(d time.Duration) Option {
	return func(c *Cache) { c.scanTTL = d }
}

// WithImmutableTTL overrides the TTL for SHA-keyed objects.
func WithImmutableTTL(d time.Duration) Option {
	return func(c *Cache) { c.immutableTTL = d }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		scans:        map[string]scanEntry{},
		trees:        map[string]treeEntry{},
		files:        map[string]fileEntry{},
		now:          time.Now,
		scanTTL:      DefaultScanTTL,
		immutableTTL: DefaultImmutableTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScanKey builds the canonical cache key for a scan. An empty branch
// maps to "default" so "no branch selected" is a single cache entry.
func ScanKey(owner, repo, branch string) string {
	if branch == "" {
		branch = "default"
	}
	return fmt.Sprintf("%s/%s@%s", owner, repo, branch)
}

// TreeKey builds the cache key for a repository tree at a commit.
func TreeKey(owner, repo, commitSHA string) string {
	return fmt.Sprintf("%s/%s@%s", owner, repo, commitSHA)
}

// FileKey builds the cache key for a file blob.
func FileKey(owner, repo, sha string) string {
	return fmt.Sprintf("%s/%s@%s", owner, repo, sha)
}

// GetOrStartScan returns the cached report for the key, or runs scanFn
// to produce one. Concurrent callers with the same key share a single
// scanFn execution and all receive its result. Only successful reports
// are cached; a failed report is returned to every waiter but a later
// call retries.
func (c *Cache) GetOrStartScan(owner, repo, branch string, scanFn func() (*schema.ScanReport, error)) (*schema.ScanReport, error) {
	key := ScanKey(owner, repo, branch)

	c.mu.RLock()
	entry, ok := c.scans[key]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expires) {
		return entry.report, nil
	}

	result, err, _ := c.flight.Do(key, func() (any, error) {
		// Re-check under the flight: another waiter may have just
		// populated the entry before we were handed the lead.
		c.mu.RLock()
		entry, ok := c.scans[key]
		c.mu.RUnlock()
		if ok && c.now().Before(entry.expires) {
			return entry.report, nil
		}

		report, err := scanFn()
		if err != nil {
			return nil, err
		}
		if !report.Failed() {
			c.mu.Lock()
			c.scans[key] = scanEntry{report: report, expires: c.now().Add(c.scanTTL)}
			c.mu.Unlock()
		}
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*schema.ScanReport), nil
}

// GetTree returns a cached tree. Keys come from TreeKey.
func (c *Cache) GetTree(key string) (*schema.RepoTree, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.trees[key]
	if !ok || !c.now().Before(entry.expires) {
		return nil, false
	}
	return entry.tree, true
}

// SetTree caches a tree. Empty keys are ignored.
func (c *Cache) SetTree(key string, tree *schema.RepoTree) {
	if key == "" || tree == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees[key] = treeEntry{tree: tree, expires: c.now().Add(c.immutableTTL)}
}

// GetFile returns a cached file content. Keys come from FileKey.
func (c *Cache) GetFile(key string) (*schema.FileContent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.files[key]
	if !ok || !c.now().Before(entry.expires) {
		return nil, false
	}
	return entry.content, true
}

// SetFile caches a file content. Empty keys and failed fetches are
// ignored.
func (c *Cache) SetFile(key string, content *schema.FileContent) {
	if key == "" || content == nil || content.Failed() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[key] = fileEntry{content: content, expires: c.now().Add(c.immutableTTL)}
}

// InvalidateRepo drops all cached scan reports for an owner/repo pair.
// SHA-keyed objects stay; they are valid for any ref.
func (c *Cache) InvalidateRepo(owner, repo string) int {
	prefix := fmt.Sprintf("%s/%s@", owner, repo)
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key := range c.scans {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(c.scans, key)
			dropped++
		}
	}
	return dropped
}

// Sweep removes every expired entry and reports how many were dropped.
func (c *Cache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key, entry := range c.scans {
		if !now.Before(entry.expires) {
			delete(c.scans, key)
			dropped++
		}
	}
	for key, entry := range c.trees {
		if !now.Before(entry.expires) {
			delete(c.trees, key)
			dropped++
		}
	}
	for key, entry := range c.files {
		if !now.Before(entry.expires) {
			delete(c.files, key)
			dropped++
		}
	}
	return dropped
}

// StartSweeper purges expired entries on an interval until ctx is done.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

// Stats reports current entry counts per cache region.
func (c *Cache) Stats() (scans, trees, files int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scans), len(c.trees), len(c.files)
}
