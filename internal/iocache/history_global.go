package iocache

import (
	"fmt"
	"sync"

	"github.com/shreyashpatel5506/smellscan/internal/contract"
	"github.com/shreyashpatel5506/smellscan/schema"
)

// Global history store for main logic.
var (
	store     contract.HistoryStore
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitHistory initializes the global history store exactly once, even
// with concurrent calls.
func InitHistory(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		s, err := NewHistoryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history tracking: %w", err)
			return
		}
		store = s
	})
	return initErr
}

// Store returns the global history store. Before InitHistory it returns
// a no-op store so callers never need a nil check.
func Store() contract.HistoryStore {
	if store == nil {
		return &HistoryStoreImpl{backend: schema.NoneBackend}
	}
	return store
}

// CloseHistory closes the global history store exactly once.
func CloseHistory() {
	closeOnce.Do(func() {
		if store != nil {
			if err := store.Close(); err != nil {
				contract.LogWarn("closing history store", err)
			}
		}
	})
}
