package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces rapid triggers into one callback after a quiet
// period. Safe for concurrent use.
type debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(d time.Duration) *debouncer {
	return &debouncer{d: d}
}

// trigger schedules fn to run after the quiet period, resetting any
// previously pending run.
func (db *debouncer) trigger(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
	}
	db.timer = time.AfterFunc(db.d, fn)
}

// cancelPending drops any scheduled callback.
func (db *debouncer) cancelPending() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
