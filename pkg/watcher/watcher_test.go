package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeGraph(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewResolvesAbsolutePath(t *testing.T) {
	w, err := New("graph.json")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("path %q is not absolute", w.Path())
	}
}

func TestStartTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	writeGraph(t, path, `{"nodes":[],"links":[]}`)

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second start = %v, want ErrAlreadyStarted", err)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	writeGraph(t, path, "{}")

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
	if w.IsStarted() {
		t.Error("IsStarted() = true after Stop")
	}
}

func TestForcePollMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	writeGraph(t, path, "{}")

	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("forced poll mode not active")
	}
}

func TestPollingDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	writeGraph(t, path, `{"nodes":[]}`)

	var changes atomic.Int32
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Size change guarantees detection even on coarse mtime filesystems.
	writeGraph(t, path, `{"nodes":[{"id":"a","label":"a","group":"g"}]}`)

	select {
	case <-w.Changed():
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification within 3s")
	}
	if changes.Load() == 0 {
		t.Error("onChange callback never fired")
	}
}

func TestPollingReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	writeGraph(t, path, "{}")

	errCh := make(chan error, 4)
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithOnError(func(e error) {
			select {
			case errCh <- e:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-errCh:
		if e != ErrFileRemoved {
			t.Errorf("error = %v, want ErrFileRemoved", e)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("removal never reported")
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(40 * time.Millisecond)
	for i := 0; i < 10; i++ {
		d.trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("burst fired %d times, want 1", got)
	}
}

func TestDebouncerCancelPending(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30 * time.Millisecond)
	d.trigger(func() { fired.Add(1) })
	d.cancelPending()
	time.Sleep(100 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("cancelled trigger still fired")
	}
}

func TestNoCallbacksAfterStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	writeGraph(t, path, "{}")

	var changes atomic.Int32
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(10*time.Millisecond),
		WithDebounceDuration(5*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()

	writeGraph(t, path, `{"nodes":[{"id":"a"}]}`)
	time.Sleep(100 * time.Millisecond)
	if changes.Load() != 0 {
		t.Errorf("onChange fired %d times after Stop", changes.Load())
	}
}
