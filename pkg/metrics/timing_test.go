package metrics

import (
	"testing"
	"time"
)

func TestRecordAccumulatesStats(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("test_op")
	m.Record(10 * time.Millisecond)
	m.Record(30 * time.Millisecond)
	m.Record(20 * time.Millisecond)

	s := m.Stats()
	if s.Count != 3 {
		t.Errorf("count = %d, want 3", s.Count)
	}
	if s.MinMs != 10 {
		t.Errorf("min = %v, want 10", s.MinMs)
	}
	if s.MaxMs != 30 {
		t.Errorf("max = %v, want 30", s.MaxMs)
	}
	if s.AvgMs != 20 {
		t.Errorf("avg = %v, want 20", s.AvgMs)
	}
	if s.TotalMs != 60 {
		t.Errorf("total = %v, want 60", s.TotalMs)
	}
}

func TestDisabledSkipsRecording(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("ignored")
	m.Record(time.Second)
	Timer(m)()
	if m.Count() != 0 {
		t.Errorf("disabled metric recorded %d samples", m.Count())
	}
}

func TestTimerRecordsElapsed(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("timed")
	done := Timer(m)
	time.Sleep(5 * time.Millisecond)
	done()

	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}
	if m.AvgNs() < int64(4*time.Millisecond) {
		t.Errorf("recorded %dns, want at least ~5ms", m.AvgNs())
	}
}

func TestTimerNilMetricIsSafe(t *testing.T) {
	Timer(nil)() // must not panic
}

func TestResetClearsMetric(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("reset_me")
	m.Record(time.Millisecond)
	m.Reset()
	if m.Count() != 0 || m.AvgNs() != 0 {
		t.Error("reset left residual data")
	}
}

func TestAllTimingStatsSkipsEmpty(t *testing.T) {
	SetEnabled(true)
	ResetAll()
	SimTick.Record(2 * time.Millisecond)

	stats := AllTimingStats()
	if len(stats) != 1 {
		t.Fatalf("stats = %d entries, want 1", len(stats))
	}
	if stats[0].Name != "sim_tick" {
		t.Errorf("stat name = %s", stats[0].Name)
	}
	ResetAll()
}
