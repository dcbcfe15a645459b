package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docline/internal/outline"
)

func TestStats_LatencyPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.RecordExtraction(100*time.Millisecond, nil)
	stats.RecordExtraction(200*time.Millisecond, nil)
	stats.RecordExtraction(300*time.Millisecond, nil)
	stats.RecordExtraction(400*time.Millisecond, nil)
	stats.RecordExtraction(500*time.Millisecond, nil)

	snap := stats.Latency()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStats_PrunesExpiredSamples(t *testing.T) {
	stats := NewStats(10 * time.Millisecond)
	stats.RecordExtraction(100*time.Millisecond, nil)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Latency()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.RecordExtraction(200*time.Millisecond, nil)
	snap = stats.Latency()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStats_ClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.RecordExtraction(-10*time.Millisecond, nil)
	snap := stats.Latency()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStats_HeadingCountsAccumulate(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.RecordExtraction(time.Millisecond, []outline.Heading{
		{Level: outline.H1, Text: "Introduction", Page: 1},
		{Level: outline.H2, Text: "Scope", Page: 1},
	})
	stats.RecordExtraction(time.Millisecond, []outline.Heading{
		{Level: outline.H2, Text: "Methods", Page: 2},
	})

	counts := stats.HeadingCounts()
	if counts["H1"] != 1 {
		t.Errorf("expected 1 H1, got %d", counts["H1"])
	}
	if counts["H2"] != 2 {
		t.Errorf("expected 2 H2, got %d", counts["H2"])
	}
	if counts["H3"] != 0 {
		t.Errorf("expected 0 H3, got %d", counts["H3"])
	}
}

func TestStats_EmptyLatency(t *testing.T) {
	stats := NewStats(time.Hour)
	snap := stats.Latency()
	if snap.Count != 0 || snap.MinMs != 0 || snap.P99Ms != 0 {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}
