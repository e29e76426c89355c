package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v\n%s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_Threshold(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	tests := []struct {
		name  string
		level Level
		want  bool
	}{
		{"debug below threshold", LevelDebug, false},
		{"info at threshold", LevelInfo, true},
		{"warn above threshold", LevelWarn, true},
		{"error above threshold", LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := buf.Len()
			logger.log(tt.level, "message", nil, nil)

			if logged := buf.Len() > before; logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
			if logger.Enabled(tt.level) != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, !tt.want, tt.want)
			}
		})
	}
}

func TestLogger_Entry(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)
	logger.now = fixedClock

	logger.Error("Creating issue failed", Fields{"repository": "owner/repo"}, errors.New("boom"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	want := LogEntry{
		Timestamp: "2026-01-01T00:00:00Z",
		Level:     "ERROR",
		Message:   "Creating issue failed",
		Fields:    Fields{"repository": "owner/repo"},
		Error:     "boom",
	}
	if diff := cmp.Diff(want, entries[0]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelDebug, &buf)
	root.now = fixedClock

	run := root.With(Fields{"url": "https://example.com", "stage": "fetch"})
	run.Info("Found conferences", Fields{"count": 3, "stage": "extract"})
	root.Info("Plain entry", nil)

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	wantFields := Fields{"url": "https://example.com", "stage": "extract", "count": float64(3)}
	if diff := cmp.Diff(wantFields, entries[0].Fields); diff != "" {
		t.Errorf("derived fields mismatch (-want +got):\n%s", diff)
	}
	if entries[1].Fields != nil {
		t.Errorf("parent logger should not gain fields, got %v", entries[1].Fields)
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(9), "LEVEL(9)"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" WARN ", LevelWarn},
		{"Error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("conferences.added")
	m.IncrCounter("conferences.added")
	m.AddCounter("conferences.added", 3)
	m.SetGauge("conferences.current", 12)
	m.SetGauge("conferences.current", 14)
	m.RecordTiming("fetch", 100*time.Millisecond)
	m.RecordTiming("fetch", 200*time.Millisecond)
	m.RecordTiming("fetch", 150*time.Millisecond)

	want := MetricsSnapshot{
		Counters: map[string]int64{"conferences.added": 5},
		Gauges:   map[string]float64{"conferences.current": 14},
		Timings: map[string]TimingStats{
			"fetch": {Count: 3, Total: 450 * time.Millisecond, Min: 100 * time.Millisecond, Max: 200 * time.Millisecond},
		},
	}
	snap := m.Snapshot()
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
	if avg := snap.Timings["fetch"].Average(); avg != 150*time.Millisecond {
		t.Errorf("Average() = %v, want 150ms", avg)
	}

	// the snapshot is a copy
	m.IncrCounter("conferences.added")
	if snap.Counters["conferences.added"] != 5 {
		t.Error("snapshot changed after further updates")
	}
}

func TestMetricsSnapshotNames(t *testing.T) {
	snap := MetricsSnapshot{
		Counters: map[string]int64{"notify.sent": 1, "fetch": 1},
		Gauges:   map[string]float64{"conferences.current": 3},
		Timings:  map[string]TimingStats{"fetch": {Count: 1}},
	}

	want := []string{"conferences.current", "fetch", "notify.sent"}
	if diff := cmp.Diff(want, snap.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if (TimingStats{}).Average() != 0 {
		t.Error("empty timing should average to zero")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	previous := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(previous)

	Debug("test debug", nil)
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Errorf("expected 4 log lines, got %d", lines)
	}

	IncrCounter("package.test")
	AddCounter("package.test", 2)
	SetGauge("package.gauge", 42.0)
	RecordTiming("package.timing", time.Second)

	snap := GetMetricsSnapshot()
	if snap.Counters["package.test"] < 3 {
		t.Errorf("counter = %d, want at least 3", snap.Counters["package.test"])
	}
	if snap.Gauges["package.gauge"] != 42 {
		t.Errorf("gauge = %v, want 42", snap.Gauges["package.gauge"])
	}
}
