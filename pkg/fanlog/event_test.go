package fanlog

import (
	"testing"
	"time"

	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// TestNewEventDefaults tests construction-time defaults.
func TestNewEventDefaults(t *testing.T) {
	before := time.Now()
	e := NewEvent(FlagInfo, LevelInfo, "hello")
	after := time.Now()

	if e.Message != "hello" || e.Flag != FlagInfo || e.Level != LevelInfo {
		t.Errorf("unexpected event fields: %+v", e)
	}
	if e.Timestamp.Before(before) || e.Timestamp.After(after) {
		t.Errorf("timestamp should default to construction time, got %v", e.Timestamp)
	}
	if e.Copy != CopyMessage {
		t.Errorf("expected CopyMessage default, got %v", e.Copy)
	}
	if e.GoroutineID == 0 {
		t.Error("expected the producing goroutine id to be captured")
	}
	if e.LaneLabel != "" {
		t.Errorf("expected empty lane label off-lane, got %q", e.LaneLabel)
	}
}

// TestEventOptions tests the construction options.
func TestEventOptions(t *testing.T) {
	ts := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	e := NewEvent(FlagError, LevelError, "boom",
		WithContextTag(42),
		WithCallSite("/src/pkg/server/accept.go", "server.Accept", 87),
		WithTag("req-9"),
		WithTimestamp(ts),
		WithCopyOptions(CopyMessage|CopyFile|CopyFunction),
	)

	if e.Context != 42 {
		t.Errorf("expected context tag 42, got %d", e.Context)
	}
	if e.File != "/src/pkg/server/accept.go" || e.Function != "server.Accept" || e.Line != 87 {
		t.Errorf("unexpected call site: %q %q %d", e.File, e.Function, e.Line)
	}
	if e.FileName != "accept" {
		t.Errorf("expected derived file name %q, got %q", "accept", e.FileName)
	}
	if e.Tag != "req-9" {
		t.Errorf("expected tag, got %v", e.Tag)
	}
	if !e.Timestamp.Equal(ts) {
		t.Errorf("expected explicit timestamp, got %v", e.Timestamp)
	}
}

// TestEventLaneLabelCapture tests that events built on a lane record its
// label.
func TestEventLaneLabelCapture(t *testing.T) {
	l := lane.New("test.producer")
	defer l.Close()

	var e *Event
	l.Sync(func() {
		e = NewEvent(FlagDebug, LevelDebug, "from lane")
	})
	if e.LaneLabel != "test.producer" {
		t.Errorf("expected lane label %q, got %q", "test.producer", e.LaneLabel)
	}
}

// TestEventClone tests that a clone is independent of the original.
func TestEventClone(t *testing.T) {
	e := NewEvent(FlagInfo, LevelInfo, "original", WithContextTag(7))
	c := e.Clone()

	if c == e {
		t.Fatal("clone should be a distinct instance")
	}
	if c.Message != e.Message || c.Context != e.Context || !c.Timestamp.Equal(e.Timestamp) {
		t.Error("clone should share field values")
	}

	c.Message = "mutated"
	c.Context = 99
	if e.Message != "original" || e.Context != 7 {
		t.Error("mutating the clone must not affect the original")
	}
}

// TestTrimFileName tests file name derivation edge cases.
func TestTrimFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"main.go", "main"},
		{"/a/b/c/handler.go", "handler"},
		{"/a/b/noext", "noext"},
		{"relative/path/worker.go", "worker"},
	}
	for _, tc := range cases {
		if got := trimFileName(tc.in); got != tc.want {
			t.Errorf("trimFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
