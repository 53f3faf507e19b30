package execinfo

import (
	"testing"

	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// TestCaptureOffLane tests capture from a plain goroutine.
func TestCaptureOffLane(t *testing.T) {
	ctx := Capture()
	if ctx.GoroutineID == 0 {
		t.Error("expected a goroutine id")
	}
	if ctx.LaneLabel != "" {
		t.Errorf("expected no lane label, got %q", ctx.LaneLabel)
	}
}

// TestCaptureOnLane tests capture from a lane worker.
func TestCaptureOnLane(t *testing.T) {
	l := lane.New("execinfo.test")
	defer l.Close()

	var ctx Context
	l.Sync(func() {
		ctx = Capture()
	})
	if ctx.LaneLabel != "execinfo.test" {
		t.Errorf("expected lane label %q, got %q", "execinfo.test", ctx.LaneLabel)
	}

	here := Capture()
	if here.GoroutineID == ctx.GoroutineID {
		t.Error("worker and caller should have distinct goroutine ids")
	}
}
