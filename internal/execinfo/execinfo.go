// Package execinfo captures the execution context of a log call: which
// goroutine produced the event and, when the producer is itself a lane
// worker, which lane it was running on.
package execinfo

import (
	"github.com/petermattis/goid"
	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// Context is a snapshot of the calling goroutine's execution context,
// taken once per event construction.
type Context struct {
	GoroutineID int64
	LaneLabel   string
}

// Capture returns the current goroutine's execution context.
func Capture() Context {
	return Context{
		GoroutineID: goid.Get(),
		LaneLabel:   lane.CurrentLabel(),
	}
}
