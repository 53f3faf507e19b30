package fanlog

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// ErrDispatcherClosed is returned by Shutdown and Close when the
// dispatcher was already closed by an earlier call.
var ErrDispatcherClosed = errors.New("fanlog: dispatcher closed")

// TraceFunc receives diagnostics about silently ignored configuration
// errors (duplicate adds, removing unknown sinks, submissions after
// shutdown). These are not failures; the hook exists so operators can
// notice misconfiguration. op names the operation, sink the affected
// sink's label (may be empty).
type TraceFunc func(op, sink, message string)

// SilentTraceHandler discards diagnostics. Default under `go test`.
func SilentTraceHandler(op, sink, message string) {}

// StderrTraceHandler writes diagnostics to stderr. Default otherwise.
func StderrTraceHandler(op, sink, message string) {
	if sink != "" {
		fmt.Fprintf(os.Stderr, "fanlog: %s %s: %s\n", op, sink, message)
		return
	}
	fmt.Fprintf(os.Stderr, "fanlog: %s: %s\n", op, message)
}
