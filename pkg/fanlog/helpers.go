package fanlog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// defaultCapacity bounds admitted-but-undelivered events when neither the
// option nor the environment override it.
const defaultCapacity = 1000

// getDefaultCapacity reads FANLOG_QUEUE_SIZE or falls back to the default.
func getDefaultCapacity() int {
	if value, exists := os.LookupEnv("FANLOG_QUEUE_SIZE"); exists {
		if size, err := strconv.Atoi(value); err == nil && size > 0 {
			return size
		}
	}
	return defaultCapacity
}

// isTestMode detects if we're running under go test
func isTestMode() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	if exe, err := os.Executable(); err == nil {
		if strings.HasSuffix(exe, ".test") {
			return true
		}
		basename := filepath.Base(exe)
		if basename == "go" || strings.Contains(basename, ".test") {
			return true
		}
	}
	return false
}

// getDefaultTraceHandler keeps test output quiet and production stderr
// noisy, matching the taxonomy: configuration errors are traced, never
// surfaced.
func getDefaultTraceHandler() TraceFunc {
	if isTestMode() {
		return SilentTraceHandler
	}
	return StderrTraceHandler
}
