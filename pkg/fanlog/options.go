package fanlog

import (
	"runtime"

	"github.com/pkg/errors"
)

// config holds dispatcher construction settings.
type config struct {
	capacity    int
	parallelism int
	trace       TraceFunc
}

func defaultConfig() *config {
	return &config{
		capacity:    getDefaultCapacity(),
		parallelism: max(1, runtime.GOMAXPROCS(0)),
		trace:       getDefaultTraceHandler(),
	}
}

// Option is a functional option for configuring a Dispatcher.
type Option func(*config) error

// WithCapacity sets the maximum number of admitted-but-undelivered events.
// This is the sole tunable of the admission control subsystem.
func WithCapacity(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.Errorf("fanlog: capacity must be positive, got %d", n)
		}
		c.capacity = n
		return nil
	}
}

// WithParallelism overrides the detected degree of parallelism. A value of
// 1 forces the serial fan-out path; the observable per-sink ordering is
// identical either way.
func WithParallelism(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.Errorf("fanlog: parallelism must be positive, got %d", n)
		}
		c.parallelism = n
		return nil
	}
}

// WithTraceHandler sets the diagnostics hook for silently ignored
// configuration errors.
func WithTraceHandler(fn TraceFunc) Option {
	return func(c *config) error {
		if fn == nil {
			return errors.New("fanlog: trace handler must not be nil")
		}
		c.trace = fn
		return nil
	}
}
