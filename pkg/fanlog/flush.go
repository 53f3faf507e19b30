package fanlog

import (
	"context"

	"github.com/pkg/errors"
)

// Flush schedules a barrier on the serializing lane and blocks until it
// completes. When Flush returns, every event admitted strictly before the
// call has been delivered to all sinks registered at its admission, and
// every flush-capable sink has flushed. Events admitted after Flush begins
// are not waited for.
func (d *Dispatcher) Flush() {
	d.ln.Sync(func() {
		d.collector.TrackFlush()
		for _, b := range d.bindings {
			f, ok := b.sink.(Flusher)
			if !ok {
				continue
			}
			d.fanout.Add(1)
			accepted := b.ln.Async(func() {
				defer d.fanout.Done()
				f.FlushSink()
			})
			if !accepted {
				d.fanout.Done()
				d.trace("flush", sinkLabel(b.sink), "sink lane closed, flush skipped")
			}
		}
		d.fanout.Wait()
	})
}

// Shutdown stops admission, flushes, removes every sink, and releases the
// serializing lane. A later call finds the dispatcher already closed and
// returns ErrDispatcherClosed without repeating the teardown. The context
// bounds only how long the caller waits; the teardown itself runs to
// completion so no admitted event is lost.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if !d.closed.CompareAndSwap(false, true) {
		return ErrDispatcherClosed
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Flush()
		d.ln.Sync(func() { d.removeAllSinks() })
		d.ln.Close()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "fanlog: shutdown still draining")
	}
}

// Close is Shutdown without a deadline.
func (d *Dispatcher) Close() error {
	return d.Shutdown(context.Background())
}
