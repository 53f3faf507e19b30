package fanlog

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/wayneeseguin/fanlog/internal/metrics"
	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// Dispatcher is the single ingestion path for log events. Producers on any
// goroutine submit events; the dispatcher serializes admission on one
// lane, fans each event out to every qualifying sink binding, and bounds
// the number of admitted-but-undelivered events with a FIFO semaphore.
//
// There is no lock around dispatcher state: the binding list is touched
// only by tasks running on the serializing lane, and the admission
// semaphore is the sole shared primitive on the producer side.
type Dispatcher struct {
	// bindings is the ordered sink registry. Registration order is
	// dispatch order. Serializing-lane access only.
	bindings []*binding

	// ln is the serializing ingestion lane. Every event, registry
	// mutation, and flush barrier is a task on this lane, which is what
	// yields global FIFO ordering across producers.
	ln *lane.Lane

	// sem bounds admitted-but-undelivered events. Units are acquired
	// before scheduling and released only after an event has completed on
	// all qualifying sinks; Weighted wakes blocked acquirers in FIFO
	// order, which is the backpressure fairness contract.
	sem      *semaphore.Weighted
	capacity int64

	// parallelism is the detected degree of parallelism (floor 1),
	// cached at construction. Above 1 the fan-out is concurrent.
	parallelism int

	// fanout is the completion barrier for one event's deliveries (and
	// for flush calls). Used only from the serializing lane, so reuse
	// across events is safe.
	fanout sync.WaitGroup

	collector *metrics.Collector
	trace     TraceFunc

	closed atomic.Bool
}

// New creates a dispatcher with the provided options.
//
// Capacity defaults to the FANLOG_QUEUE_SIZE environment variable or 1000;
// parallelism defaults to the runtime's usable CPU count.
func New(opts ...Option) (*Dispatcher, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	d := &Dispatcher{
		ln:          lane.New("fanlog.dispatch"),
		sem:         semaphore.NewWeighted(int64(cfg.capacity)),
		capacity:    int64(cfg.capacity),
		parallelism: cfg.parallelism,
		collector:   metrics.NewCollector(),
		trace:       cfg.trace,
	}
	return d, nil
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide dispatcher, constructing it on first
// use. Code that needs an isolated instance (tests, embedded use) should
// call New instead.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher, _ = New()
	})
	return defaultDispatcher
}

// Capacity returns the maximum number of admitted-but-undelivered events.
func (d *Dispatcher) Capacity() int {
	return int(d.capacity)
}

// IsClosed reports whether Shutdown has begun.
func (d *Dispatcher) IsClosed() bool {
	return d.closed.Load()
}

// Log submits an event asynchronously: the call returns once the event is
// admitted and scheduled. When the dispatcher is at capacity the call
// blocks until the oldest in-flight event has completed on every
// qualifying sink; events are never dropped while the dispatcher is open.
func (d *Dispatcher) Log(e *Event) {
	d.submit(e, false)
}

// LogSync submits an event and blocks until it has been delivered to every
// qualifying sink.
func (d *Dispatcher) LogSync(e *Event) {
	d.submit(e, true)
}

// submit is the admission path: one semaphore unit, then a processing task
// on the serializing lane. No I/O happens on the caller's goroutine.
func (d *Dispatcher) submit(e *Event, wait bool) {
	if e == nil {
		return
	}
	if d.closed.Load() {
		d.trace("submit", "", "event after shutdown discarded")
		return
	}

	if !d.sem.TryAcquire(1) {
		d.collector.TrackBlocked()
		// Background context: admission waits are unbounded by design.
		// Bounding them would drop events.
		if err := d.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
	}
	if d.closed.Load() {
		// Shutdown began while this producer was blocked.
		d.sem.Release(1)
		d.trace("submit", "", "event after shutdown discarded")
		return
	}

	d.collector.TrackAdmitted(uint(e.Flag))
	task := func() { d.dispatch(e) }
	if wait {
		d.ln.Sync(task)
		return
	}
	if !d.ln.Async(task) {
		// Lost the race with lane teardown; give the unit back.
		d.collector.TrackCompleted()
		d.sem.Release(1)
		d.trace("submit", "", "event after shutdown discarded")
	}
}

// dispatch fans one admitted event out to every binding whose mask
// intersects the event's flag. Runs on the serializing lane; the semaphore
// unit is released only after the event has completed on all sinks, which
// both unblocks the oldest waiting producer and caps how far any single
// slow sink can fall behind.
func (d *Dispatcher) dispatch(e *Event) {
	defer func() {
		d.collector.TrackCompleted()
		d.sem.Release(1)
	}()

	if d.parallelism > 1 {
		for _, b := range d.bindings {
			if !b.mask.Contains(e.Flag) {
				continue
			}
			b := b
			d.fanout.Add(1)
			accepted := b.ln.Async(func() {
				defer d.fanout.Done()
				b.sink.Deliver(e)
				d.collector.TrackDelivered()
			})
			if !accepted {
				// A sink closed its own lane while still registered.
				// Balance the barrier or Wait never returns.
				d.fanout.Done()
				d.trace("dispatch", sinkLabel(b.sink), "sink lane closed, delivery dropped")
			}
		}
		d.fanout.Wait()
		return
	}

	// Single-core path: same observable per-sink order, no goroutine
	// ping-pong.
	for _, b := range d.bindings {
		if !b.mask.Contains(e.Flag) {
			continue
		}
		if b.ln.Closed() {
			d.trace("dispatch", sinkLabel(b.sink), "sink lane closed, delivery dropped")
			continue
		}
		b.ln.Sync(func() {
			b.sink.Deliver(e)
		})
		d.collector.TrackDelivered()
	}
}

// Metrics returns a snapshot of the dispatcher's counters.
func (d *Dispatcher) Metrics() Metrics {
	s := d.collector.GetSnapshot()
	m := Metrics{
		EventsAdmitted:   s.EventsAdmitted,
		EventsDelivered:  s.EventsDelivered,
		AdmittedByFlag:   make(map[Flag]uint64, len(s.AdmittedByFlag)),
		ProducersBlocked: s.ProducersBlocked,
		Flushes:          s.Flushes,
		InFlight:         s.InFlight,
		PeakInFlight:     s.PeakInFlight,
		Capacity:         int(d.capacity),
	}
	for flag, n := range s.AdmittedByFlag {
		m.AdmittedByFlag[Flag(flag)] = n
	}
	return m
}

// Metrics is a point-in-time view of dispatcher activity.
type Metrics struct {
	EventsAdmitted   uint64
	EventsDelivered  uint64
	AdmittedByFlag   map[Flag]uint64
	ProducersBlocked uint64
	Flushes          uint64
	InFlight         int64
	PeakInFlight     int64
	Capacity         int
}
