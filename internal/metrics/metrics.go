// Package metrics collects dispatch counters for the fanlog dispatcher.
// All tracking methods are safe for concurrent use and lock-free.
package metrics

import (
	"sync"
	"sync/atomic"
)

// Collector accumulates dispatch metrics.
type Collector struct {
	// Event counts
	admittedByFlag sync.Map // map[uint]*atomic.Uint64
	admitted       atomic.Uint64
	delivered      atomic.Uint64

	// Backpressure
	producersBlocked atomic.Uint64

	// Barrier operations
	flushes atomic.Uint64

	// Admitted-but-undelivered events
	inFlight     atomic.Int64
	peakInFlight atomic.Int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Snapshot contains a point-in-time view of the collector's counters.
type Snapshot struct {
	EventsAdmitted   uint64
	EventsDelivered  uint64
	AdmittedByFlag   map[uint]uint64
	ProducersBlocked uint64
	Flushes          uint64
	InFlight         int64
	PeakInFlight     int64
}

// TrackAdmitted records one event admitted past the semaphore, keyed by its
// severity flag bit.
func (c *Collector) TrackAdmitted(flag uint) {
	c.admitted.Add(1)
	counter, _ := c.admittedByFlag.LoadOrStore(flag, &atomic.Uint64{})
	counter.(*atomic.Uint64).Add(1)

	depth := c.inFlight.Add(1)
	for {
		peak := c.peakInFlight.Load()
		if depth <= peak || c.peakInFlight.CompareAndSwap(peak, depth) {
			break
		}
	}
}

// TrackDelivered records one delivery of an event to a qualifying sink.
func (c *Collector) TrackDelivered() {
	c.delivered.Add(1)
}

// TrackCompleted records that an admitted event finished on all sinks.
func (c *Collector) TrackCompleted() {
	c.inFlight.Add(-1)
}

// TrackBlocked records a producer that had to wait for admission.
func (c *Collector) TrackBlocked() {
	c.producersBlocked.Add(1)
}

// TrackFlush records one flush barrier.
func (c *Collector) TrackFlush() {
	c.flushes.Add(1)
}

// GetSnapshot returns the current counter values.
func (c *Collector) GetSnapshot() Snapshot {
	s := Snapshot{
		EventsAdmitted:   c.admitted.Load(),
		EventsDelivered:  c.delivered.Load(),
		AdmittedByFlag:   make(map[uint]uint64),
		ProducersBlocked: c.producersBlocked.Load(),
		Flushes:          c.flushes.Load(),
		InFlight:         c.inFlight.Load(),
		PeakInFlight:     c.peakInFlight.Load(),
	}
	c.admittedByFlag.Range(func(k, v interface{}) bool {
		s.AdmittedByFlag[k.(uint)] = v.(*atomic.Uint64).Load()
		return true
	})
	return s
}

// Reset zeroes all counters.
func (c *Collector) Reset() {
	c.admitted.Store(0)
	c.delivered.Store(0)
	c.producersBlocked.Store(0)
	c.flushes.Store(0)
	c.inFlight.Store(0)
	c.peakInFlight.Store(0)
	c.admittedByFlag.Range(func(k, _ interface{}) bool {
		c.admittedByFlag.Delete(k)
		return true
	})
}
