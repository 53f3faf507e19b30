package fanlog

import (
	"sync/atomic"

	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// dispatchAware is how the dispatcher hands a sink the serializing lane at
// registration time, and takes it back at removal. SinkBase implements it;
// the method is unexported so only this package can call it.
type dispatchAware interface {
	setDispatchLane(l *lane.Lane)
}

// SinkBase carries the shared lifecycle every sink implementation needs:
// a private execution lane named after the sink, lane-identity assertions,
// and the race-free formatter protocol. Concrete sinks embed it:
//
//	type consoleSink struct {
//		*fanlog.SinkBase
//	}
//
//	func newConsoleSink() *consoleSink {
//		return &consoleSink{SinkBase: fanlog.NewSinkBase("console")}
//	}
//
// and override Deliver. The embedded base provides the sink's lane to the
// dispatcher, so all of the sink's deliveries, notifications, and
// formatter changes serialize on the one lane.
type SinkBase struct {
	name string
	ln   *lane.Lane

	// dispatchLane is set while the sink is registered. Read atomically by
	// the formatter accessors, which hop through it before the sink lane.
	dispatchLane atomic.Pointer[lane.Lane]

	// formatter is read and written only on the sink's lane. Deliver
	// implementations read it via FormatEvent with no lock; the accessor
	// protocol below is what keeps that safe.
	formatter Formatter
}

// NewSinkBase creates the base with a private lane labelled after name.
func NewSinkBase(name string) *SinkBase {
	label := "fanlog.sink"
	if name != "" {
		label = "fanlog." + name
	}
	return &SinkBase{
		name: name,
		ln:   lane.New(label),
	}
}

// SinkName returns the sink's display name.
func (b *SinkBase) SinkName() string {
	return b.name
}

// SinkLane returns the sink's private lane.
func (b *SinkBase) SinkLane() *lane.Lane {
	return b.ln
}

// OnLane reports whether the current goroutine is the sink's lane worker.
// Sinks use this for deadlock-avoidance assertions in their own code.
func (b *SinkBase) OnLane() bool {
	return b.ln.OnLane()
}

// Deliver is a no-op; concrete sinks shadow it.
func (b *SinkBase) Deliver(e *Event) {}

// setDispatchLane implements dispatchAware.
func (b *SinkBase) setDispatchLane(l *lane.Lane) {
	b.dispatchLane.Store(l)
}

// Formatter returns the sink's current formatter. The call is synchronous:
// it hops through the dispatcher's serializing lane and then the sink's
// lane, so the value reflects every SetFormatter issued before it in the
// calling goroutine's program order.
//
// Calling this from the serializing lane or the sink's own lane would
// deadlock and panics instead. The hot Deliver path must not use it; see
// FormatEvent.
func (b *SinkBase) Formatter() Formatter {
	b.assertOffLanes()

	var f Formatter
	read := func() {
		b.ln.Sync(func() { f = b.formatter })
	}
	if dl := b.dispatchLane.Load(); dl != nil {
		dl.Sync(read)
	} else {
		read()
	}
	return f
}

// SetFormatter replaces the sink's formatter. The call is asynchronous,
// but it routes through the same two lanes deliveries take, so "set
// formatter, log X" from one goroutine always formats X with the new
// formatter. Attach/detach notifications run on the sink's lane around
// the swap.
//
// Calling this from the serializing lane or the sink's own lane panics.
func (b *SinkBase) SetFormatter(f Formatter) {
	b.assertOffLanes()

	write := func() {
		b.ln.Async(func() {
			if b.formatter == f {
				return
			}
			if d, ok := b.formatter.(FormatterDetachNotifiable); ok {
				d.WillDetachFromSink()
			}
			b.formatter = f
			if a, ok := f.(FormatterAttachNotifiable); ok {
				a.DidAttachToSink()
			}
		})
	}
	if dl := b.dispatchLane.Load(); dl != nil {
		dl.Async(write)
	} else {
		write()
	}
}

// FormatEvent renders an event with the current formatter, or returns the
// raw message when none is attached. Lane-local: call it only from the
// sink's lane (normally inside Deliver); that is what lets it read the
// formatter without a lock.
func (b *SinkBase) FormatEvent(e *Event) string {
	if b.formatter == nil {
		return e.Message
	}
	return b.formatter.FormatEvent(e)
}

// assertOffLanes enforces the formatter accessor contract.
func (b *SinkBase) assertOffLanes() {
	if b.ln.OnLane() {
		panic("fanlog: formatter accessors must not run on the sink's own lane")
	}
	if dl := b.dispatchLane.Load(); dl != nil && dl.OnLane() {
		panic("fanlog: formatter accessors must not run on the dispatch lane")
	}
}

// Close releases the sink's private lane after draining it. Call only
// after the sink has been removed from every dispatcher.
func (b *SinkBase) Close() {
	b.ln.Close()
}
