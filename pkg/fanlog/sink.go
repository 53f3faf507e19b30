package fanlog

import (
	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// Sink consumes log events. Deliver is always invoked on the sink's own
// lane, never concurrently with itself, and must treat the event as
// read-only. Delivery failures are the sink's own concern; the dispatcher
// does not inspect, retry, or suppress them.
//
// Sink dynamic types must be comparable (use pointer receivers); the
// dispatcher deduplicates and removes bindings by sink identity.
type Sink interface {
	Deliver(e *Event)
}

// The optional capabilities below are separate interfaces rather than
// methods on Sink: a sink advertises a capability by implementing it, and
// the dispatcher type-asserts at registration time.

// LaneProvider is implemented by sinks that bring their own execution
// lane. Sinks without one get a private lane created by the dispatcher.
type LaneProvider interface {
	SinkLane() *lane.Lane
}

// Named is implemented by sinks with a display name, used to label
// dispatcher-created lanes.
type Named interface {
	SinkName() string
}

// AddNotifiable is implemented by sinks that want to know when they were
// registered. The notification runs asynchronously on the sink's lane,
// after the binding is in place.
type AddNotifiable interface {
	SinkDidAdd()
}

// LaneNotifiable is the variant that also receives the lane the sink was
// bound to.
type LaneNotifiable interface {
	SinkDidAddToLane(l *lane.Lane)
}

// RemoveNotifiable is implemented by sinks that want to know before their
// binding is removed. The notification runs asynchronously on the sink's
// lane.
type RemoveNotifiable interface {
	SinkWillRemove()
}

// Flusher is implemented by sinks that buffer; FlushSink runs on the
// sink's lane during a Flush barrier and must not return until buffered
// events are written through.
type Flusher interface {
	FlushSink()
}

// SinkInfo is a read-only (sink, mask) snapshot pair returned by the
// dispatcher's introspection queries.
type SinkInfo struct {
	Sink Sink
	Mask Level
}

// sinkLabel derives a lane label for a sink.
func sinkLabel(s Sink) string {
	if n, ok := s.(Named); ok && n.SinkName() != "" {
		return "fanlog." + n.SinkName()
	}
	return "fanlog.sink"
}
