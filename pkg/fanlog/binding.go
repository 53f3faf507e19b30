package fanlog

import (
	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// binding ties one sink to one severity mask and one execution lane. It is
// created, read, and destroyed only on the dispatcher's serializing lane;
// the hot dispatch path reads nothing but the three fields captured here.
//
// Identity for deduplication is the exact (sink, mask) pair; removal
// matches on sink identity alone.
type binding struct {
	sink Sink
	mask Level
	ln   *lane.Lane

	// ownsLane is set when the dispatcher created the lane; such lanes are
	// closed when the binding is destroyed. Sink-provided lanes are left to
	// their sinks.
	ownsLane bool
}

// newBinding resolves the sink's lane (self-provided, else a fresh private
// one) and constructs the registration record.
func newBinding(s Sink, mask Level) *binding {
	b := &binding{sink: s, mask: mask}
	if lp, ok := s.(LaneProvider); ok {
		if ln := lp.SinkLane(); ln != nil {
			b.ln = ln
			return b
		}
	}
	b.ln = lane.New(sinkLabel(s))
	b.ownsLane = true
	return b
}

// destroy notifies the sink of pending removal and, for dispatcher-owned
// lanes, closes the lane after the notification has drained. detach is
// set only when this was the sink's last binding; a sink still registered
// under another mask keeps its dispatch lane, and with it the formatter
// accessor ordering. Runs on the serializing lane.
func (b *binding) destroy(detach bool) {
	if r, ok := b.sink.(RemoveNotifiable); ok {
		b.ln.Async(r.SinkWillRemove)
	}
	if detach {
		if da, ok := b.sink.(dispatchAware); ok {
			da.setDispatchLane(nil)
		}
	}
	if b.ownsLane {
		b.ln.Close()
	}
}
