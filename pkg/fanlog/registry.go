package fanlog

// Registry operations. All public mutation entry points are safe to call
// from any goroutine; each marshals onto the serializing lane, so registry
// changes are strictly ordered relative to in-flight events: an event
// admitted before a removal is still offered to the removed sink, an event
// admitted after is not.

// AddSink registers a sink for all severities.
func (d *Dispatcher) AddSink(s Sink) {
	d.AddSinkWithMask(s, LevelAll)
}

// AddSinkWithMask registers a sink with a severity mask. Registering the
// exact same (sink, mask) pair twice is a no-op; the same sink under a
// different mask forms a second independent binding.
func (d *Dispatcher) AddSinkWithMask(s Sink, mask Level) {
	if s == nil {
		return
	}
	d.ln.Async(func() { d.addSink(s, mask) })
}

// RemoveSink removes the first binding matching the sink's identity. The
// mask is deliberately not part of the removal key: a sink registered
// under two masks loses one binding per call, oldest first. Removing an
// unknown sink is a silent no-op.
func (d *Dispatcher) RemoveSink(s Sink) {
	if s == nil {
		return
	}
	d.ln.Async(func() { d.removeSink(s) })
}

// RemoveAllSinks removes every binding, notifying each sink on its own
// lane first.
func (d *Dispatcher) RemoveAllSinks() {
	d.ln.Async(func() { d.removeAllSinks() })
}

// Sinks returns a consistent snapshot of the registered sinks, in
// registration order. The call round-trips through the serializing lane,
// so the snapshot reflects a fully settled registry.
func (d *Dispatcher) Sinks() []Sink {
	var out []Sink
	d.ln.Sync(func() {
		out = make([]Sink, 0, len(d.bindings))
		for _, b := range d.bindings {
			out = append(out, b.sink)
		}
	})
	return out
}

// SinkInfos returns a consistent snapshot of (sink, mask) pairs, in
// registration order.
func (d *Dispatcher) SinkInfos() []SinkInfo {
	var out []SinkInfo
	d.ln.Sync(func() {
		out = make([]SinkInfo, 0, len(d.bindings))
		for _, b := range d.bindings {
			out = append(out, SinkInfo{Sink: b.sink, Mask: b.mask})
		}
	})
	return out
}

// addSink appends a binding for (s, mask). Serializing lane only.
func (d *Dispatcher) addSink(s Sink, mask Level) {
	d.assertOnDispatchLane()

	for _, b := range d.bindings {
		if b.sink == s && b.mask == mask {
			d.trace("add", sinkLabel(s), "duplicate (sink, mask) binding ignored")
			return
		}
	}

	b := newBinding(s, mask)
	d.bindings = append(d.bindings, b)

	if da, ok := s.(dispatchAware); ok {
		da.setDispatchLane(d.ln)
	}
	if ln, ok := s.(LaneNotifiable); ok {
		b.ln.Async(func() { ln.SinkDidAddToLane(b.ln) })
	}
	if an, ok := s.(AddNotifiable); ok {
		b.ln.Async(an.SinkDidAdd)
	}
}

// removeSink removes the first binding with the sink's identity.
// Serializing lane only.
func (d *Dispatcher) removeSink(s Sink) {
	d.assertOnDispatchLane()

	for i, b := range d.bindings {
		if b.sink == s {
			d.bindings = append(d.bindings[:i], d.bindings[i+1:]...)
			b.destroy(!d.hasBinding(s))
			return
		}
	}
	d.trace("remove", sinkLabel(s), "sink was never added, ignoring")
}

// removeAllSinks clears the registry. Serializing lane only.
func (d *Dispatcher) removeAllSinks() {
	d.assertOnDispatchLane()

	bs := d.bindings
	d.bindings = nil
	for _, b := range bs {
		b.destroy(true)
	}
}

// hasBinding reports whether the sink still holds a binding. Serializing
// lane only.
func (d *Dispatcher) hasBinding(s Sink) bool {
	for _, b := range d.bindings {
		if b.sink == s {
			return true
		}
	}
	return false
}

// assertOnDispatchLane guards the registry mutators: running them off the
// serializing lane is a broken concurrency invariant, not a recoverable
// condition.
func (d *Dispatcher) assertOnDispatchLane() {
	if !d.ln.OnLane() {
		panic("fanlog: registry mutation off the dispatch lane")
	}
}
