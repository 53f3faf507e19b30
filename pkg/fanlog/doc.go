// Package fanlog is an in-process, multi-destination log event dispatcher.
//
// Producers anywhere in a program construct immutable Events and submit
// them through a Dispatcher; zero or more registered sinks consume them,
// each filtered by its own severity mask, each running on its own
// execution lane. The dispatcher serializes admission on a single lane,
// fans events out to qualifying sinks concurrently (or serially on
// single-core targets), and bounds memory growth with a FIFO admission
// semaphore: when producers outpace sinks, the oldest blocked producer is
// the first one admitted.
//
// Guarantees:
//
//   - Global FIFO ordering of admitted events across all producers.
//   - Per-sink FIFO delivery, identical under parallel and serial fan-out.
//   - Exactly-once delivery per event per qualifying sink.
//   - Flush returns only after all previously admitted events are
//     delivered and flush-capable sinks have flushed.
//   - No event is dropped while the dispatcher is open; backpressure
//     blocks instead.
//
// Basic usage:
//
//	d, err := fanlog.New()
//	if err != nil {
//		// handle
//	}
//	d.AddSink(mySink)
//	d.Log(fanlog.NewEvent(fanlog.FlagInfo, fanlog.LevelInfo, "server started"))
//	d.Flush()
//	d.Close()
//
// A process-wide instance is available via Default. Sinks implement the
// one-method Sink interface plus any of the optional capability
// interfaces (LaneProvider, Named, AddNotifiable, RemoveNotifiable,
// Flusher); embedding SinkBase provides the private lane and the
// formatter protocol.
package fanlog
