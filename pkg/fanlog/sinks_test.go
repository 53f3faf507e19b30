package fanlog

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wayneeseguin/fanlog/pkg/lane"
)

// recordSink records every delivered event. The minimal sink: no optional
// capabilities.
type recordSink struct {
	name string

	mu     sync.Mutex
	events []*Event
}

func newRecordSink(name string) *recordSink {
	return &recordSink{name: name}
}

func (s *recordSink) Deliver(e *Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *recordSink) received() []*Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *recordSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// gatedSink blocks every Deliver until a token arrives on gate.
type gatedSink struct {
	recordSink
	gate chan struct{}
}

func newGatedSink(name string) *gatedSink {
	return &gatedSink{
		recordSink: recordSink{name: name},
		gate:       make(chan struct{}),
	}
}

func (s *gatedSink) Deliver(e *Event) {
	<-s.gate
	s.recordSink.Deliver(e)
}

// notifySink counts lifecycle notifications and supports flush.
type notifySink struct {
	recordSink
	adds     atomic.Int64
	removes  atomic.Int64
	flushes  atomic.Int64
	laneSeen atomic.Pointer[lane.Lane]
}

func newNotifySink(name string) *notifySink {
	return &notifySink{recordSink: recordSink{name: name}}
}

func (s *notifySink) SinkName() string { return s.name }

func (s *notifySink) SinkDidAdd() { s.adds.Add(1) }

func (s *notifySink) SinkDidAddToLane(l *lane.Lane) { s.laneSeen.Store(l) }

func (s *notifySink) SinkWillRemove() { s.removes.Add(1) }

func (s *notifySink) FlushSink() { s.flushes.Add(1) }

// newTestDispatcher builds an isolated dispatcher and tears it down with
// the test.
func newTestDispatcher(t *testing.T, opts ...Option) *Dispatcher {
	t.Helper()
	d, err := New(opts...)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// waitUntil polls cond until it holds or the deadline passes.
func waitUntil(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

// infoEvent is shorthand for a plain informational event.
func infoEvent(msg string) *Event {
	return NewEvent(FlagInfo, LevelInfo, msg)
}

// errorEvent is shorthand for a plain error event.
func errorEvent(msg string) *Event {
	return NewEvent(FlagError, LevelError, msg)
}
