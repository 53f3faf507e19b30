// Package lane provides the serial execution lanes that fanlog schedules
// work onto. A Lane is a logical single-worker context: tasks submitted to
// it run strictly in submission order, one at a time, on a goroutine owned
// by the lane. Distinct lanes run concurrently with each other.
//
// Lanes carry a label and a worker identity so callers can ask "is the
// current goroutine running on this lane" — fanlog uses this for its
// deadlock-avoidance assertions.
package lane

import (
	"sync"

	"github.com/petermattis/goid"
)

// Task is a unit of work scheduled onto a lane.
type Task func()

// current maps a worker goroutine id to the lane it serves. Populated by
// each lane's worker for the worker's lifetime; read by OnLane and
// CurrentLabel from arbitrary goroutines.
var current sync.Map // map[int64]*Lane

// Lane is a single-worker task queue. Tasks run in submission order on the
// lane's own goroutine. The zero value is not usable; create lanes with New.
type Lane struct {
	label string

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool

	workerDone chan struct{}
}

// New creates a lane and starts its worker goroutine. The label identifies
// the lane in captured event context; an empty label defaults to
// "fanlog.lane".
func New(label string) *Lane {
	if label == "" {
		label = "fanlog.lane"
	}
	l := &Lane{
		label:      label,
		workerDone: make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Label returns the lane's label.
func (l *Lane) Label() string {
	return l.label
}

// run is the lane's worker loop. It drains the queue in FIFO order and
// exits only once the lane is closed and the queue is empty, so every task
// enqueued before Close runs.
func (l *Lane) run() {
	id := goid.Get()
	current.Store(id, l)
	defer current.Delete(id)
	defer close(l.workerDone)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
	}
}

// Async schedules a task and returns immediately. It reports whether the
// task was accepted; tasks submitted after Close are discarded and the
// caller, not the lane, decides whether a discard matters.
func (l *Lane) Async(task Task) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.cond.Signal()
	l.mu.Unlock()
	return true
}

// Sync schedules a task and blocks the caller until the worker has run it.
// Calling Sync from the lane's own worker would self-deadlock and panics
// instead.
//
// After Close, the task runs inline on the caller; by then the worker is
// gone and the lane's serialization guarantee no longer applies.
func (l *Lane) Sync(task Task) {
	if l.OnLane() {
		panic("lane: Sync onto the current lane would deadlock")
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		task()
		return
	}
	done := make(chan struct{})
	l.queue = append(l.queue, func() {
		defer close(done)
		task()
	})
	l.cond.Signal()
	l.mu.Unlock()

	<-done
}

// Closed reports whether the lane has stopped accepting tasks.
func (l *Lane) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// OnLane reports whether the current goroutine is the lane's worker.
func (l *Lane) OnLane() bool {
	v, ok := current.Load(goid.Get())
	return ok && v.(*Lane) == l
}

// CurrentLabel returns the label of the lane the current goroutine is
// running on, or "" when the goroutine is not a lane worker.
func CurrentLabel() string {
	if v, ok := current.Load(goid.Get()); ok {
		return v.(*Lane).label
	}
	return ""
}

// Close stops accepting new tasks and blocks until every previously
// submitted task has run and the worker has exited. Closing an already
// closed lane is a no-op. Close from the lane's own worker panics.
func (l *Lane) Close() {
	if l.OnLane() {
		panic("lane: Close from the lane's own worker would deadlock")
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.workerDone
		return
	}
	l.closed = true
	l.cond.Broadcast()
	l.mu.Unlock()

	<-l.workerDone
}
