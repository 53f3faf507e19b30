package fanlog

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/wayneeseguin/fanlog/internal/execinfo"
)

// CopyOption is a bit-set controlling which event strings are defensively
// copied at construction. Callers that build messages from reused byte
// buffers (via unsafe string conversions) keep the default; callers that
// pass compile-time literals for file and function can skip those copies,
// which is why they are off by default.
type CopyOption uint8

const (
	// CopyMessage copies the message string at construction (default).
	CopyMessage CopyOption = 1 << iota
	// CopyFile copies the source file path string.
	CopyFile
	// CopyFunction copies the function name string.
	CopyFunction
)

// Event is an immutable snapshot of one log call and its execution
// context. Once constructed and admitted, its content never changes; sinks
// may run concurrently over the same instance and must treat it as
// read-only. Exported fields exist for sink and formatter access only.
type Event struct {
	// Message is the log text.
	Message string

	// Level is the severity mask of the call site; Flag is the single
	// severity bit of this event. Qualification against a sink binding is
	// mask.Contains(Flag).
	Level Level
	Flag  Flag

	// Context is an opaque numeric tag for caller-defined grouping.
	Context int64

	// Source location. FileName is File stripped of directory and
	// extension.
	File     string
	FileName string
	Function string
	Line     int

	// Tag is an opaque caller-supplied value.
	Tag any

	// Copy records which strings were defensively copied.
	Copy CopyOption

	// Timestamp defaults to construction time when not supplied.
	Timestamp time.Time

	// Execution context captured at construction.
	GoroutineID int64
	LaneLabel   string
}

// EventOption configures an Event during construction.
type EventOption func(*Event)

// WithContextTag sets the opaque grouping tag.
func WithContextTag(ctx int64) EventOption {
	return func(e *Event) { e.Context = ctx }
}

// WithCallSite records the producing source location.
func WithCallSite(file, function string, line int) EventOption {
	return func(e *Event) {
		e.File = file
		e.Function = function
		e.Line = line
	}
}

// WithTag attaches an opaque caller-supplied value.
func WithTag(tag any) EventOption {
	return func(e *Event) { e.Tag = tag }
}

// WithTimestamp overrides the default construction-time timestamp.
func WithTimestamp(ts time.Time) EventOption {
	return func(e *Event) { e.Timestamp = ts }
}

// WithCopyOptions replaces the default copy behavior (CopyMessage).
func WithCopyOptions(c CopyOption) EventOption {
	return func(e *Event) { e.Copy = c }
}

// NewEvent constructs an immutable event for one log call. The goroutine
// id and lane label of the caller are captured here, once.
func NewEvent(flag Flag, level Level, message string, opts ...EventOption) *Event {
	e := &Event{
		Message: message,
		Level:   level,
		Flag:    flag,
		Copy:    CopyMessage,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.Copy&CopyMessage != 0 {
		e.Message = strings.Clone(e.Message)
	}
	if e.Copy&CopyFile != 0 {
		e.File = strings.Clone(e.File)
	}
	if e.Copy&CopyFunction != 0 {
		e.Function = strings.Clone(e.Function)
	}

	e.FileName = trimFileName(e.File)
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	ec := execinfo.Capture()
	e.GoroutineID = ec.GoroutineID
	e.LaneLabel = ec.LaneLabel

	return e
}

// Clone returns an independent copy sharing the original's field values.
func (e *Event) Clone() *Event {
	c := *e
	return &c
}

// trimFileName strips the directory and extension from a source path.
func trimFileName(file string) string {
	if file == "" {
		return ""
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
