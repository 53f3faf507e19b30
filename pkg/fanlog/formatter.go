package fanlog

// Formatter converts an event into sink-specific text. A formatter is
// owned by the sink it is attached to, not by the dispatcher; it runs on
// the sink's lane and must treat the event as read-only.
type Formatter interface {
	FormatEvent(e *Event) string
}

// FormatterAttachNotifiable is implemented by formatters that want to know
// when they are attached to a sink. The notification runs on the sink's
// lane, before the first event is formatted with the new formatter.
type FormatterAttachNotifiable interface {
	DidAttachToSink()
}

// FormatterDetachNotifiable is the detach counterpart; it runs on the
// sink's lane after the formatter's last event.
type FormatterDetachNotifiable interface {
	WillDetachFromSink()
}
