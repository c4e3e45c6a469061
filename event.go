package logfront

import (
	"fmt"
	"sync"
	"time"
)

// Event collects fields for one entry until a terminator (Msg, Msgf,
// MsgFunc, Value or Send) emits it. Events are pooled; do not keep one after
// its terminator returns.
//
//	log.Info().Str("order", id).Dur("took", d).Msg("order shipped")
type Event struct {
	l      *Logger
	level  Level
	cause  error
	fields []Field
}

const maxPooledFields = 128

var eventPool = sync.Pool{
	New: func() any { return &Event{fields: make([]Field, 0, 8)} },
}

func getEvent(l *Logger, level Level) *Event {
	ev := eventPool.Get().(*Event)
	ev.l = l
	ev.level = level
	ev.cause = nil
	ev.fields = ev.fields[:0]
	return ev
}

func (e *Event) putBack() {
	if cap(e.fields) > maxPooledFields {
		e.fields = make([]Field, 0, 8)
	}
	e.l = nil
	e.level = 0
	e.cause = nil
	eventPool.Put(e)
}

// Enabled reports whether the event will be emitted.
func (e *Event) Enabled() bool { return e.l.Enabled(e.level) }

func (e *Event) add(f Field) *Event {
	e.fields = append(e.fields, f)
	return e
}

func (e *Event) Str(k, v string) *Event               { return e.add(Str(k, v)) }
func (e *Event) Int(k string, v int) *Event           { return e.add(Int64(k, int64(v))) }
func (e *Event) Int64(k string, v int64) *Event       { return e.add(Int64(k, v)) }
func (e *Event) Uint64(k string, v uint64) *Event     { return e.add(Uint64(k, v)) }
func (e *Event) Float64(k string, v float64) *Event   { return e.add(Float64(k, v)) }
func (e *Event) Bool(k string, v bool) *Event         { return e.add(Bool(k, v)) }
func (e *Event) Dur(k string, v time.Duration) *Event { return e.add(Dur(k, v)) }
func (e *Event) Time(k string, v time.Time) *Event    { return e.add(Time(k, v)) }
func (e *Event) Bytes(k string, v []byte) *Event      { return e.add(Bytes(k, v)) }
func (e *Event) Any(k string, v any) *Event           { return e.add(Any(k, v)) }

// Err sets the cause seen by listeners as LogEvent.Cause. Adapters get it as
// an "error" field. A nil err is ignored.
func (e *Event) Err(err error) *Event {
	if err == nil {
		return e
	}
	e.cause = err
	return e.add(Err("error", err))
}

// Msg terminates the builder and emits the event.
func (e *Event) Msg(msg string) {
	e.l.emit(e.level, msg, e.cause, e.fields)
	e.putBack()
}

// Msgf formats the message only when the event passes the level filter.
func (e *Event) Msgf(format string, args ...any) {
	if e.Enabled() {
		e.l.emit(e.level, fmt.Sprintf(format, args...), e.cause, e.fields)
	}
	e.putBack()
}

// MsgFunc emits the message produced by f. f runs at most once, and only
// when the event passes the level filter.
func (e *Event) MsgFunc(f func() string) {
	if e.Enabled() {
		e.l.emit(e.level, f(), e.cause, e.fields)
	}
	e.putBack()
}

// Value emits fmt.Sprint(v) as the message.
func (e *Event) Value(v any) {
	if e.Enabled() {
		e.l.emit(e.level, fmt.Sprint(v), e.cause, e.fields)
	}
	e.putBack()
}

// Send emits the event with an empty message.
func (e *Event) Send() { e.Msg("") }
