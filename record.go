package logfront

import (
	"strconv"
	"strings"
	"time"
)

// eventTimeLayout is the timestamp layout used by LogEvent.String.
const eventTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// LogEvent is an immutable snapshot of one emitted log call.
//
// The message is rendered once, at emission; lazy payloads are never
// re-evaluated afterwards. The cause is held by reference and is not
// inspected beyond Error().
type LogEvent struct {
	at     time.Time
	name   string
	level  Level
	msg    string
	cause  error
	fields []Field
}

// NewLogEvent builds a LogEvent. The fields slice is copied.
func NewLogEvent(at time.Time, name string, level Level, msg string, cause error, fields ...Field) LogEvent {
	return LogEvent{
		at:     at,
		name:   name,
		level:  level,
		msg:    msg,
		cause:  cause,
		fields: copyFields(nil, fields),
	}
}

func (e LogEvent) Time() time.Time { return e.at }
func (e LogEvent) Name() string    { return e.name }
func (e LogEvent) Level() Level    { return e.level }
func (e LogEvent) Message() string { return e.msg }
func (e LogEvent) Cause() error    { return e.cause }

// Fields returns a copy of the structured fields bound to the event.
func (e LogEvent) Fields() []Field {
	if len(e.fields) == 0 {
		return nil
	}
	return copyFields(make([]Field, 0, len(e.fields)), e.fields)
}

// String renders "<ts> <name> <LEVEL> <message>" with the timestamp in UTC,
// followed by cause="..." when a cause is attached.
func (e LogEvent) String() string {
	var sb strings.Builder
	sb.Grow(len(e.name) + len(e.msg) + 40)
	sb.WriteString(e.at.UTC().Format(eventTimeLayout))
	sb.WriteByte(' ')
	sb.WriteString(e.name)
	sb.WriteByte(' ')
	sb.WriteString(e.level.String())
	sb.WriteByte(' ')
	sb.WriteString(e.msg)
	if e.cause != nil {
		sb.WriteString(" cause=")
		sb.WriteString(strconv.Quote(e.cause.Error()))
	}
	return sb.String()
}
