package logfront

import (
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

// Logger is a named emitter with a minimum level. Every event that passes the
// level filter goes to the Adapter and is then dispatched to the Registry.
type Logger struct {
	name       string
	adapter    Adapter
	minLevel   Level
	baseFields []Field
	clock      xclock.Clock // nil follows xclock.Default() at emit time
	registry   *Registry
}

// Factory: internal constructor.
func newLogger(cfg LoggerConfig) *Logger {
	reg := cfg.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	ad := cfg.Adapter
	if ad == nil {
		ad = Discard
	}
	return &Logger{
		name:     cfg.Name,
		adapter:  ad,
		minLevel: cfg.MinLevel,
		clock:    cfg.Clock,
		registry: reg,
	}
}

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Logger]

// SetGlobal sets the global Logger (Singleton setter).
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the global Logger; panic if unset to surface misconfig early.
func L() *Logger {
	l := global.Load()
	if l == nil {
		panic("logfront: global logger not set. Build one and call logfront.SetGlobal(...)")
	}
	return l
}

func (l *Logger) Name() string        { return l.name }
func (l *Logger) Level() Level        { return l.minLevel }
func (l *Logger) Registry() *Registry { return l.registry }

// Clock returns the clock timestamps are taken from.
func (l *Logger) Clock() xclock.Clock {
	if l.clock == nil {
		return xclock.Default()
	}
	return l.clock
}

// Enabled reports whether logs at 'level' would be emitted by this logger.
// Use to avoid building fields in hot paths when disabled.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.minLevel
}

// Level entry points returning fluent builders.

func (l *Logger) Trace() *Event { return getEvent(l, LevelTrace) }
func (l *Logger) Debug() *Event { return getEvent(l, LevelDebug) }
func (l *Logger) Info() *Event  { return getEvent(l, LevelInfo) }
func (l *Logger) Warn() *Event  { return getEvent(l, LevelWarn) }
func (l *Logger) Error() *Event { return getEvent(l, LevelError) }

// At returns a builder for an arbitrary level.
func (l *Logger) At(level Level) *Event { return getEvent(l, level) }

// With returns a child logger with bound fields.
func (l *Logger) With(fs ...Field) *Logger {
	child := *l
	child.adapter = l.adapter.With(fs)
	child.baseFields = append(copyFields(nil, l.baseFields), fs...)
	return &child
}

// Named returns a copy of the logger emitting under name.
func (l *Logger) Named(name string) *Logger {
	child := *l
	child.name = name
	return &child
}

func (l *Logger) now() time.Time {
	if l.clock == nil {
		return xclock.Now()
	}
	return l.clock.Now()
}

func (l *Logger) emit(level Level, msg string, cause error, evFields []Field) {
	if level < l.minLevel {
		return
	}
	// Single authoritative timestamp for adapter and listeners.
	at := l.now()

	// Fast path: adapter handles bound fields internally; pass only event fields.
	l.adapter.Log(level, l.name, msg, at, evFields)

	// Listeners see combined fields: base + event.
	merged := make([]Field, 0, len(l.baseFields)+len(evFields))
	merged = append(merged, l.baseFields...)
	merged = append(merged, evFields...)

	l.registry.Dispatch(LogEvent{
		at:     at,
		name:   l.name,
		level:  level,
		msg:    msg,
		cause:  cause,
		fields: merged,
	})
}
