package logtest

import (
	"iter"
	"sync"
	"testing"

	"github.com/trickstertwo/logfront"
)

// LogList is a logfront.Listener that keeps every received event in order.
//
// It is registered on creation and deregistered by Close. Events captured
// before Close stay readable afterwards.
type LogList struct {
	registry *logfront.Registry

	mu     sync.Mutex
	events []logfront.LogEvent

	closeOnce sync.Once
}

// Option configures a LogList.
type Option func(*LogList)

// WithRegistry captures from r instead of logfront.DefaultRegistry().
func WithRegistry(r *logfront.Registry) Option {
	return func(l *LogList) { l.registry = r }
}

// New creates a LogList and registers it. Callers must Close it.
func New(opts ...Option) *LogList {
	l := &LogList{}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = logfront.DefaultRegistry()
	}
	l.registry.Register(l)
	return l
}

// Capture creates a LogList that is closed when t and its subtests finish.
func Capture(t testing.TB, opts ...Option) *LogList {
	t.Helper()
	l := New(opts...)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

// Receive appends e. It is called by the registry.
func (l *LogList) Receive(e logfront.LogEvent) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

// Close deregisters the list. It is safe to call more than once.
func (l *LogList) Close() error {
	l.closeOnce.Do(func() {
		l.registry.Deregister(l)
	})
	return nil
}

// Len reports the number of captured events.
func (l *LogList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Events returns a copy of the events captured so far.
func (l *LogList) Events() Events {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(Events, len(l.events))
	copy(out, l.events)
	return out
}

// All iterates over the events captured when iteration starts, in capture
// order. Events received later are seen only by a new iteration.
func (l *LogList) All() iter.Seq[logfront.LogEvent] {
	return func(yield func(logfront.LogEvent) bool) {
		l.mu.Lock()
		snapshot := l.events[:len(l.events):len(l.events)]
		l.mu.Unlock()
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Subset returns the captured events whose logger name is exactly name.
func (l *LogList) Subset(name string) Events {
	return l.Events().Subset(name)
}
