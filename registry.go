package logfront

import (
	"fmt"
	"os"
	"reflect"
	"slices"
	"sync"

	"github.com/pkg/errors"
)

// Listener receives every LogEvent dispatched while it is registered.
//
// Receive runs synchronously on the emitting goroutine while the registry
// lock is held. It must not log through a Logger that dispatches to the same
// Registry.
type Listener interface {
	Receive(e LogEvent)
}

type funcListener struct {
	f func(LogEvent)
}

func (l *funcListener) Receive(e LogEvent) { l.f(e) }

// ListenerFunc wraps f in a Listener. Each call returns a distinct listener,
// so the result can be registered and deregistered by identity.
func ListenerFunc(f func(LogEvent)) Listener {
	return &funcListener{f: f}
}

// ErrorHandler receives errors raised while delivering or writing entries.
type ErrorHandler func(error)

// defaultErrorHandler writes errors to stderr
func defaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "logfront error: %v\n", err)
}

// Registry is the set of listeners a Logger fans events out to.
//
// Membership is a set keyed by listener identity; delivery order is
// registration order. Register, Deregister and Dispatch share one mutex, so
// once Deregister returns no later Dispatch reaches the listener.
type Registry struct {
	mu        sync.Mutex
	listeners []Listener
	onError   ErrorHandler
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithErrorHandler sets the handler that receives recovered listener panics.
// A nil handler restores the default, which writes to stderr.
func WithErrorHandler(h ErrorHandler) RegistryOption {
	return func(r *Registry) {
		if h == nil {
			h = defaultErrorHandler
		}
		r.onError = h
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{onError: defaultErrorHandler}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide Registry used by loggers and
// capture lists that were not given one explicitly.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds l. Registering an instance that is already present is a
// no-op.
func (r *Registry) Register(l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(l) >= 0 {
		return
	}
	r.listeners = append(r.listeners, l)
}

// Deregister removes l. Removing an absent listener is a no-op.
func (r *Registry) Deregister(l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(l)
	if i < 0 {
		return
	}
	r.listeners = slices.Delete(r.listeners, i, i+1)
}

// Len reports the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Dispatch delivers e to every registered listener exactly once, in
// registration order, before returning. A panicking listener is recovered,
// reported to the ErrorHandler, and does not prevent delivery to the rest.
func (r *Registry) Dispatch(e LogEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.listeners {
		r.deliver(l, e)
	}
}

func (r *Registry) deliver(l Listener, e LogEvent) {
	defer func() {
		if v := recover(); v != nil {
			r.onError(errors.Wrapf(ErrListenerPanic, "%T: %v", l, v))
		}
	}()
	l.Receive(e)
}

// indexOf compares by identity. Listeners whose dynamic type is not
// comparable (func or slice-backed values) never match, so each registration
// of such a value is distinct; register pointers to get set semantics. The
// same holds for struct values whose interface fields hold a slice or map:
// their type reports comparable but == panics at run time.
func (r *Registry) indexOf(l Listener) int {
	if !reflect.TypeOf(l).Comparable() {
		return -1
	}
	for i, cur := range r.listeners {
		if reflect.TypeOf(cur) == reflect.TypeOf(l) && sameListener(cur, l) {
			return i
		}
	}
	return -1
}

func sameListener(a, b Listener) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
