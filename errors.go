package logfront

import "github.com/pkg/errors"

var (
	// ErrNoAdapter is returned by Builder.Build when no Adapter was set.
	ErrNoAdapter = errors.New("logfront: no adapter configured")
	// ErrUnknownLevel indicates an unrecognized level name.
	ErrUnknownLevel = errors.New("logfront: unknown level")
	// ErrUnknownAdapter indicates no AdapterFactory is registered under a name.
	ErrUnknownAdapter = errors.New("logfront: unknown adapter")
	// ErrListenerPanic wraps a value recovered from a panicking Listener.
	ErrListenerPanic = errors.New("logfront: listener panicked")
)
