package logfront

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Adapter is the output backend Strategy (e.g., slog wrapper).
// Log receives the single authoritative timestamp 'at' from the Logger so the
// adapter and listeners see the same instant.
type Adapter interface {
	Log(level Level, name, msg string, at time.Time, fields []Field)
	With(fields []Field) Adapter // return a child adapter with bound fields (do not mutate receiver)
}

// AdapterFactory builds an Adapter writing to w and filtering below min.
type AdapterFactory func(w io.Writer, min Level) Adapter

var (
	adapterMu        sync.RWMutex
	adapterFactories = map[string]AdapterFactory{}
)

// RegisterAdapterFactory makes an adapter constructor available by name to
// Config and the dynamic factory. Adapter packages call this from init() to
// avoid import cycles. A later registration under the same name wins.
func RegisterAdapterFactory(name string, f AdapterFactory) {
	adapterMu.Lock()
	defer adapterMu.Unlock()
	if f == nil {
		delete(adapterFactories, name)
		return
	}
	adapterFactories[name] = f
}

// LookupAdapterFactory returns the factory registered under name.
func LookupAdapterFactory(name string) (AdapterFactory, error) {
	adapterMu.RLock()
	defer adapterMu.RUnlock()
	f, ok := adapterFactories[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAdapter, "%q", name)
	}
	return f, nil
}

// AdapterNames lists registered adapter names in sorted order.
func AdapterNames() []string {
	adapterMu.RLock()
	defer adapterMu.RUnlock()
	names := make([]string, 0, len(adapterFactories))
	for n := range adapterFactories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Discard is an Adapter that writes nothing. Listeners still see every event.
var Discard Adapter = discardAdapter{}

type discardAdapter struct{}

func (discardAdapter) Log(Level, string, string, time.Time, []Field) {}
func (d discardAdapter) With([]Field) Adapter                        { return d }

func init() {
	RegisterAdapterFactory("discard", func(io.Writer, Level) Adapter { return Discard })
}
