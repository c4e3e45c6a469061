package logfront

import "github.com/trickstertwo/xclock"

// LoggerConfig for constructing a Logger (Factory data structure).
type LoggerConfig struct {
	Name     string
	Adapter  Adapter
	MinLevel Level
	Clock    xclock.Clock // optional; nil follows xclock.Default()
	Registry *Registry    // optional; defaults to DefaultRegistry()
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg LoggerConfig
}

func NewBuilder() *Builder {
	return &Builder{cfg: LoggerConfig{MinLevel: LevelInfo}}
}

func (b *Builder) WithName(name string) *Builder {
	b.cfg.Name = name
	return b
}

func (b *Builder) WithAdapter(a Adapter) *Builder {
	b.cfg.Adapter = a
	return b
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.cfg.Registry = r
	return b
}

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	if b.cfg.Adapter == nil {
		return nil, ErrNoAdapter
	}
	// Propagate settings into the adapter when supported.
	applyAdapterConfig(b.cfg.Adapter, b.cfg.MinLevel)
	return newLogger(b.cfg), nil
}

// adapterLevelSetter is an optional interface adapters can implement
// to receive min-level configuration from Builder/Factory.
type adapterLevelSetter interface {
	SetMinLevel(Level)
}

// applyAdapterConfig applies derived settings to the adapter if it
// supports them via optional interfaces (like adapterLevelSetter).
func applyAdapterConfig(a Adapter, min Level) {
	if ls, ok := a.(adapterLevelSetter); ok {
		ls.SetMinLevel(min)
	}
}

// UseAdapter builds a logger named name on a, sets it as the global logger,
// and returns it.
func UseAdapter(name string, a Adapter, min Level) *Logger {
	l, err := NewBuilder().
		WithName(name).
		WithAdapter(a).
		WithMinLevel(min).
		Build()
	if err != nil {
		// Only a nil adapter fails; surface the programming error early.
		panic(err)
	}
	SetGlobal(l)
	return l
}
