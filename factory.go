package logfront

import (
	"io"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xclock"
)

// FactoryConfig is the code-first configuration for a Factory.
type FactoryConfig struct {
	Adapter      Adapter      // default: Discard
	DefaultLevel Level        // zero value is LevelInfo
	Clock        xclock.Clock // optional; nil follows xclock.Default()
	Registry     *Registry    // optional; defaults to DefaultRegistry()

	// Output, when set, is closed by Factory.Close.
	Output io.Closer
}

// Factory hands out named loggers that share an adapter, a registry and
// default level/clock settings. Level filtering is done per logger, so the
// shared adapter should accept every level.
type Factory struct {
	adapter  Adapter
	level    Level
	clock    xclock.Clock
	registry *Registry

	closeOnce sync.Once
	output    io.Closer
}

// NewFactory creates a Factory from cfg.
func NewFactory(cfg FactoryConfig) *Factory {
	if cfg.Adapter == nil {
		cfg.Adapter = Discard
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	return &Factory{
		adapter:  cfg.Adapter,
		level:    cfg.DefaultLevel,
		clock:    cfg.Clock,
		registry: cfg.Registry,
		output:   cfg.Output,
	}
}

func (f *Factory) Adapter() Adapter    { return f.adapter }
func (f *Factory) DefaultLevel() Level { return f.level }
func (f *Factory) Registry() *Registry { return f.registry }

// DefaultClock returns the clock handed to loggers that do not override it.
func (f *Factory) DefaultClock() xclock.Clock {
	if f.clock == nil {
		return xclock.Default()
	}
	return f.clock
}

// LoggerOption overrides a Factory default for one logger.
type LoggerOption func(*LoggerConfig)

// WithLevel sets the logger's minimum level.
func WithLevel(l Level) LoggerOption {
	return func(c *LoggerConfig) { c.MinLevel = l }
}

// WithClock sets the clock the logger takes timestamps from.
func WithClock(clk xclock.Clock) LoggerOption {
	return func(c *LoggerConfig) { c.Clock = clk }
}

// Logger returns a logger emitting under name.
func (f *Factory) Logger(name string, opts ...LoggerOption) *Logger {
	cfg := LoggerConfig{
		Name:     name,
		Adapter:  f.adapter,
		MinLevel: f.level,
		Clock:    f.clock,
		Registry: f.registry,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newLogger(cfg)
}

// ForType returns a logger named after the dynamic type of v, as
// "<import path>.<TypeName>". Pointers are dereferenced.
func (f *Factory) ForType(v any, opts ...LoggerOption) *Logger {
	return f.Logger(TypeName(v), opts...)
}

// Caller returns a logger named after the calling function's package.
func (f *Factory) Caller(opts ...LoggerOption) *Logger {
	return f.Logger(callerPackage(2), opts...)
}

// Close releases the output the factory was configured with, if any.
func (f *Factory) Close() error {
	var err error
	f.closeOnce.Do(func() {
		if f.output != nil {
			err = f.output.Close()
		}
	})
	return err
}

// TypeName returns the fully-qualified name of v's type.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// callerPackage returns the import path of the function skip frames up.
func callerPackage(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return packageOf(fn.Name())
}

// packageOf trims the function part from a runtime function name such as
// "github.com/a/b.(*T).M" or "github.com/a/b.F.func1". A last path element
// with a version suffix ("gopkg.in/yaml.v3") keeps it, and the linker's
// "%2e" escaping of such dots is undone.
func packageOf(funcName string) string {
	dir, rest := "", funcName
	if i := strings.LastIndexByte(funcName, '/'); i >= 0 {
		dir, rest = funcName[:i+1], funcName[i+1:]
	}
	pkg, tail, _ := strings.Cut(rest, ".")
	for {
		seg, more, ok := strings.Cut(tail, ".")
		if !ok || !isVersionSuffix(seg) {
			break
		}
		pkg, tail = pkg+"."+seg, more
	}
	return dir + strings.ReplaceAll(pkg, "%2e", ".")
}

func isVersionSuffix(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Default factory (Singleton).
var defaultFactory atomic.Pointer[Factory]

// DefaultFactory returns the process default Factory, creating it with
// NewDynamicFactory on first use.
func DefaultFactory() *Factory {
	if f := defaultFactory.Load(); f != nil {
		return f
	}
	return installDefault(NewDynamicFactory())
}

// installDefault stores f unless another goroutine got there first, in which
// case f is closed and the winner returned.
func installDefault(f *Factory) *Factory {
	if !defaultFactory.CompareAndSwap(nil, f) {
		_ = f.Close()
	}
	return defaultFactory.Load()
}

// SetDefaultFactory replaces the process default Factory.
func SetDefaultFactory(f *Factory) { defaultFactory.Store(f) }

// GetLogger returns a logger named name from the default factory.
func GetLogger(name string, opts ...LoggerOption) *Logger {
	return DefaultFactory().Logger(name, opts...)
}

// GetLoggerFor returns a logger named after v's type from the default factory.
func GetLoggerFor(v any, opts ...LoggerOption) *Logger {
	return DefaultFactory().ForType(v, opts...)
}

// GetCallerLogger returns a logger named after the calling package.
func GetCallerLogger(opts ...LoggerOption) *Logger {
	return DefaultFactory().Logger(callerPackage(2), opts...)
}
