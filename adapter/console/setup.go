package console

import (
	"io"

	"github.com/trickstertwo/logfront"
)

// Register this adapter as "console" (text) and "json" for logfront.Config
// and the dynamic factory.
func init() {
	logfront.RegisterAdapterFactory("console", func(w io.Writer, min logfront.Level) logfront.Adapter {
		return New(w, Options{Format: FormatText, MinLevel: min})
	})
	logfront.RegisterAdapterFactory("json", func(w io.Writer, min logfront.Level) logfront.Adapter {
		return New(w, Options{Format: FormatJSON, MinLevel: min})
	})
}

// Config is an explicit, code-first configuration for the console adapter.
// Use provides a single-call setup with no envs or side-imports.
type Config struct {
	// Name is the global logger's name.
	Name string

	// Writer receives every entry when Route is nil. Defaults to os.Stdout.
	Writer io.Writer

	// Route overrides Writer, e.g. ByLevel to split errors onto stderr.
	Route Router

	MinLevel     logfront.Level
	Format       Format
	ErrorHandler logfront.ErrorHandler
	TimeFormat   string
	Colour       bool
}

// Use builds a logfront.Logger backed by the console adapter with Config,
// sets it as the global logger, and returns it.
func Use(cfg Config) *logfront.Logger {
	opts := Options{
		Format:       cfg.Format,
		MinLevel:     cfg.MinLevel,
		ErrorHandler: cfg.ErrorHandler,
		TimeFormat:   cfg.TimeFormat,
		Colour:       cfg.Colour,
	}

	route := cfg.Route
	if route == nil && cfg.Writer != nil {
		route = To(cfg.Writer)
	}
	ad := NewRouted(route, opts)

	// Keep the logger's filter and the adapter's filter aligned.
	return logfront.UseAdapter(cfg.Name, ad, cfg.MinLevel)
}
