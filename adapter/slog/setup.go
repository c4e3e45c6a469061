package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/logfront"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

func init() {
	logfront.RegisterAdapterFactory("slog", func(w io.Writer, min logfront.Level) logfront.Adapter {
		return newHandlerAdapter(w, min, FormatJSON, nil)
	})
}

// Config is an explicit, code-first configuration for slog + logfront.
// One call to Use wires a slog-backed logfront logger and sets it global.
type Config struct {
	Name           string               // global logger name
	Writer         io.Writer            // default: os.Stdout
	MinLevel       logfront.Level       // logfront + slog will both use this
	Format         Format               // JSON (default) or Text
	HandlerOptions *slog.HandlerOptions // optional; Level is managed by Use via LevelVar
}

// Use builds a slog-backed logfront logger from Config, sets it as global,
// and returns it.
func Use(cfg Config) *logfront.Logger {
	ad := newHandlerAdapter(cfg.Writer, cfg.MinLevel, cfg.Format, cfg.HandlerOptions)
	return logfront.UseAdapter(cfg.Name, ad, cfg.MinLevel)
}

func newHandlerAdapter(w io.Writer, min logfront.Level, format Format, opts *slog.HandlerOptions) *Adapter {
	if w == nil {
		w = os.Stdout
	}
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	// Use a LevelVar to allow dynamic SetMinLevel on the adapter.
	lv := new(slog.LevelVar)
	lv.Set(toSlog(min))
	opts.Level = lv

	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return NewWithLevelVar(slog.New(h), lv)
}
