package zerologadapter

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/logfront"
)

func init() {
	logfront.RegisterAdapterFactory("zerolog", func(w io.Writer, min logfront.Level) logfront.Adapter {
		return newWriterAdapter(Config{Writer: w, MinLevel: min})
	})
	logfront.RegisterAdapterFactory("zerolog-console", func(w io.Writer, min logfront.Level) logfront.Adapter {
		return newWriterAdapter(Config{Writer: w, MinLevel: min, Console: true})
	})
}

// Config is an explicit, code-first configuration for zerolog + logfront.
type Config struct {
	Name     string // global logger name
	Writer   io.Writer
	MinLevel logfront.Level
	Console  bool // zerolog.ConsoleWriter instead of JSON
	Caller   bool
}

// Use builds a zerolog-backed logfront logger, sets it as global and
// returns it.
func Use(cfg Config) *logfront.Logger {
	return logfront.UseAdapter(cfg.Name, newWriterAdapter(cfg), cfg.MinLevel)
}

func newWriterAdapter(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	if cfg.Console {
		// The adapter writes its own "ts" field; zerolog's time part stays empty.
		cw := zerolog.ConsoleWriter{
			Out:          w,
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
		if !cfg.Caller {
			cw.PartsExclude = append(cw.PartsExclude, zerolog.CallerFieldName)
		}
		w = cw
	}

	zl := zerolog.New(w).Level(mapLevel(cfg.MinLevel))
	if cfg.Caller {
		zl = zl.With().CallerWithSkipFrameCount(5).Logger()
	}
	return New(zl)
}
