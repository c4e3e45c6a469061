package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/logfront"
)

func init() {
	logfront.RegisterAdapterFactory("zap", func(w io.Writer, min logfront.Level) logfront.Adapter {
		return newCoreAdapter(Config{Writer: w, MinLevel: min})
	})
}

// Config is an explicit, code-first configuration for zap + logfront.
type Config struct {
	Name          string // global logger name
	Writer        io.Writer
	MinLevel      logfront.Level
	Console       bool                  // zapcore.NewConsoleEncoder instead of JSON
	EncoderConfig zapcore.EncoderConfig // zero value selects defaultEncoderConfig
	Caller        bool
	CallerSkip    int
}

func defaultEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "", // the adapter writes "ts"
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Use builds a zap-backed logfront logger, sets it as global and returns it.
func Use(cfg Config) *logfront.Logger {
	return logfront.UseAdapter(cfg.Name, newCoreAdapter(cfg), cfg.MinLevel)
}

func newCoreAdapter(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" {
		encCfg = defaultEncoderConfig()
	}
	encCfg.TimeKey = ""

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	al := zap.NewAtomicLevelAt(toZapLevel(cfg.MinLevel))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)

	opts := []zap.Option{zap.AddStacktrace(zapcore.FatalLevel + 1)}
	if cfg.Caller {
		skip := cfg.CallerSkip
		if skip <= 0 {
			skip = 3
		}
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(skip))
	}

	return NewWithAtomicLevel(zap.New(core, opts...), &al)
}
