package zerologadapter

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/logfront"
)

// Adapter bridges logfront to rs/zerolog.
//
// Bound fields live on a child zerolog.Logger built in With. A GetLevel
// pre-check avoids allocating a zerolog.Event for dropped entries.
type Adapter struct {
	l       zerolog.Logger
	tsKey   string
	nameKey string
}

func New(l zerolog.Logger) *Adapter {
	return &Adapter{l: l, tsKey: "ts", nameKey: "logger"}
}

func (a *Adapter) With(fs []logfront.Field) logfront.Adapter {
	child := *a
	if len(fs) == 0 {
		return &child
	}
	ctx := a.l.With()
	for i := range fs {
		ctx = appendCtxField(ctx, &fs[i])
	}
	child.l = ctx.Logger()
	return &child
}

func (a *Adapter) Log(level logfront.Level, name, msg string, at time.Time, fields []logfront.Field) {
	zlvl := mapLevel(level)
	if zlvl < a.l.GetLevel() || zlvl < zerolog.GlobalLevel() {
		return
	}

	ev := a.l.WithLevel(zlvl)

	// A string keeps RFC3339Nano precision without touching zerolog.TimeFieldFormat.
	ev.Str(a.tsKey, at.UTC().Format(time.RFC3339Nano))
	if name != "" {
		ev.Str(a.nameKey, name)
	}
	for i := range fields {
		appendEventField(ev, &fields[i])
	}

	ev.Msg(msg)
}

// SetMinLevel applies to this adapter only; children made earlier keep
// their level.
func (a *Adapter) SetMinLevel(l logfront.Level) {
	a.l = a.l.Level(mapLevel(l))
}

func mapLevel(l logfront.Level) zerolog.Level {
	switch {
	case l <= logfront.LevelTrace:
		return zerolog.TraceLevel
	case l <= logfront.LevelDebug:
		return zerolog.DebugLevel
	case l <= logfront.LevelInfo:
		return zerolog.InfoLevel
	case l <= logfront.LevelWarn:
		return zerolog.WarnLevel
	default:
		// never Fatal: zerolog exits the process on it
		return zerolog.ErrorLevel
	}
}

func appendEventField(e *zerolog.Event, f *logfront.Field) {
	switch f.Kind {
	case logfront.KindString:
		e.Str(f.K, f.Str)
	case logfront.KindInt64:
		e.Int64(f.K, f.Int64)
	case logfront.KindUint64:
		e.Uint64(f.K, f.Uint64)
	case logfront.KindFloat64:
		e.Float64(f.K, f.Float64)
	case logfront.KindBool:
		e.Bool(f.K, f.Bool)
	case logfront.KindDuration:
		e.Dur(f.K, f.Dur)
	case logfront.KindTime:
		e.Time(f.K, f.Time)
	case logfront.KindError:
		if f.Err == nil {
			return
		}
		if f.K == "" || f.K == zerolog.ErrorFieldName {
			e.Err(f.Err)
		} else {
			e.AnErr(f.K, f.Err)
		}
	case logfront.KindBytes:
		e.Bytes(f.K, f.Bytes)
	case logfront.KindAny:
		e.Interface(f.K, f.Any)
	default:
		e.Interface(f.K, nil)
	}
}

func appendCtxField(ctx zerolog.Context, f *logfront.Field) zerolog.Context {
	switch f.Kind {
	case logfront.KindString:
		return ctx.Str(f.K, f.Str)
	case logfront.KindInt64:
		return ctx.Int64(f.K, f.Int64)
	case logfront.KindUint64:
		return ctx.Uint64(f.K, f.Uint64)
	case logfront.KindFloat64:
		return ctx.Float64(f.K, f.Float64)
	case logfront.KindBool:
		return ctx.Bool(f.K, f.Bool)
	case logfront.KindDuration:
		return ctx.Dur(f.K, f.Dur)
	case logfront.KindTime:
		return ctx.Time(f.K, f.Time)
	case logfront.KindError:
		if f.Err == nil {
			return ctx
		}
		if f.K == "" || f.K == zerolog.ErrorFieldName {
			return ctx.Err(f.Err)
		}
		return ctx.AnErr(f.K, f.Err)
	case logfront.KindBytes:
		return ctx.Bytes(f.K, f.Bytes)
	case logfront.KindAny:
		return ctx.Interface(f.K, f.Any)
	default:
		return ctx.Interface(f.K, nil)
	}
}
