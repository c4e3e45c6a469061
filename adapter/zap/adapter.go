package zapadapter

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/logfront"
)

// Adapter bridges logfront to go.uber.org/zap.
//
// Bound fields are attached to a child zap.Logger in With, so Log only
// converts the event's own fields. Logger.Check skips field conversion when
// zap would drop the entry.
type Adapter struct {
	l       *zap.Logger
	al      *zap.AtomicLevel // optional, enables SetMinLevel
	tsKey   string
	nameKey string
}

// New creates an adapter for l. A nil l discards everything.
func New(l *zap.Logger) *Adapter {
	return NewWithAtomicLevel(l, nil)
}

// NewWithAtomicLevel wires al so SetMinLevel adjusts zap's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{l: l, al: al, tsKey: "ts", nameKey: "logger"}
}

func (a *Adapter) With(fs []logfront.Field) logfront.Adapter {
	child := *a
	if len(fs) > 0 {
		child.l = a.l.With(convertFields(fs)...)
	}
	return &child
}

// Log writes one entry. The logger name goes out as a field rather than
// through zap.Logger.Named, which would allocate a child per call.
func (a *Adapter) Log(level logfront.Level, name, msg string, at time.Time, fields []logfront.Field) {
	ce := a.l.Check(toZapLevel(level), msg)
	if ce == nil {
		return
	}

	zfs := make([]zap.Field, 0, 2+len(fields))
	zfs = append(zfs, zap.String(a.tsKey, at.UTC().Format(time.RFC3339Nano)))
	if name != "" {
		zfs = append(zfs, zap.String(a.nameKey, name))
	}
	for i := range fields {
		zfs = append(zfs, toZapField(&fields[i]))
	}

	ce.Write(zfs...)
}

// SetMinLevel is a no-op unless the adapter was built with an AtomicLevel.
func (a *Adapter) SetMinLevel(l logfront.Level) {
	if a.al == nil {
		return
	}
	a.al.SetLevel(toZapLevel(l))
}

// zap has no trace level and its levels above Error exit or panic, so the
// range is clamped to Debug..Error.
func toZapLevel(l logfront.Level) zapcore.Level {
	switch {
	case l <= logfront.LevelDebug:
		return zapcore.DebugLevel
	case l <= logfront.LevelInfo:
		return zapcore.InfoLevel
	case l <= logfront.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func convertFields(fs []logfront.Field) []zap.Field {
	out := make([]zap.Field, len(fs))
	for i := range fs {
		out[i] = toZapField(&fs[i])
	}
	return out
}

func toZapField(f *logfront.Field) zap.Field {
	switch f.Kind {
	case logfront.KindString:
		return zap.String(f.K, f.Str)
	case logfront.KindInt64:
		return zap.Int64(f.K, f.Int64)
	case logfront.KindUint64:
		return zap.Uint64(f.K, f.Uint64)
	case logfront.KindFloat64:
		return zap.Float64(f.K, f.Float64)
	case logfront.KindBool:
		return zap.Bool(f.K, f.Bool)
	case logfront.KindDuration:
		return zap.Duration(f.K, f.Dur)
	case logfront.KindTime:
		return zap.Time(f.K, f.Time)
	case logfront.KindError:
		if f.Err == nil {
			return zap.Skip()
		}
		if f.K == "" || f.K == "error" {
			return zap.Error(f.Err)
		}
		return zap.NamedError(f.K, f.Err)
	case logfront.KindBytes:
		return zap.ByteString(f.K, f.Bytes)
	case logfront.KindAny:
		return zap.Any(f.K, f.Any)
	default:
		return zap.Skip()
	}
}
