package slogadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/trickstertwo/logfront"
)

// Adapter adapts logfront to the Go slog API (Adapter Strategy).
// It builds slog.Attrs directly for low overhead and uses LogAttrs.
type Adapter struct {
	l       *slog.Logger
	lv      *slog.LevelVar // optional, enables SetMinLevel
	bound   []logfront.Field
	tsKey   string
	nameKey string
}

func toSlog(l logfront.Level) slog.Level {
	return slog.Level(l)
}

// New wraps l. A nil l uses slog.Default().
func New(l *slog.Logger) *Adapter {
	return NewWithLevelVar(l, nil)
}

// NewWithLevelVar wires lv so SetMinLevel adjusts the handler's filter.
func NewWithLevelVar(l *slog.Logger, lv *slog.LevelVar) *Adapter {
	if l == nil {
		l = slog.Default()
	}
	return &Adapter{l: l, lv: lv, tsKey: "ts", nameKey: "logger"}
}

// WithKeys overrides the timestamp and logger-name keys. Empty keys keep
// the current value.
func (a *Adapter) WithKeys(tsKey, nameKey string) *Adapter {
	if tsKey != "" {
		a.tsKey = tsKey
	}
	if nameKey != "" {
		a.nameKey = nameKey
	}
	return a
}

func (a *Adapter) With(fs []logfront.Field) logfront.Adapter {
	child := *a
	child.bound = append(append([]logfront.Field(nil), a.bound...), fs...)
	return &child
}

// SetMinLevel updates the LevelVar when one was supplied.
func (a *Adapter) SetMinLevel(l logfront.Level) {
	if a.lv != nil {
		a.lv.Set(toSlog(l))
	}
}

func (a *Adapter) Log(level logfront.Level, name, msg string, at time.Time, fields []logfront.Field) {
	ctx := context.Background()
	if !a.l.Enabled(ctx, toSlog(level)) {
		return
	}

	attrs := make([]slog.Attr, 0, len(a.bound)+len(fields)+2)

	// Single authoritative timestamp provided by Logger
	attrs = append(attrs, slog.Time(a.tsKey, at))
	if name != "" {
		attrs = append(attrs, slog.String(a.nameKey, name))
	}

	for i := range a.bound {
		attrs = append(attrs, toAttr(a.bound[i]))
	}
	for i := range fields {
		attrs = append(attrs, toAttr(fields[i]))
	}

	// Use LogAttrs for minimal allocations
	a.l.LogAttrs(ctx, toSlog(level), msg, attrs...)
}

func toAttr(f logfront.Field) slog.Attr {
	switch f.Kind {
	case logfront.KindString:
		return slog.String(f.K, f.Str)
	case logfront.KindInt64:
		return slog.Int64(f.K, f.Int64)
	case logfront.KindUint64:
		return slog.Uint64(f.K, f.Uint64)
	case logfront.KindFloat64:
		return slog.Float64(f.K, f.Float64)
	case logfront.KindBool:
		return slog.Bool(f.K, f.Bool)
	case logfront.KindDuration:
		return slog.Duration(f.K, f.Dur)
	case logfront.KindTime:
		return slog.Time(f.K, f.Time)
	case logfront.KindError:
		return slog.Any(f.K, f.Err)
	case logfront.KindBytes:
		return slog.Any(f.K, f.Bytes)
	case logfront.KindAny:
		return slog.Any(f.K, f.Any)
	default:
		return slog.Any(f.K, nil)
	}
}
