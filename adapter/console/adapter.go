package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/trickstertwo/logfront"
)

// Format selects the line encoding.
type Format uint8

const (
	FormatText Format = iota + 1
	FormatJSON
)

// Options for New and NewRouted.
type Options struct {
	Format   Format
	MinLevel logfront.Level

	// ErrorHandler is called with write failures and recovered encoding
	// panics. Nil reports to stderr.
	ErrorHandler logfront.ErrorHandler

	// TimeFormat is a time layout for the ts key. Empty means RFC3339Nano.
	TimeFormat string

	// Colour wraps the text level in ANSI colour codes.
	Colour bool
}

// Router picks the destination of an entry by level. A nil writer drops
// the entry after it has been encoded.
type Router func(level logfront.Level) io.Writer

// To routes every level to w.
func To(w io.Writer) Router {
	return func(logfront.Level) io.Writer { return w }
}

// ByLevel routes the levels present in m to their writer and everything
// else to fallback.
func ByLevel(fallback io.Writer, m map[logfront.Level]io.Writer) Router {
	return func(level logfront.Level) io.Writer {
		if w, ok := m[level]; ok {
			return w
		}
		return fallback
	}
}

// line is what an encoder sees for one call.
type line struct {
	level  logfront.Level
	name   string
	msg    string
	at     time.Time
	fields []logfront.Field
}

type encodeFunc func(buf *buffer, l *line)

// Adapter encodes each entry into a pooled buffer and writes it with one
// Write call. Children created by With share the lock, the level and the
// error counter with their parent.
type Adapter struct {
	route   Router
	encode  encodeFunc
	onError logfront.ErrorHandler
	bound   []logfront.Field

	mu       *sync.Mutex
	minLevel *atomic.Int64
	failures *atomic.Uint64
}

func reportToStderr(err error) {
	fmt.Fprintf(os.Stderr, "logfront console error: %v\n", err)
}

// New returns an Adapter writing every entry to w.
func New(w io.Writer, opts Options) *Adapter {
	return NewRouted(To(w), opts)
}

// NewRouted returns an Adapter that asks route for the writer of each entry.
// A nil route writes to stdout.
func NewRouted(route Router, opts Options) *Adapter {
	if route == nil {
		route = To(os.Stdout)
	}
	onError := opts.ErrorHandler
	if onError == nil {
		onError = reportToStderr
	}

	layout, colour := opts.TimeFormat, opts.Colour
	encode := func(buf *buffer, l *line) {
		writeTextLine(buf, l, layout, colour)
		buf.writeByte('\n')
	}
	if opts.Format == FormatJSON {
		encode = func(buf *buffer, l *line) {
			writeJSONLine(buf, l, layout)
			buf.writeByte('\n')
		}
	}

	a := &Adapter{
		route:    route,
		encode:   encode,
		onError:  onError,
		mu:       new(sync.Mutex),
		minLevel: new(atomic.Int64),
		failures: new(atomic.Uint64),
	}
	a.minLevel.Store(int64(opts.MinLevel))
	return a
}

// SetMinLevel changes the threshold of a and every adapter derived from it.
func (a *Adapter) SetMinLevel(l logfront.Level) {
	a.minLevel.Store(int64(l))
}

// LoggedErrors counts entries that could not be encoded or written.
func (a *Adapter) LoggedErrors() uint64 {
	return a.failures.Load()
}

// With binds fs after the fields already bound to a.
func (a *Adapter) With(fs []logfront.Field) logfront.Adapter {
	child := *a
	child.bound = append(make([]logfront.Field, 0, len(a.bound)+len(fs)), a.bound...)
	child.bound = append(child.bound, fs...)
	return &child
}

// Log writes one entry synchronously.
func (a *Adapter) Log(level logfront.Level, name, msg string, at time.Time, fields []logfront.Field) {
	if int64(level) < a.minLevel.Load() {
		return
	}

	buf := getBuf()
	defer putBuf(buf)

	// A panicking Any value or writer must not escape into the caller.
	defer func() {
		if r := recover(); r != nil {
			a.fail(errors.Errorf("console: recovered panic: %v", r))
		}
	}()

	l := line{level: level, name: name, msg: msg, at: at, fields: fields}
	if len(a.bound) > 0 {
		l.fields = append(append(make([]logfront.Field, 0, len(a.bound)+len(fields)), a.bound...), fields...)
	}
	a.encode(buf, &l)

	w := a.route(level)
	if w == nil {
		return
	}

	if err := a.write(w, buf.b); err != nil {
		a.fail(errors.Wrap(err, "console: write"))
	}
}

// write holds the shared lock for one Write; the lock is released even when
// w panics.
func (a *Adapter) write(w io.Writer, p []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := w.Write(p)
	return err
}

func (a *Adapter) fail(err error) {
	a.failures.Add(1)
	a.onError(err)
}
