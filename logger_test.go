package logfront

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"
)

// stubAdapter records every entry it receives. Children share the record.
type stubAdapter struct {
	mu    *sync.Mutex
	bound []Field
	logs  *[]stubEntry
}

type stubEntry struct {
	At     time.Time
	Name   string
	Level  Level
	Msg    string
	Fields []Field
}

func newStubAdapter() *stubAdapter {
	return &stubAdapter{mu: &sync.Mutex{}, logs: &[]stubEntry{}}
}

func (a *stubAdapter) With(fs []Field) Adapter {
	child := *a
	child.bound = append(copyFields(nil, a.bound), fs...)
	return &child
}

func (a *stubAdapter) Log(level Level, name, msg string, at time.Time, fields []Field) {
	a.mu.Lock()
	defer a.mu.Unlock()

	combined := append(copyFields(nil, a.bound), fields...)
	*a.logs = append(*a.logs, stubEntry{At: at, Name: name, Level: level, Msg: msg, Fields: combined})
}

func (a *stubAdapter) entries() []stubEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]stubEntry(nil), *a.logs...)
}

// recorder is a Listener that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []LogEvent
}

func (r *recorder) Receive(e LogEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func (r *recorder) all() []LogEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]LogEvent(nil), r.events...)
}

var frozenAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestLogger(t *testing.T, min Level) (*Logger, *stubAdapter, *recorder) {
	t.Helper()

	reg := NewRegistry()
	rec := &recorder{}
	reg.Register(rec)

	ad := newStubAdapter()
	l, err := NewBuilder().
		WithName("test").
		WithAdapter(ad).
		WithMinLevel(min).
		WithClock(xclock.NewFrozen(frozenAt)).
		WithRegistry(reg).
		Build()
	require.NoError(t, err)

	return l, ad, rec
}

func hasField(fs []Field, k string, v any) bool {
	for _, f := range fs {
		if f.K == k && f.Value() == v {
			return true
		}
	}
	return false
}

func TestGlobalAndFacade(t *testing.T) {
	l, ad, rec := newTestLogger(t, LevelDebug)
	SetGlobal(l)
	t.Cleanup(func() { global.Store(nil) })

	Info().Str("from", "old").Dur("to", time.Second).Int("count", 2).Msg("state changed")

	entries := ad.entries()
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, LevelInfo, entry.Level)
	assert.Equal(t, "test", entry.Name)
	assert.Equal(t, "state changed", entry.Msg)
	assert.True(t, entry.At.Equal(frozenAt))
	assert.True(t, hasField(entry.Fields, "from", "old"))
	assert.True(t, hasField(entry.Fields, "to", time.Second))
	assert.True(t, hasField(entry.Fields, "count", int64(2)))

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, "state changed", events[0].Message())
	assert.True(t, events[0].Time().Equal(entry.At))
}

func TestL_PanicsWhenUnset(t *testing.T) {
	global.Store(nil)
	assert.Panics(t, func() { L() })
}

func TestMinLevelFilter(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		min   Level
		emit  Level
		wants bool
	}{
		"below":      {min: LevelWarn, emit: LevelInfo, wants: false},
		"equal":      {min: LevelWarn, emit: LevelWarn, wants: true},
		"above":      {min: LevelWarn, emit: LevelError, wants: true},
		"trace at 0": {min: LevelInfo, emit: LevelTrace, wants: false},
		"trace min":  {min: LevelTrace, emit: LevelTrace, wants: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l, ad, rec := newTestLogger(t, tc.min)
			l.At(tc.emit).Msg("m")

			n := 0
			if tc.wants {
				n = 1
			}
			assert.Len(t, ad.entries(), n)
			assert.Len(t, rec.all(), n)
			assert.Equal(t, tc.wants, l.Enabled(tc.emit))
		})
	}
}

func TestWithMergesFieldsForListeners(t *testing.T) {
	t.Parallel()

	l, ad, rec := newTestLogger(t, LevelInfo)

	child := l.With(Str("request_id", "r-1"))
	child.Info().Str("path", "/api").Int("status", 200).Msg("done")

	events := rec.all()
	require.Len(t, events, 1)

	e := events[0]
	assert.True(t, e.Time().Equal(frozenAt))
	assert.Equal(t, "done", e.Message())
	assert.Equal(t, LevelInfo, e.Level())
	assert.True(t, hasField(e.Fields(), "request_id", "r-1"))
	assert.True(t, hasField(e.Fields(), "path", "/api"))
	assert.True(t, hasField(e.Fields(), "status", int64(200)))

	// The adapter applies bound fields itself.
	entries := ad.entries()
	require.Len(t, entries, 1)
	assert.True(t, hasField(entries[0].Fields, "request_id", "r-1"))

	// The parent is unchanged.
	l.Info().Msg("plain")
	assert.False(t, hasField(rec.all()[1].Fields(), "request_id", "r-1"))
}

func TestNamed(t *testing.T) {
	t.Parallel()

	l, _, rec := newTestLogger(t, LevelInfo)
	l.Named("other").Info().Msg("a")
	l.Info().Msg("b")

	events := rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, "other", events[0].Name())
	assert.Equal(t, "test", events[1].Name())
}

func TestErrSetsCause(t *testing.T) {
	t.Parallel()

	l, ad, rec := newTestLogger(t, LevelInfo)
	boom := errors.New("boom")

	l.Error().Err(boom).Msg("failed")
	l.Error().Err(nil).Msg("no cause")

	events := rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, boom, events[0].Cause())
	assert.NoError(t, events[1].Cause())

	assert.True(t, hasField(ad.entries()[0].Fields, "error", boom))
}

func TestLazyMessages(t *testing.T) {
	t.Parallel()

	l, _, rec := newTestLogger(t, LevelInfo)

	calls := 0
	render := func() string {
		calls++
		return "expensive"
	}

	l.Debug().MsgFunc(render)
	assert.Zero(t, calls, "disabled level must not evaluate the payload")

	l.Info().MsgFunc(render)
	assert.Equal(t, 1, calls)

	l.Debug().Msgf("%d", 1)
	l.Info().Msgf("n=%d", 2)
	l.Warn().Value(struct{ A int }{A: 3})
	l.Trace().Value("hidden")
	l.Info().Send()

	var got []string
	for _, e := range rec.all() {
		got = append(got, e.Message())
	}
	assert.Equal(t, []string{"expensive", "n=2", "{3}", ""}, got)
}

func TestBuild_RequiresAdapter(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().Build()
	require.ErrorIs(t, err, ErrNoAdapter)
}

func TestBuild_PropagatesMinLevel(t *testing.T) {
	t.Parallel()

	ad := &levelAdapter{}
	_, err := NewBuilder().WithAdapter(ad).WithMinLevel(LevelWarn).Build()
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, ad.min)
}

type levelAdapter struct {
	min Level
}

func (a *levelAdapter) SetMinLevel(l Level)                           { a.min = l }
func (a *levelAdapter) With([]Field) Adapter                          { return a }
func (a *levelAdapter) Log(Level, string, string, time.Time, []Field) {}

func TestLoggerDefaults(t *testing.T) {
	t.Parallel()

	l := newLogger(LoggerConfig{Name: "d"})
	assert.Equal(t, DefaultRegistry(), l.Registry())
	assert.NotNil(t, l.Clock())
	assert.Equal(t, LevelInfo, l.Level())
	assert.Equal(t, "d", l.Name())
}
