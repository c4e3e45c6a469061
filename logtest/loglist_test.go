package logtest

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/logfront"
)

var frozenAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// newLogger returns a logger dispatching to reg at every level.
func newLogger(t *testing.T, reg *logfront.Registry, name string) *logfront.Logger {
	t.Helper()

	l, err := logfront.NewBuilder().
		WithName(name).
		WithAdapter(logfront.Discard).
		WithMinLevel(logfront.LevelTrace).
		WithClock(xclock.NewFrozen(frozenAt)).
		WithRegistry(reg).
		Build()
	require.NoError(t, err)

	return l
}

func messages(es Events) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Message())
	}
	return out
}

func TestLogList_CapturesInOrder(t *testing.T) {
	t.Parallel()

	reg := logfront.NewRegistry()
	list := Capture(t, WithRegistry(reg))
	l := newLogger(t, reg, "TestLog")

	want := make([]string, 0, 50)
	for i := range 50 {
		msg := "event " + strconv.Itoa(i)
		l.Info().Msg(msg)
		want = append(want, msg)
	}

	assert.Equal(t, 50, list.Len())
	assert.Equal(t, want, messages(list.Events()))

	var got []string
	for e := range list.All() {
		got = append(got, e.Message())
	}
	assert.Equal(t, want, got)
}

func TestLogList_CloseStopsCapture(t *testing.T) {
	t.Parallel()

	reg := logfront.NewRegistry()
	list := New(WithRegistry(reg))
	l := newLogger(t, reg, "TestLog")

	l.Info().Msg("before")
	require.NoError(t, list.Close())
	require.NoError(t, list.Close())
	l.Info().Msg("after")

	assert.Equal(t, []string{"before"}, messages(list.Events()))
	assert.Zero(t, reg.Len())
}

func TestLogList_IteratorIsSnapshot(t *testing.T) {
	t.Parallel()

	reg := logfront.NewRegistry()
	list := Capture(t, WithRegistry(reg))
	l := newLogger(t, reg, "TestLog")

	l.Info().Msg("one")
	seq := list.All()

	n := 0
	for range seq {
		l.Info().Msg("during")
		n++
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, list.Len())

	// A new iteration sees the growth.
	n = 0
	for range seq {
		n++
	}
	assert.Equal(t, 2, n)

	// Early break.
	for range seq {
		break
	}
}

func TestLogList_Subset(t *testing.T) {
	t.Parallel()

	reg := logfront.NewRegistry()
	list := Capture(t, WithRegistry(reg))
	a := newLogger(t, reg, "A")
	tl := newLogger(t, reg, "TestLog")

	a.Info().Msg("a1")
	tl.Info().Msg("t1")
	a.Warn().Msg("a2")
	tl.Error().Msg("t2")
	newLogger(t, reg, "TestLogger").Info().Msg("prefix only")

	sub := list.Subset("TestLog")
	assert.Equal(t, []string{"t1", "t2"}, messages(sub))
	for e := range sub.All() {
		assert.Equal(t, "TestLog", e.Name())
	}
	assert.Empty(t, list.Subset("missing"))
}

func TestLogList_ConcurrentEmitters(t *testing.T) {
	t.Parallel()

	reg := logfront.NewRegistry()
	list := Capture(t, WithRegistry(reg))
	l := newLogger(t, reg, "TestLog")

	var wg sync.WaitGroup
	for g := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				l.Info().Int("g", g).Int("i", i).Msg("concurrent")
			}
		}()
	}
	wg.Wait()

	events := list.Events()
	require.Len(t, events, 2000)

	seen := make(map[[2]int64]bool, 2000)
	for _, e := range events {
		fs := e.Fields()
		require.Len(t, fs, 2)
		key := [2]int64{fs[0].Int64, fs[1].Int64}
		assert.False(t, seen[key], "duplicate %v", key)
		seen[key] = true
	}
	assert.Len(t, seen, 2000)
}

func TestLogList_DefaultRegistry(t *testing.T) {
	t.Parallel()

	list := Capture(t)

	ev := logfront.NewLogEvent(frozenAt, "default-registry-probe", logfront.LevelInfo, "probe", nil)
	logfront.DefaultRegistry().Dispatch(ev)

	assert.Len(t, list.Subset("default-registry-probe"), 1)
}

func TestCapture_ClosesOnCleanup(t *testing.T) {
	t.Parallel()

	reg := logfront.NewRegistry()
	t.Run("scope", func(t *testing.T) {
		Capture(t, WithRegistry(reg))
		assert.Equal(t, 1, reg.Len())
	})
	assert.Zero(t, reg.Len())
}
