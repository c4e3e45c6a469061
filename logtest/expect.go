package logtest

import (
	"regexp"
	"testing"

	"github.com/trickstertwo/logfront"
)

// Source supplies the events an Expectation checks. *LogList and Events
// both implement it.
type Source interface {
	Events() Events
}

// Expectation fails a test when captured events do not match.
// Each check reads the Source afresh, so one Expectation can be reused as
// the test progresses.
type Expectation struct {
	t   testing.TB
	src Source
}

// Expect returns an Expectation over src that reports failures to t.
func Expect(t testing.TB, src Source) *Expectation {
	return &Expectation{t: t, src: src}
}

func (x *Expectation) fatal(err error) {
	x.t.Helper()
	if err != nil {
		x.t.Fatal(err.Error())
	}
}

// Has fails the test unless some event has level and message text.
func (x *Expectation) Has(level logfront.Level, text string) {
	x.t.Helper()
	x.fatal(x.src.Events().ShouldHave(level, text))
}

// HasContaining fails the test unless some event has level and a message
// containing substr.
func (x *Expectation) HasContaining(level logfront.Level, substr string) {
	x.t.Helper()
	x.fatal(x.src.Events().ShouldHaveContaining(level, substr))
}

// HasMatching fails the test unless some event has level and a message
// matched by re.
func (x *Expectation) HasMatching(level logfront.Level, re *regexp.Regexp) {
	x.t.Helper()
	x.fatal(x.src.Events().ShouldHaveMatching(level, re))
}

func (x *Expectation) Trace(text string) {
	x.t.Helper()
	x.Has(logfront.LevelTrace, text)
}

func (x *Expectation) Debug(text string) {
	x.t.Helper()
	x.Has(logfront.LevelDebug, text)
}

func (x *Expectation) Info(text string) {
	x.t.Helper()
	x.Has(logfront.LevelInfo, text)
}

func (x *Expectation) Warn(text string) {
	x.t.Helper()
	x.Has(logfront.LevelWarn, text)
}

func (x *Expectation) Error(text string) {
	x.t.Helper()
	x.Has(logfront.LevelError, text)
}

func (x *Expectation) TraceContaining(substr string) {
	x.t.Helper()
	x.HasContaining(logfront.LevelTrace, substr)
}

func (x *Expectation) DebugContaining(substr string) {
	x.t.Helper()
	x.HasContaining(logfront.LevelDebug, substr)
}

func (x *Expectation) InfoContaining(substr string) {
	x.t.Helper()
	x.HasContaining(logfront.LevelInfo, substr)
}

func (x *Expectation) WarnContaining(substr string) {
	x.t.Helper()
	x.HasContaining(logfront.LevelWarn, substr)
}

func (x *Expectation) ErrorContaining(substr string) {
	x.t.Helper()
	x.HasContaining(logfront.LevelError, substr)
}

func (x *Expectation) TraceMatching(re *regexp.Regexp) {
	x.t.Helper()
	x.HasMatching(logfront.LevelTrace, re)
}

func (x *Expectation) DebugMatching(re *regexp.Regexp) {
	x.t.Helper()
	x.HasMatching(logfront.LevelDebug, re)
}

func (x *Expectation) InfoMatching(re *regexp.Regexp) {
	x.t.Helper()
	x.HasMatching(logfront.LevelInfo, re)
}

func (x *Expectation) WarnMatching(re *regexp.Regexp) {
	x.t.Helper()
	x.HasMatching(logfront.LevelWarn, re)
}

func (x *Expectation) ErrorMatching(re *regexp.Regexp) {
	x.t.Helper()
	x.HasMatching(logfront.LevelError, re)
}
