package logtest

import (
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/trickstertwo/logfront"
)

// Events is an ordered sequence of captured log events.
type Events []logfront.LogEvent

// Events returns es itself, so Events can be passed wherever a Source is
// expected.
func (es Events) Events() Events { return es }

// All iterates over es in order.
func (es Events) All() iter.Seq[logfront.LogEvent] {
	return slices.Values(es)
}

// Subset returns the events whose logger name is exactly name, in their
// original relative order.
func (es Events) Subset(name string) Events {
	var out Events
	for _, e := range es {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}

// String renders one event per line.
func (es Events) String() string {
	var sb strings.Builder
	for i, e := range es {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// AssertionError reports that no captured event satisfied an expectation.
// The message ends with the full transcript of the events searched.
type AssertionError struct {
	Level       logfront.Level
	Expectation string
	Events      Events
}

func (e *AssertionError) Error() string {
	return "LogList does not contain " + e.Level.String() + " " + e.Expectation +
		"\nLog lines:\n" + e.Events.String()
}

func (es Events) check(level logfront.Level, expectation string, pred func(logfront.LogEvent) bool) error {
	if slices.ContainsFunc(es, pred) {
		return nil
	}
	return &AssertionError{Level: level, Expectation: expectation, Events: es}
}

// ShouldHave returns nil if some event has level and message text.
func (es Events) ShouldHave(level logfront.Level, text string) error {
	return es.check(level, text, func(e logfront.LogEvent) bool { return Is(e, level, text) })
}

// ShouldHaveContaining returns nil if some event has level and a message
// containing substr.
func (es Events) ShouldHaveContaining(level logfront.Level, substr string) error {
	return es.check(level, "containing "+substr, func(e logfront.LogEvent) bool {
		return IsContaining(e, level, substr)
	})
}

// ShouldHaveMatching returns nil if some event has level and a message
// matched by re.
func (es Events) ShouldHaveMatching(level logfront.Level, re *regexp.Regexp) error {
	return es.check(level, re.String(), func(e logfront.LogEvent) bool {
		return IsMatching(e, level, re)
	})
}

func (es Events) ShouldHaveTrace(text string) error { return es.ShouldHave(logfront.LevelTrace, text) }
func (es Events) ShouldHaveDebug(text string) error { return es.ShouldHave(logfront.LevelDebug, text) }
func (es Events) ShouldHaveInfo(text string) error  { return es.ShouldHave(logfront.LevelInfo, text) }
func (es Events) ShouldHaveWarn(text string) error  { return es.ShouldHave(logfront.LevelWarn, text) }
func (es Events) ShouldHaveError(text string) error { return es.ShouldHave(logfront.LevelError, text) }

func (es Events) ShouldHaveTraceContaining(substr string) error {
	return es.ShouldHaveContaining(logfront.LevelTrace, substr)
}

func (es Events) ShouldHaveDebugContaining(substr string) error {
	return es.ShouldHaveContaining(logfront.LevelDebug, substr)
}

func (es Events) ShouldHaveInfoContaining(substr string) error {
	return es.ShouldHaveContaining(logfront.LevelInfo, substr)
}

func (es Events) ShouldHaveWarnContaining(substr string) error {
	return es.ShouldHaveContaining(logfront.LevelWarn, substr)
}

func (es Events) ShouldHaveErrorContaining(substr string) error {
	return es.ShouldHaveContaining(logfront.LevelError, substr)
}

func (es Events) ShouldHaveTraceMatching(re *regexp.Regexp) error {
	return es.ShouldHaveMatching(logfront.LevelTrace, re)
}

func (es Events) ShouldHaveDebugMatching(re *regexp.Regexp) error {
	return es.ShouldHaveMatching(logfront.LevelDebug, re)
}

func (es Events) ShouldHaveInfoMatching(re *regexp.Regexp) error {
	return es.ShouldHaveMatching(logfront.LevelInfo, re)
}

func (es Events) ShouldHaveWarnMatching(re *regexp.Regexp) error {
	return es.ShouldHaveMatching(logfront.LevelWarn, re)
}

func (es Events) ShouldHaveErrorMatching(re *regexp.Regexp) error {
	return es.ShouldHaveMatching(logfront.LevelError, re)
}
