package logtest

import (
	"regexp"
	"strings"

	"github.com/trickstertwo/logfront"
)

// Is reports whether e has the given level and a message exactly equal to
// text.
func Is(e logfront.LogEvent, level logfront.Level, text string) bool {
	return e.Level() == level && e.Message() == text
}

// IsContaining reports whether e has the given level and a message
// containing substr.
func IsContaining(e logfront.LogEvent, level logfront.Level, substr string) bool {
	return e.Level() == level && strings.Contains(e.Message(), substr)
}

// IsMatching reports whether e has the given level and re matches anywhere
// in its message.
func IsMatching(e logfront.LogEvent, level logfront.Level, re *regexp.Regexp) bool {
	return e.Level() == level && re.MatchString(e.Message())
}

func IsTrace(e logfront.LogEvent, text string) bool { return Is(e, logfront.LevelTrace, text) }
func IsDebug(e logfront.LogEvent, text string) bool { return Is(e, logfront.LevelDebug, text) }
func IsInfo(e logfront.LogEvent, text string) bool  { return Is(e, logfront.LevelInfo, text) }
func IsWarn(e logfront.LogEvent, text string) bool  { return Is(e, logfront.LevelWarn, text) }
func IsError(e logfront.LogEvent, text string) bool { return Is(e, logfront.LevelError, text) }

func IsTraceContaining(e logfront.LogEvent, substr string) bool {
	return IsContaining(e, logfront.LevelTrace, substr)
}

func IsDebugContaining(e logfront.LogEvent, substr string) bool {
	return IsContaining(e, logfront.LevelDebug, substr)
}

func IsInfoContaining(e logfront.LogEvent, substr string) bool {
	return IsContaining(e, logfront.LevelInfo, substr)
}

func IsWarnContaining(e logfront.LogEvent, substr string) bool {
	return IsContaining(e, logfront.LevelWarn, substr)
}

func IsErrorContaining(e logfront.LogEvent, substr string) bool {
	return IsContaining(e, logfront.LevelError, substr)
}

func IsTraceMatching(e logfront.LogEvent, re *regexp.Regexp) bool {
	return IsMatching(e, logfront.LevelTrace, re)
}

func IsDebugMatching(e logfront.LogEvent, re *regexp.Regexp) bool {
	return IsMatching(e, logfront.LevelDebug, re)
}

func IsInfoMatching(e logfront.LogEvent, re *regexp.Regexp) bool {
	return IsMatching(e, logfront.LevelInfo, re)
}

func IsWarnMatching(e logfront.LogEvent, re *regexp.Regexp) bool {
	return IsMatching(e, logfront.LevelWarn, re)
}

func IsErrorMatching(e logfront.LogEvent, re *regexp.Regexp) bool {
	return IsMatching(e, logfront.LevelError, re)
}
