package logfront

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Level mirrors slog numeric semantics and extends with Trace (-8).
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

var levelNames = []string{"trace", "debug", "info", "warn", "error"}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "LEVEL(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel parses a case-insensitive level name. "warning" is accepted
// as an alias for warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return 0, errors.Wrapf(ErrUnknownLevel, "%q", s)
}

// AllLevelStrings returns the accepted level names, lowest first.
func AllLevelStrings() []string {
	out := make([]string, len(levelNames))
	copy(out, levelNames)
	return out
}
