package console

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/trickstertwo/logfront"
)

type buffer struct{ b []byte }

func (buf *buffer) writeString(s string) { buf.b = append(buf.b, s...) }
func (buf *buffer) writeByte(c byte)     { buf.b = append(buf.b, c) }

const maxPooledBuf = 64 << 10

var bufPool = sync.Pool{
	New: func() any { return &buffer{b: make([]byte, 0, 1024)} },
}

func getBuf() *buffer {
	buf := bufPool.Get().(*buffer)
	buf.b = buf.b[:0]
	return buf
}

func putBuf(buf *buffer) {
	if cap(buf.b) > maxPooledBuf {
		return
	}
	bufPool.Put(buf)
}

var levelColour = map[logfront.Level]string{
	logfront.LevelTrace: "\x1b[90m",
	logfront.LevelDebug: "\x1b[36m",
	logfront.LevelInfo:  "\x1b[32m",
	logfront.LevelWarn:  "\x1b[33m",
	logfront.LevelError: "\x1b[31m",
}

const colourReset = "\x1b[0m"

// writeTextLine renders logfmt-style key=value pairs.
func writeTextLine(buf *buffer, l *line, layout string, colour bool) {
	buf.writeString("ts=")
	appendTime(buf, l.at, layout)

	buf.writeString(" level=")
	code, ok := levelColour[l.level]
	if colour && ok {
		buf.writeString(code)
	}
	buf.writeString(l.level.String())
	if colour && ok {
		buf.writeString(colourReset)
	}

	if l.name != "" {
		buf.writeString(" logger=")
		appendBare(buf, l.name)
	}
	buf.writeString(" msg=")
	appendBare(buf, l.msg)

	for i := range l.fields {
		f := &l.fields[i]
		buf.writeByte(' ')
		buf.writeString(f.K)
		buf.writeByte('=')
		appendTextValue(buf, f)
	}
}

func appendTextValue(buf *buffer, f *logfront.Field) {
	if appendNumeric(buf, f) {
		return
	}
	switch f.Kind {
	case logfront.KindString:
		appendBare(buf, f.Str)
	case logfront.KindFloat64:
		switch {
		case math.IsNaN(f.Float64):
			buf.writeString("NaN")
		case math.IsInf(f.Float64, 1):
			buf.writeString("+Inf")
		case math.IsInf(f.Float64, -1):
			buf.writeString("-Inf")
		default:
			buf.b = strconv.AppendFloat(buf.b, f.Float64, 'g', -1, 64)
		}
	case logfront.KindDuration:
		buf.writeString(f.Dur.String())
	case logfront.KindTime:
		appendTime(buf, f.Time, "")
	case logfront.KindBytes:
		buf.writeString("len:")
		buf.b = strconv.AppendInt(buf.b, int64(len(f.Bytes)), 10)
	case logfront.KindError:
		if f.Err == nil {
			buf.writeString("null")
			return
		}
		appendQuoted(buf, f.Err.Error())
	case logfront.KindAny:
		if f.Any == nil {
			buf.writeString("null")
			return
		}
		data, err := json.Marshal(f.Any)
		if err != nil {
			buf.writeString("unknown")
			return
		}
		appendBare(buf, string(data))
	default:
		buf.writeString("null")
	}
}

// appendBare writes s unquoted unless it is empty or contains a byte that
// would break key=value parsing.
func appendBare(buf *buffer, s string) {
	if s == "" {
		buf.writeString(`""`)
		return
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == ' ' || c == '"' || c == '=' {
			appendQuoted(buf, s)
			return
		}
	}
	buf.writeString(s)
}

// writeJSONLine renders one JSON object; keys follow the text layout.
func writeJSONLine(buf *buffer, l *line, layout string) {
	buf.writeString(`{"ts":"`)
	appendTime(buf, l.at, layout)
	buf.writeString(`","level":"`)
	buf.writeString(l.level.String())
	buf.writeByte('"')

	if l.name != "" {
		buf.writeString(`,"logger":`)
		appendQuoted(buf, l.name)
	}
	buf.writeString(`,"msg":`)
	appendQuoted(buf, l.msg)

	for i := range l.fields {
		f := &l.fields[i]
		buf.writeByte(',')
		appendQuoted(buf, f.K)
		buf.writeByte(':')
		appendJSONValue(buf, f)
	}
	buf.writeByte('}')
}

func appendJSONValue(buf *buffer, f *logfront.Field) {
	if appendNumeric(buf, f) {
		return
	}
	switch f.Kind {
	case logfront.KindString:
		appendQuoted(buf, f.Str)
	case logfront.KindFloat64:
		// JSON has no NaN or Inf.
		if math.IsNaN(f.Float64) || math.IsInf(f.Float64, 0) {
			buf.writeString("null")
			return
		}
		buf.b = strconv.AppendFloat(buf.b, f.Float64, 'g', -1, 64)
	case logfront.KindDuration:
		appendQuoted(buf, f.Dur.String())
	case logfront.KindTime:
		buf.writeByte('"')
		appendTime(buf, f.Time, "")
		buf.writeByte('"')
	case logfront.KindBytes:
		buf.writeByte('"')
		buf.b = base64.StdEncoding.AppendEncode(buf.b, f.Bytes)
		buf.writeByte('"')
	case logfront.KindError:
		if f.Err == nil {
			buf.writeString("null")
			return
		}
		appendQuoted(buf, f.Err.Error())
	case logfront.KindAny:
		data, err := json.Marshal(f.Any)
		if err != nil {
			appendQuoted(buf, "marshal_error")
			return
		}
		buf.b = append(buf.b, data...)
	default:
		buf.writeString("null")
	}
}

// appendNumeric handles the kinds whose text and JSON forms are identical.
func appendNumeric(buf *buffer, f *logfront.Field) bool {
	switch f.Kind {
	case logfront.KindInt64:
		buf.b = strconv.AppendInt(buf.b, f.Int64, 10)
	case logfront.KindUint64:
		buf.b = strconv.AppendUint(buf.b, f.Uint64, 10)
	case logfront.KindBool:
		buf.b = strconv.AppendBool(buf.b, f.Bool)
	default:
		return false
	}
	return true
}

func appendTime(buf *buffer, t time.Time, layout string) {
	if layout == "" {
		layout = time.RFC3339Nano
	}
	buf.b = t.UTC().AppendFormat(buf.b, layout)
}

const hexDigits = "0123456789abcdef"

// appendQuoted writes s as a JSON string. Invalid UTF-8 becomes U+FFFD.
func appendQuoted(buf *buffer, s string) {
	buf.writeByte('"')
	last := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, n := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && n == 1 {
				buf.writeString(s[last:i])
				buf.writeString(`\ufffd`)
				i++
				last = i
				continue
			}
			i += n
			continue
		}
		if c >= 0x20 && c != '"' && c != '\\' {
			i++
			continue
		}

		buf.writeString(s[last:i])
		switch c {
		case '"', '\\':
			buf.b = append(buf.b, '\\', c)
		case '\n':
			buf.writeString(`\n`)
		case '\r':
			buf.writeString(`\r`)
		case '\t':
			buf.writeString(`\t`)
		default:
			buf.b = append(buf.b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		i++
		last = i
	}
	buf.writeString(s[last:])
	buf.writeByte('"')
}
