// FILE: lixenwraith/rlog/formatter/formatter.go
package formatter

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/rlog/sanitizer"
)

// TimestampFormat renders local time with millisecond precision, e.g. 2024-01-31 13:04:05,042
const TimestampFormat = "2006-01-02 15:04:05,000"

// sourceWidth is the fixed width of the "file(line)" column
const sourceWidth = 40

// Level ordinals, mirrored from the root package to avoid an import cycle
const (
	levelOff int64 = iota
	levelFatal
	levelError
	levelWarning
	levelInfo
	levelDebug
	levelTrace
)

// Record is a single log event ready for rendering
type Record struct {
	Time     time.Time
	Level    int64
	File     string
	Line     int
	Logger   string
	Function string
	Message  string
}

// ThreadIDHandler renders the identity of the calling goroutine
type ThreadIDHandler func() string

// Formatter renders records into log lines. Safe for concurrent use.
type Formatter struct {
	mu        sync.Mutex
	sanitizer *sanitizer.Sanitizer
	format    string
	threadID  ThreadIDHandler
	now       func() time.Time
	buf       []byte
}

// New creates a formatter with the provided sanitizer
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New() // Default passthrough sanitizer
	}
	return &Formatter{
		sanitizer: san,
		format:    "raw",
		threadID:  DefaultThreadID,
		now:       time.Now,
		buf:       make([]byte, 0, 256),
	}
}

// Type sets the argument rendering format ("raw" or "txt")
func (f *Formatter) Type(format string) *Formatter {
	f.mu.Lock()
	f.format = format
	f.mu.Unlock()
	return f
}

// Clock overrides the time source, used when a record carries no timestamp
func (f *Formatter) Clock(now func() time.Time) *Formatter {
	f.mu.Lock()
	if now != nil {
		f.now = now
	}
	f.mu.Unlock()
	return f
}

// SetThreadIDHandler installs a thread-id decoration hook; nil restores the default
func (f *Formatter) SetThreadIDHandler(h ThreadIDHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h == nil {
		f.threadID = DefaultThreadID
		return
	}
	f.threadID = h
}

// Format renders a record as
// <timestamp> <LEVEL> [<thread>] [<file(line)>] [<logger>] [<function>] - <message>\n
func (f *Formatter) Format(r Record) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	ts := r.Time
	if ts.IsZero() {
		ts = f.now()
	}

	f.buf = f.buf[:0]
	f.buf = ts.Local().AppendFormat(f.buf, TimestampFormat)
	f.buf = append(f.buf, ' ')
	f.buf = append(f.buf, LevelToString(r.Level)...)
	f.buf = append(f.buf, " ["...)
	f.buf = append(f.buf, f.threadID()...)
	f.buf = append(f.buf, "] ["...)
	f.buf = append(f.buf, PathAndLine(r.File, r.Line)...)
	f.buf = append(f.buf, "] ["...)
	f.buf = append(f.buf, r.Logger...)
	f.buf = append(f.buf, "] ["...)
	f.buf = append(f.buf, r.Function...)
	f.buf = append(f.buf, "] - "...)
	f.buf = append(f.buf, f.sanitizer.Sanitize(r.Message)...)
	f.buf = append(f.buf, '\n')

	out := make([]byte, len(f.buf))
	copy(out, f.buf)
	return out
}

// FormatArgs renders arguments as space-separated values
func (f *Formatter) FormatArgs(args ...any) string {
	f.mu.Lock()
	format := f.format
	f.mu.Unlock()
	return Sprint(format, args...)
}

// Sprint renders arguments as space-separated values using a fresh serializer
func Sprint(format string, args ...any) string {
	serializer := sanitizer.NewSerializer(format, nil)
	buf := make([]byte, 0, 64)
	for i, arg := range args {
		convertValue(&buf, arg, serializer, i > 0)
	}
	return string(buf)
}

// LevelToString converts level ordinals to their padded column form
func LevelToString(level int64) string {
	switch level {
	case levelOff:
		return "OFF"
	case levelFatal:
		return "FATAL"
	case levelError:
		return "ERROR"
	case levelWarning:
		return "WARN "
	case levelInfo:
		return "INFO "
	case levelDebug:
		return "DEBUG"
	case levelTrace:
		return "TRACE"
	default:
		return ""
	}
}

// PathAndLine renders "file(line)" as exactly 40 characters: the tail when longer, space padded when shorter
func PathAndLine(file string, line int) string {
	s := file + "(" + strconv.Itoa(line) + ")"
	if len(s) > sourceWidth {
		return s[len(s)-sourceWidth:]
	}
	if len(s) < sourceWidth {
		return s + string(bytes.Repeat([]byte{' '}, sourceWidth-len(s)))
	}
	return s
}

// DefaultThreadID renders the current goroutine id as a zero padded hex word
func DefaultThreadID() string {
	return fmt.Sprintf("0x%016x", goroutineID())
}

// goroutineID parses the id out of the "goroutine N [" stack header
func goroutineID() uint64 {
	var b [64]byte
	n := runtime.Stack(b[:], false)
	s := b[:n]
	s = bytes.TrimPrefix(s, []byte("goroutine "))
	if i := bytes.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, err := strconv.ParseUint(string(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// convertValue provides unified type conversion
func convertValue(buf *[]byte, v any, serializer *sanitizer.Serializer, needsSpace bool) {
	if needsSpace && len(*buf) > 0 {
		*buf = append(*buf, ' ')
	}

	switch val := v.(type) {
	case string:
		serializer.WriteString(buf, val)

	case []byte:
		serializer.WriteString(buf, string(val))

	case rune:
		var runeStr [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeStr[:], val)
		serializer.WriteString(buf, string(runeStr[:n]))

	case int:
		serializer.WriteNumber(buf, strconv.Itoa(val))

	case int64:
		serializer.WriteNumber(buf, strconv.FormatInt(val, 10))

	case uint:
		serializer.WriteNumber(buf, strconv.FormatUint(uint64(val), 10))

	case uint64:
		serializer.WriteNumber(buf, strconv.FormatUint(val, 10))

	case float32:
		serializer.WriteNumber(buf, strconv.FormatFloat(float64(val), 'f', -1, 32))

	case float64:
		serializer.WriteNumber(buf, strconv.FormatFloat(val, 'f', -1, 64))

	case bool:
		serializer.WriteBool(buf, val)

	case nil:
		serializer.WriteNil(buf)

	case time.Time:
		serializer.WriteString(buf, val.Format(TimestampFormat))

	case error:
		serializer.WriteString(buf, val.Error())

	case fmt.Stringer:
		serializer.WriteString(buf, val.String())

	default:
		serializer.WriteComplex(buf, val)
	}
}
