// FILE: lixenwraith/rlog/utility.go
package rlog

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "rlog: ") {
		format = "rlog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "OFF"
	case LevelFatal:
		return "FATAL"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "LEVEL(" + strconv.FormatInt(int64(l), 10) + ")"
	}
}

// Valid reports whether l is one of the defined levels
func (l Level) Valid() bool {
	return l >= LevelOff && l <= LevelTrace
}

// ParseLevel converts a level name or ordinal to a Level
func ParseLevel(levelStr string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(levelStr))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if !Level(n).Valid() {
			return 0, fmtErrorf("level out of range: %d (use 0-6)", n)
		}
		return Level(n), nil
	}
	switch s {
	case "off":
		return LevelOff, nil
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use off, fatal, error, warning, info, debug, trace)", levelStr)
	}
}

// reverseString reverses byte order; sentinels are ASCII
func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// trimMessage strips trailing whitespace and line endings
func trimMessage(msg string) string {
	return strings.TrimRight(msg, " \t\r\n")
}

// callerInfo returns file, line and function name of the frame skip levels above the caller
func callerInfo(skip int) (file string, line int, function string) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", 0, ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if i := strings.LastIndexByte(function, '.'); i >= 0 {
			function = function[i+1:]
		}
	}
	return file, line, function
}
