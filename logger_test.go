// FILE: lixenwraith/rlog/logger_test.go
package rlog

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerRegistry(t *testing.T) {
	c, _ := createTestController(t, nil)

	a := c.GetLogger("a")
	require.NotNil(t, a)
	assert.Same(t, a, c.GetLogger("a"))
	assert.NotSame(t, a, c.GetLogger("b"))
	assert.Nil(t, c.GetLogger(""))

	root := c.RootLogger()
	assert.Equal(t, "", root.Name())
	assert.Same(t, root, c.RootLogger())

	names := c.Loggers()
	sort.Strings(names)
	assert.Equal(t, []string{"", "a", "b"}, names)
	assert.Same(t, c, a.Controller())
}

func TestGetLoggerConcurrent(t *testing.T) {
	c, _ := createTestController(t, nil)

	var wg sync.WaitGroup
	got := make([]*Logger, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = c.GetLogger("shared")
		}(i)
	}
	wg.Wait()

	for _, l := range got {
		assert.Same(t, got[0], l)
	}
}

func TestLoggerLevel(t *testing.T) {
	c, path := createTestController(t, nil)
	l := c.GetLogger("lvl")

	assert.Equal(t, LevelDebug, l.Level())
	assert.True(t, l.DebugEnabled())
	assert.False(t, l.TraceEnabled())
	assert.False(t, l.Enabled(LevelOff))

	l.Trace("hidden by logger")
	l.SetLevel(LevelTrace)
	assert.True(t, l.TraceEnabled())
	l.Trace("shown")

	c.SetLevel(LevelWarning)
	l.Info("hidden by controller")
	l.Error("still shown")
	c.Flush()

	content := readFile(t, path)
	assert.NotContains(t, content, "hidden")
	assert.Contains(t, content, "shown")
	assert.Contains(t, content, "still shown")
}

func TestLoggerLevelSelection(t *testing.T) {
	c, path := createTestController(t, nil)
	l := c.GetLogger("sel")
	l.SetLevel(LevelTrace)

	l.Fatal("f")
	l.Error("e")
	l.Warn("w")
	l.Info("i")
	l.Debug("d")
	l.Trace("t")
	c.Flush()

	lines := nonEmptyLines(readFile(t, path))
	require.Len(t, lines, 6)
	for i, want := range []string{"FATAL", "ERROR", "WARN ", "INFO ", "DEBUG", "TRACE"} {
		assert.Contains(t, lines[i], " "+want+" [", lines[i])
	}
}

func TestLoggerFormatsArgsAndPrintf(t *testing.T) {
	c, path := createTestController(t, nil)
	l := c.GetLogger("fmt")

	l.Info("count", 3, true)
	l.Infof("user %s has %d items", "ana", 7)
	c.Flush()

	lines := nonEmptyLines(readFile(t, path))
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "- count 3 true"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "- user ana has 7 items"), lines[1])
}

func TestLoggerTrimsTrailingWhitespace(t *testing.T) {
	c, _ := createTestController(t, nil)
	rec := &recordingAppender{}
	c.SetAppender(rec)
	l := c.GetLogger("trim")

	l.Info("padded  \n")
	l.Log(LevelInfo, "x.go", 9, "fn", "explicit\r\n")

	require.Len(t, rec.records, 2)
	assert.Equal(t, "padded", rec.records[0].Message)
	assert.Equal(t, "explicit", rec.records[1].Message)
	assert.Equal(t, "x.go", rec.records[1].File)
	assert.Equal(t, 9, rec.records[1].Line)
}

func TestLoggerCallerPosition(t *testing.T) {
	c, path := createTestController(t, nil)

	c.GetLogger("pos").Warnf("where")
	c.Flush()

	line := readFile(t, path)
	assert.Contains(t, line, "logger_test.go(")
	assert.Contains(t, line, "[pos] [TestLoggerCallerPosition] - where")
}

func TestLineSanitizePolicyEscapesNewlines(t *testing.T) {
	c, path := createTestController(t, func(cfg *Config) {
		cfg.SanitizePolicy = "line"
	})

	c.GetLogger("s").Info("one\ntwo")
	c.Flush()

	lines := nonEmptyLines(readFile(t, path))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "one")
	assert.Contains(t, lines[0], "two")
}

func TestPoolLogger(t *testing.T) {
	c, path := createTestController(t, nil)

	PoolLogger(c.GetLogger("pool"))("task %s panicked", "t1")
	PoolLogger(nil)("ignored")
	c.Flush()

	content := readFile(t, path)
	assert.Contains(t, content, " ERROR [")
	assert.Contains(t, content, "task t1 panicked")
}

func TestSharedInstance(t *testing.T) {
	ResetInstance()
	t.Cleanup(ResetInstance)

	path := filepath.Join(t.TempDir(), "shared.log")
	Initialize(path)
	assert.Same(t, Instance(), Instance())
	assert.Equal(t, path, Instance().LogPath())

	l := GetLogger("pkg")
	require.NotNil(t, l)
	assert.Nil(t, GetLogger(""))
	SetLevel(l, LevelTrace)
	assert.Equal(t, LevelTrace, GetLevel(l))
	assert.Equal(t, LevelOff, GetLevel(nil))
	SetLevel(nil, LevelTrace)

	SetThreadIDHandler(func() string { return "main" })
	Log(l, LevelInfo, "pkg.go", 1, "fn", "through package funcs")
	Log(nil, LevelInfo, "pkg.go", 1, "fn", "ignored")
	RootLogger().Info("root line")
	ClearThreadIDHandler()
	Flush()

	content := readFile(t, path)
	assert.Contains(t, content, "[main] [pkg.go(1)")
	assert.Contains(t, content, "through package funcs")
	assert.Contains(t, content, "root line")
	assert.NotContains(t, content, "ignored")

	assert.Equal(t, "plain", ReplacePIIData("plain"))
}

func TestSetInstanceClosesPrevious(t *testing.T) {
	t.Cleanup(ResetInstance)

	old, _ := createTestController(t, nil)
	SetInstance(old)
	next, _ := createTestController(t, nil)
	SetInstance(next)

	assert.True(t, old.state.Closed.Load())
	assert.False(t, next.state.Closed.Load())
	assert.Same(t, next, Instance())
}
