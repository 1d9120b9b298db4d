// FILE: lixenwraith/rlog/example/sink/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/rlog"
)

const logDirectory = "./temp_logs"

// main writes a few records through every appender kind
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- Running Appender Tour ---")
	for _, kind := range []rlog.AppenderType{
		rlog.AppenderBasicFile,
		rlog.AppenderBuffered,
		rlog.AppenderFile,
		rlog.AppenderConsole,
		rlog.AppenderNative,
	} {
		runPhase(kind)
	}

	fmt.Println("\n--- Writing disabled ---")
	c, err := rlog.NewBuilder().
		FilePath(filepath.Join(logDirectory, "disabled.log")).
		FileWritingAllowed(false).
		Build()
	if err != nil {
		fmt.Printf("build error: %v\n", err)
		return
	}
	c.Init(c.LogPath())
	c.RootLogger().Info("never reaches disk")
	c.DeleteLogsIfWritingNotAllowed()
	c.Close()
	fmt.Printf("dropped=%d\n", c.Stats().DroppedLogs)

	fmt.Printf("\nCheck the '%s' directory for log files.\n", logDirectory)
}

func runPhase(kind rlog.AppenderType) {
	fmt.Printf("\n--- %s ---\n", kind)
	path := filepath.Join(logDirectory, kind.String()+".log")
	c, err := rlog.NewBuilder().
		FilePath(path).
		Appender(kind).
		Level(rlog.LevelTrace).
		Build()
	if err != nil {
		fmt.Printf("build error: %v\n", err)
		return
	}
	c.Init(path)
	defer c.Close()

	l := c.GetLogger(kind.String())
	l.SetLevel(rlog.LevelTrace)
	l.Error("an error record")
	l.Warn("a warning record")
	l.Info("an info record")
	l.Trace("a trace record")
	c.Flush()
}
