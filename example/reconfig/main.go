// FILE: lixenwraith/rlog/example/reconfig/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rlog"
)

// Reconfigure the controller while a producer is logging; no buffered line may be lost
func main() {
	dir, err := os.MkdirTemp("", "rlog-reconfig")
	if err != nil {
		fmt.Printf("temp dir error: %v\n", err)
		return
	}

	c, err := rlog.NewController(nil)
	if err != nil {
		fmt.Printf("controller error: %v\n", err)
		return
	}
	c.Init(filepath.Join(dir, "app.log"))

	logger := c.RootLogger()
	var count atomic.Int64
	done := make(chan struct{})
	go func() {
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			logger.Info("Test log", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Trigger multiple reconfigurations rapidly
	for i := 0; i < 10; i++ {
		c.SetBufferSize(int64(i%5 + 1))
		if err := c.ApplyOverride(fmt.Sprintf("max_file_count=%d", i+1)); err != nil {
			fmt.Printf("override error: %v\n", err)
		}
		if i == 5 {
			c.Init(filepath.Join(dir, "moved.log"))
		}
		time.Sleep(10 * time.Millisecond)
	}

	close(done)
	c.Close()

	stats := c.Stats()
	fmt.Printf("attempted=%d bytes=%d flushes=%d dropped=%d\n",
		count.Load(), stats.BytesWritten, stats.Flushes, stats.DroppedLogs)
	fmt.Printf("logs in %s\n", dir)
}
