// FILE: lixenwraith/rlog/cmd/simple/main.go
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/lixenwraith/rlog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[rlog]
  file_path = "./simple_logs/simple.log"
  level = 5 # Debug
  appender = "buffered"
  buffer_size_mb = 1
  max_file_size_mb = 2
  max_file_count = 3
  sanitize_policy = "line"
  # Other settings use defaults
`

func main() {
	fmt.Println("--- Simple Controller Example ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config file: %v\n", err)
		os.Exit(1)
	}
	defer os.Remove(configFile)

	cfg, err := rlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	c, err := rlog.NewController(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create controller: %v\n", err)
		os.Exit(1)
	}
	c.Init(cfg.FilePath)
	fmt.Printf("Logging to %s\n", c.LogPath())

	app := c.GetLogger("app")
	app.Info("Application starting", "version", "1.0")
	app.Debug("multi\nline messages are escaped by the line policy")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker := c.GetLogger(fmt.Sprintf("worker-%d", id))
			for j := 0; j < 3; j++ {
				worker.Infof("job %d done", j)
			}
		}(i)
	}
	wg.Wait()

	app.Warn("Still buffered:", len(c.Buffered().GetBuffer()), "bytes")
	c.Flush()
	c.Close()

	stats := c.Stats()
	fmt.Printf("Wrote %d bytes in %d flushes\n", stats.BytesWritten, stats.Flushes)
}
