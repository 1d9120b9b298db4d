// FILE: lixenwraith/rlog/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/rlog"
	"github.com/lixenwraith/rlog/compat"
)

func main() {
	// Buffered appender, flushed on every error line by the level detector below
	c, err := rlog.NewBuilder().
		FilePath("/var/log/fasthttp/http.log").
		BufferSizeMB(1).
		MaxFileCount(3).
		Build()
	if err != nil {
		panic(err)
	}
	defer c.Close()
	c.Init(c.LogPath())

	logger := c.GetLogger("http")

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(rlog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			logger.Debugf("%s %s", ctx.Method(), ctx.Path())
			ctx.SetContentType("text/plain")
			fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
		},
		Logger: fasthttpAdapter,

		// Other server settings
		Name:         "MyServer",
		Concurrency:  fasthttp.DefaultConcurrency,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		TCPKeepalive: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func customLevelDetector(msg string) rlog.Level {
	// Inspect specific fasthttp message patterns
	if strings.Contains(msg, "connection cannot be served") {
		return rlog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return rlog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
