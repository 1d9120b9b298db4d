// FILE: lixenwraith/rlog/cmd/rlogstress/main.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/rlog"
	"github.com/lixenwraith/rlog/pool"
)

var levels = []rlog.Level{
	rlog.LevelTrace,
	rlog.LevelDebug,
	rlog.LevelInfo,
	rlog.LevelWarning,
	rlog.LevelError,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := createApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:  "rlogstress",
		Usage: "drive the rlog file pipeline with concurrent producers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML file with an [rlog] table",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "log directory",
				Value: "./logs",
			},
			&cli.StringFlag{
				Name:  "appender",
				Usage: "basic_file, buffered, file, console or native",
				Value: rlog.AppenderBuffered.String(),
			},
			&cli.IntFlag{
				Name:  "producers",
				Usage: "concurrent producer goroutines",
				Value: 16,
			},
			&cli.IntFlag{
				Name:  "records",
				Usage: "records per producer",
				Value: 5000,
			},
			&cli.IntFlag{
				Name:  "max-message",
				Usage: "upper bound of random message size in bytes",
				Value: 2000,
			},
			&cli.IntFlag{
				Name:  "pool-max",
				Usage: "pool workers used for urgent flushes",
				Value: 2,
			},
			&cli.BoolFlag{
				Name:  "pii",
				Usage: "redact a field of every record",
			},
		},
		Action: runStress,
	}
}

func runStress(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := rlog.NewController(cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	c.Init(cfg.FilePath)

	logger := c.GetLogger("stress")
	logger.SetLevel(rlog.LevelTrace)

	flushers := pool.New(1, int(cmd.Int("pool-max")), 5*time.Second,
		pool.WithName("flush"),
		pool.WithLogger(rlog.PoolLogger(c.GetLogger("pool"))),
	)
	defer flushers.Shutdown()

	producers := int(cmd.Int("producers"))
	records := int(cmd.Int("records"))
	maxMessage := int(cmd.Int("max-message"))
	redact := cmd.Bool("pii")

	fmt.Printf("rlogstress: %d producers x %d records -> %s (%s)\n", producers, records, cfg.FilePath, cfg.Appender)

	var emitted atomic.Int64
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(p)))
			for i := 0; i < records; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				level := levels[rng.Intn(len(levels))]
				user := fmt.Sprintf("user-%d", rng.Intn(100))
				if redact {
					user = c.ReplacePIIData(user)
				}
				msg := randomMessage(rng, rng.Intn(maxMessage)+10)
				logger.Log(level, "main.go", i, "producer", fmt.Sprintf("p=%d seq=%d user=%s %s", p, i, user, msg))
				emitted.Add(1)

				if level == rlog.LevelError {
					_ = flushers.SubmitUrgent(pool.Named("flush", c.Flush))
				}
			}
			return nil
		})
	}
	err = g.Wait()

	_ = flushers.SubmitAndWait(pool.TaskFunc(c.Flush))
	elapsed := time.Since(start)

	stats := c.Stats()
	fmt.Printf("emitted=%d elapsed=%v rate=%.0f/s\n", emitted.Load(), elapsed.Round(time.Millisecond),
		float64(emitted.Load())/elapsed.Seconds())
	fmt.Printf("bytes=%d rotations=%d flushes=%d warnings=%d dropped=%d\n",
		stats.BytesWritten, stats.Rotations, stats.Flushes, stats.Warnings, stats.DroppedLogs)

	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// loadConfig merges the optional TOML file with command line flags
func loadConfig(cmd *cli.Command) (*rlog.Config, error) {
	cfg := rlog.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		loaded, err := rlog.NewConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.IsSet("dir") || cmd.String("config") == "" {
		cfg.FilePath = filepath.Join(cmd.String("dir"), "stress.log")
	}
	if cmd.IsSet("appender") || cmd.String("config") == "" {
		cfg.Appender = cmd.String("appender")
	}
	cfg.Level = int64(rlog.LevelTrace)
	return cfg, nil
}

func randomMessage(rng *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rng.Intn(len(chars))])
	}
	return sb.String()
}
