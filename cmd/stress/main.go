package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/config"
	"github.com/moradiya84/low-latency-logger"
	"golang.org/x/sync/errgroup"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 2000
	numWorkers     = 64
)

const configFile = "stress_config.toml"
const configBasePath = "logstress"

var tomlContent = `
# Example stress_config.toml
[logstress]
  level = 1 # LevelDebug (levels are stored as their integer ordinal)
  name = "stress_test"
  directory = "./logs"
  format = "txt"
  extension = "log"
  queue_capacity = 65536
  max_size_mb = 1
  max_total_size_mb = 20
  min_disk_free_mb = 50
  flush_interval_ms = 50
  trace_depth = 0
  retention_period_hrs = 0.0028
  retention_check_mins = 0.084
`

var levels = []llog.Level{
	llog.LevelDebug,
	llog.LevelInfo,
	llog.LevelWarn,
	llog.LevelError,
}

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst drives one worker's share of traffic through its own
// dedicated Logger instance. The SPSC queue underneath a Logger
// accepts exactly one producer thread for its entire lifetime; giving
// each worker goroutine its own Logger (rather than sharing one
// across goroutines) is the "per-producing-thread instance" pattern
// the core requires for concurrent producers.
func logBurst(workerLogger *llog.Logger, workerID, burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msgSize := rand.Intn(maxMessageSize) + 10
		msg := generateRandomMessage(msgSize)
		workerLogger.Log(level, fmt.Sprintf("wkr=%d bst=%d seq=%d rnd=%d %s",
			workerID, burstID, i, rand.Int63(), msg))
	}
}

// newWorkerLogger builds one Logger per stress worker, all writing
// into distinct files under the same directory so no two producer
// threads ever contend for one queue.
func newWorkerLogger(base *llog.Config, workerID int) (*llog.Logger, error) {
	cfg := base.Clone()
	cfg.Name = fmt.Sprintf("%s_w%02d", base.Name, workerID)

	l := llog.NewLogger()
	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if err := l.Start(); err != nil {
		return nil, err
	}
	return l, nil
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created dummy config file: %s\n", configFile)
	logsDir := "./logs"
	_ = os.RemoveAll(logsDir)

	cfg := config.New()
	if err := cfg.Load(configFile, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v.\n", err)
		os.Exit(1)
	}

	bootstrap := llog.NewLogger()
	if err := bootstrap.Init(cfg, configBasePath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	baseConfig := bootstrap.GetConfig()
	bootstrap.Shutdown()
	fmt.Printf("Logger config loaded. Logs will be written to: %s\n", logsDir)

	if err := cfg.Save(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save configuration to '%s': %v\n", configFile, err)
	} else {
		fmt.Printf("Configuration saved to: %s\n", configFile)
	}

	workerLoggers := make([]*llog.Logger, numWorkers)
	for i := 0; i < numWorkers; i++ {
		wl, err := newWorkerLogger(baseConfig, i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start worker %d logger: %v\n", i, err)
			os.Exit(1)
		}
		workerLoggers[i] = wl
	}

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	burstChan := make(chan int, numWorkers)
	completedBursts := atomic.Int64{}

	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		workerID := i
		workerLogger := workerLoggers[i]
		g.Go(func() error {
			for {
				select {
				case burstID, ok := <-burstChan:
					if !ok {
						return nil
					}
					logBurst(workerLogger, workerID, burstID)
					completed := completedBursts.Add(1)
					if completed%10 == 0 || completed == totalBursts {
						fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
					}
				case <-gCtx.Done():
					return nil
				}
			}
		})
	}

	startTime := time.Now()
feed:
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-ctx.Done():
			fmt.Println("\n[Signal Received] Halting burst submission.")
			break feed
		}
	}
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	g.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	fmt.Println("Shutting down worker loggers (allowing up to 10s each)...")
	for i, wl := range workerLoggers {
		if err := wl.Shutdown(10 * time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Worker %d logger shutdown error: %v\n", i, err)
		}
	}
	fmt.Println("Loggers shut down.")

	fmt.Printf("Check log files in '%s' and the saved config '%s'.\n", logsDir, configFile)
}
