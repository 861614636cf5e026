package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/config"
	"github.com/moradiya84/low-latency-logger"
)

const configFile = "simple_config.toml"
const configBasePath = "logging"

var tomlContent = `
# Example simple_config.toml
[logging]
  level = 1 # LevelDebug (levels are stored as their integer ordinal)
  directory = "./simple_logs"
  format = "txt"
  extension = "log"
  queue_capacity = 1024
  flush_interval_ms = 100
  trace_depth = 0
  retention_period_hrs = 0.0
  retention_check_mins = 60.0
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	cfg := config.New()
	if err := cfg.Load(configFile, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
	}

	logger := llog.NewLogger()
	if err := logger.Init(cfg, configBasePath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	if err := cfg.Save(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save configuration to '%s': %v\n", configFile, err)
	} else {
		fmt.Printf("Configuration saved to: %s\n", configFile)
	}

	logger.Debug(fmt.Sprintf("This is a debug message. user_id=%d", 123))
	logger.Info("Application starting...")
	logger.Warn(fmt.Sprintf("Potential issue detected. threshold=%.2f", 0.95))
	logger.Error(fmt.Sprintf("An error occurred! code=%d", 500))

	// Each goroutine gets its own Logger instance writing its own file:
	// the core's SPSC queue accepts exactly one producer thread for its
	// whole lifetime, so concurrent producers must never share one
	// Logger — this is the "one logger per producing thread" pattern.
	baseCfg := logger.GetConfig()
	var wg sync.WaitGroup
	var goroutineLoggers [2]*llog.Logger
	for i := 0; i < 2; i++ {
		gCfg := baseCfg.Clone()
		gCfg.Name = fmt.Sprintf("%s_g%d", baseCfg.Name, i)
		gLogger := llog.NewLogger()
		if err := gLogger.ApplyConfig(gCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to configure goroutine logger %d: %v\n", i, err)
			continue
		}
		if err := gLogger.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start goroutine logger %d: %v\n", i, err)
			continue
		}
		goroutineLoggers[i] = gLogger

		wg.Add(1)
		go func(id int, l *llog.Logger) {
			defer wg.Done()
			l.Info(fmt.Sprintf("Goroutine started id=%d", id))
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			l.Info(fmt.Sprintf("Goroutine finished id=%d", id))
		}(i, gLogger)
	}

	wg.Wait()
	fmt.Println("Goroutines finished.")

	for i, gl := range goroutineLoggers {
		if gl == nil {
			continue
		}
		if err := gl.Shutdown(2 * time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Goroutine logger %d shutdown error: %v\n", i, err)
		}
	}

	fmt.Println("Shutting down logger...")
	if err := logger.Shutdown(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in './simple_logs' and the saved config '%s'.\n", configFile)
}
