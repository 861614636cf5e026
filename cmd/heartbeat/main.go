package main

import (
	"fmt"
	"os"
	"time"

	"github.com/moradiya84/low-latency-logger"
)

func main() {
	if err := os.MkdirAll("./logs", 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create test logs directory: %v\n", err)
		os.Exit(1)
	}

	levels := []struct {
		level       int64
		description string
	}{
		{0, "Heartbeats disabled"},
		{1, "PROC heartbeats only"},
		{2, "PROC+DISK heartbeats"},
		{3, "PROC+DISK+SYS heartbeats"},
		{2, "PROC+DISK heartbeats (reducing from 3)"},
		{1, "PROC heartbeats only (reducing from 2)"},
		{0, "Heartbeats disabled (final)"},
	}

	logger := llog.NewLogger()

	for _, levelConfig := range levels {
		overrides := []string{
			"directory=./logs",
			"level=debug",
			"format=txt",
			"heartbeat_interval_s=5",
			fmt.Sprintf("heartbeat_level=%d", levelConfig.level),
		}

		if err := logger.InitWithDefaults(overrides...); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n--- Testing heartbeat level %d: %s ---\n", levelConfig.level, levelConfig.description)
		logger.Info(fmt.Sprintf("Heartbeat test started level=%d desc=%s", levelConfig.level, levelConfig.description))

		for j := 0; j < 10; j++ {
			logger.Debug(fmt.Sprintf("Debug test log iteration=%d level_test=%d", j, levelConfig.level))
			logger.Info(fmt.Sprintf("Info test log iteration=%d level_test=%d", j, levelConfig.level))
			logger.Warn(fmt.Sprintf("Warning test log iteration=%d level_test=%d", j, levelConfig.level))
			logger.Error(fmt.Sprintf("Error test log iteration=%d level_test=%d", j, levelConfig.level))
			time.Sleep(100 * time.Millisecond)
		}

		waitTime := 6 * time.Second
		fmt.Printf("Waiting %v for heartbeats to generate...\n", waitTime)
		time.Sleep(waitTime)

		logger.Info(fmt.Sprintf("Heartbeat test completed for level=%d", levelConfig.level))
	}

	if err := logger.Shutdown(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to shut down logger: %v\n", err)
	}

	fmt.Println("\nHeartbeat test program completed successfully")
	fmt.Println("Check logs directory for generated log files")
}
