// FILE: main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/moradiya84/low-latency-logger"
)

const (
	logDirectory = "./temp_logs"
	logInterval  = 200 * time.Millisecond
)

func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}
	if err := os.MkdirAll(logDirectory, 0755); err != nil {
		fmt.Printf("Fatal: could not create log directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("--- Running Logger Test Suite ---")
	fmt.Printf("! All file-based logs will be in the '%s' directory.\n\n", logDirectory)

	fmt.Println("--- SCENARIO 1: Testing configurations in isolation (new logger per test) ---")
	testFileOnly()
	testStdoutOnly()
	testStderrOnly()
	testNoOutput()

	fmt.Println("\n--- SCENARIO 2: Testing reconfiguration on a single logger instance ---")
	testReconfigurationTransitions()

	fmt.Println("\n--- Logger Test Suite Complete ---")
	fmt.Printf("Check the '%s' directory for log files.\n", logDirectory)
}

func testFileOnly() {
	logger := llog.NewLogger()
	runTestPhase(logger, "1.1: File-Only",
		"directory="+logDirectory,
		"name=file_only_log",
		"level=debug",
	)
	shutdownLogger(logger, "1.1: File-Only")
}

func testStdoutOnly() {
	logger := llog.NewLogger()
	runTestPhase(logger, "1.2: Stdout-Only",
		"enable_stdout=true",
		"disable_file=true",
		"level=debug",
	)
	shutdownLogger(logger, "1.2: Stdout-Only")
}

func testStderrOnly() {
	fmt.Fprintln(os.Stderr, "\n---")
	logger := llog.NewLogger()
	runTestPhase(logger, "1.3: Stderr-Only",
		"enable_stdout=true",
		"stdout_target=stderr",
		"disable_file=true",
		"level=debug",
	)
	fmt.Fprintln(os.Stderr, "---")
	shutdownLogger(logger, "1.3: Stderr-Only")
}

func testNoOutput() {
	logger := llog.NewLogger()
	runTestPhase(logger, "1.4: No-Output (logs should be dropped)",
		"enable_stdout=false",
		"disable_file=true",
		"level=debug",
	)
	shutdownLogger(logger, "1.4: No-Output")
}

func testReconfigurationTransitions() {
	logger := llog.NewLogger()

	runTestPhase(logger, "2.1: Reconfig - Initial (Dual File+Stdout)",
		"directory="+logDirectory,
		"name=reconfig_log",
		"enable_stdout=true",
		"disable_file=false",
		"level=debug",
	)

	runTestPhase(logger, "2.2: Reconfig - Transition to Stdout-Only",
		"enable_stdout=true",
		"disable_file=true",
		"level=debug",
	)

	runTestPhase(logger, "2.3: Reconfig - Transition back to Dual (File+Stdout)",
		"directory="+logDirectory,
		"name=reconfig_log",
		"enable_stdout=true",
		"disable_file=false",
		"level=debug",
	)

	fmt.Println("\n[Phase 2.4: Reconfig - Testing log levels on final state]")
	logger.Debug("final-state: This is a debug message.")
	logger.Info("final-state: This is an info message.")
	logger.Warn("final-state: This is a warning message.")
	logger.Error("final-state: This is an error message.")
	time.Sleep(logInterval)

	shutdownLogger(logger, "2: Reconfiguration")
}

func runTestPhase(logger *llog.Logger, phaseName string, overrides ...string) {
	fmt.Printf("\n[Phase %s]\n", phaseName)
	fmt.Println("  Config:", overrides)

	if err := logger.InitWithDefaults(overrides...); err != nil {
		fmt.Printf("  ERROR: Failed to initialize/reconfigure logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info(fmt.Sprintf("event=start_phase name=%s", phaseName))
	time.Sleep(logInterval)
	logger.Info(fmt.Sprintf("event=end_phase name=%s", phaseName))
	time.Sleep(logInterval)
}

func shutdownLogger(l *llog.Logger, phaseName string) {
	if err := l.Shutdown(500 * time.Millisecond); err != nil {
		fmt.Printf("  WARNING: Shutdown error in phase '%s': %v\n", phaseName, err)
	}
}
