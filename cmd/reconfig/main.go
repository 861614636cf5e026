package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/moradiya84/low-latency-logger"
)

// Simulate rapid reconfiguration while logging continuously.
func main() {
	var count atomic.Int64

	if err := llog.InitWithDefaults("./reconfig_logs"); err != nil {
		fmt.Printf("Initial Init error: %v\n", err)
		return
	}

	go func() {
		for i := 0; ; i++ {
			llog.Info(fmt.Sprintf("Test log %d", i))
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	for i := 0; i < 10; i++ {
		queueOverride := fmt.Sprintf("queue_capacity=%d", 1<<uint(6+i%4))
		if err := llog.Default().ApplyOverride(queueOverride); err != nil {
			fmt.Printf("ApplyOverride error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	fmt.Printf("Total logs attempted: %d\n", count.Load())

	if err := llog.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
