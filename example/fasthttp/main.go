// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/moradiya84/low-latency-logger"
	"github.com/moradiya84/low-latency-logger/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger := llog.NewLogger()
	if err := logger.InitWithDefaults(
		"directory=/var/log/fasthttp",
		"level=info",
		"format=txt",
		"queue_capacity=2048",
	); err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(llog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) llog.Level {
	if strings.Contains(msg, "connection cannot be served") {
		return llog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return llog.LevelError
	}
	return compat.DetectLogLevel(msg)
}
