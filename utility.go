// FILE: utility.go
package llog

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// goroutineID extracts the calling goroutine's numeric id by parsing
// runtime.Stack's header line. This is the same trick the Go runtime
// itself has no public API for; it costs an allocation and a small
// stack capture, so it is only taken when EnableThreadID is set.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field := bytes.Fields(buf[:n])
	if len(field) < 2 {
		return 0
	}
	id, _ := strconv.ParseUint(string(field[1]), 10, 64)
	return id
}

// getTrace renders the call stack starting skip frames above its own
// caller, down to depth frames deep, caller-to-callee, joined the way
// the original formatter renders embedded trace strings.
func getTrace(depth int64, skip int) string {
	if depth <= 0 {
		return ""
	}
	pcs := make([]uintptr, depth+int64(skip)+2)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])

	var names []string
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			names = append(names, frame.Function)
		}
		if int64(len(names)) >= depth || !more {
			break
		}
	}
	// reverse into caller -> callee order
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " -> ")
}

// fmtErrorf prefixes every internal error with the package tag, the
// way the teacher's own error constructor does.
func fmtErrorf(format string, args ...any) error {
	return fmt.Errorf("llog: "+format, args...)
}

// parseKeyValue splits a "key=value" override string into its parts.
func parseKeyValue(arg string) (string, string, error) {
	idx := strings.IndexByte(arg, '=')
	if idx < 0 {
		return "", "", fmtErrorf("invalid override %q: missing '='", arg)
	}
	return strings.TrimSpace(arg[:idx]), strings.TrimSpace(arg[idx+1:]), nil
}
