// FILE: diagnostics.go
package llog

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// totalDropped is the process-wide, relaxed-ordering dropped-record
// counter referenced by spec.md §4.4. Every Logger instance's
// producer façade increments the same counter, and the diagnostic
// emission schedule below is driven by that shared count, the way the
// original source's global drop counter is shared across producers.
var totalDropped atomic.Uint64

// internalLog writes a bounded, "llog: "-prefixed diagnostic line
// directly to stderr, bypassing the queue entirely. Diagnostics must
// survive a full queue and must never themselves be dropped, so this
// path never touches the SPSC transport.
func internalLog(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}
	if !strings.HasPrefix(format, "llog: ") {
		format = "llog: " + format
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// reportDrop increments the shared drop counter and, when diagnostics
// are enabled, emits a bounded warning: on the 1st drop and every
// 1000th drop thereafter, never more often, so a sustained full queue
// cannot make the diagnostic path itself dominate steady-state output.
func reportDrop(enabled bool) {
	n := totalDropped.Add(1)
	if n == 1 || n%1000 == 0 {
		internalLog(enabled, "llog: record dropped (total dropped: %d)\n", n)
	}
}
