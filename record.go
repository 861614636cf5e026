// FILE: record.go
package llog

import "fmt"

// MsgMax is the inline payload capacity per record, in bytes. One byte
// is always reserved for the null terminator, so the largest message
// that survives intact is MsgMax-1 bytes.
const MsgMax = 1024

// HeaderSlack is a size allowance for the formatted header (timestamp,
// level, tid, file:line) on top of MsgMax. The consumer does not
// preallocate it; the formatter grows its output buffer as needed.
const HeaderSlack = 256

// Record is a fixed-size, trivially-copyable log entry. It holds no
// heap ownership: File and Function are borrowed references to
// caller-static strings (the result of runtime.Caller, whose backing
// data lives in the compiled binary's read-only string table), never
// copied and never freed by the record itself. A Record may be
// bit-copied between queue slots freely; it has no destructor-visible
// resource and no pointer into heap-managed memory.
type Record struct {
	Timestamp  uint64 // raw ReadCounter() ticks, set by the producer
	ThreadID   uint64
	Level      Level
	MessageLen uint16
	Line       int32
	File       string
	Function   string
	Message    [MsgMax]byte
}

// SetMessage copies up to MsgMax-1 bytes of b into the record, records
// the number of bytes actually copied, and null-terminates the buffer.
// Never fails; a nil or empty b yields an empty message.
func (r *Record) SetMessage(b []byte) {
	n := len(b)
	if n > MsgMax-1 {
		n = MsgMax - 1
	}
	copy(r.Message[:n], b[:n])
	r.Message[n] = 0
	r.MessageLen = uint16(n)
}

// SetMessageString is SetMessage for a string source, avoiding the
// intermediate byte slice at the call site.
func (r *Record) SetMessageString(s string) {
	n := len(s)
	if n > MsgMax-1 {
		n = MsgMax - 1
	}
	copy(r.Message[:n], s[:n])
	r.Message[n] = 0
	r.MessageLen = uint16(n)
}

// FormatMessage renders format/args directly into the record's message
// buffer, clamped to MsgMax-1 bytes, and returns the number of bytes
// written. Go's fmt package boxes interface arguments, so unlike a
// true snprintf this is not allocation-free; like the original it
// trades a small amount of overhead for safety. A panic inside a bad
// verb is recovered and the message emptied rather than allowed to
// unwind into the caller.
func (r *Record) FormatMessage(format string, args ...any) (n int) {
	defer func() {
		if recover() != nil {
			r.MessageLen = 0
			r.Message[0] = 0
			n = 0
		}
	}()
	r.SetMessageString(fmt.Sprintf(format, args...))
	return int(r.MessageLen)
}

// SetSourceLocation assigns the record's file/function/line fields.
// No copy is made; file and function must outlive the record.
func (r *Record) SetSourceLocation(file string, line int, function string) {
	r.File = file
	r.Function = function
	r.Line = int32(line)
}

// MessageBytes returns the valid portion of the message buffer.
func (r *Record) MessageBytes() []byte {
	return r.Message[:r.MessageLen]
}

// MessageString copies the valid portion of the message buffer into a
// string. Used by the consumer side only; never call from the hot path.
func (r *Record) MessageString() string {
	return string(r.Message[:r.MessageLen])
}
