// Package formatter renders log records into their wire/textual
// representation. It knows nothing about queues, sinks, or process
// lifecycle — only how to turn one record's fields into bytes.
package formatter

import (
	"strconv"
	"time"

	"github.com/moradiya84/low-latency-logger/sanitizer"
)

// Format flags for controlling output structure.
const (
	FlagShowTimestamp int64 = 0b0001
	FlagShowLevel     int64 = 0b0010
	FlagShowThreadID  int64 = 0b0100
	FlagShowSource    int64 = 0b1000
	FlagDefault             = FlagShowTimestamp | FlagShowLevel
)

// Record is the formatter's view of a log entry: the subset of
// llog.Record's fields needed to render one line, passed by value so
// this package never imports the core and creates a cycle.
type Record struct {
	Timestamp   time.Time
	TimestampNs uint64 // raw nanosecond counter value, rendered verbatim by the txt layout
	ThreadID    uint64
	Level       string // pre-rendered short name, e.g. "INF"
	Line        int32
	File        string
	Function    string
	Message     []byte
}

// Formatter renders Records using a configured output mode and a
// Sanitizer for escaping untrusted message content.
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	format          string
	timestampFormat string
	flags           int64
	buf             []byte
}

// New creates a formatter with the provided sanitizer, or a default
// passthrough sanitizer if none is given.
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New()
	}
	return &Formatter{
		sanitizer:       san,
		format:          "txt",
		timestampFormat: time.RFC3339Nano,
		flags:           FlagDefault,
		buf:             make([]byte, 0, 1024),
	}
}

// Type sets the output format ("txt", "json", or "raw").
func (f *Formatter) Type(format string) *Formatter {
	f.format = format
	return f
}

// TimestampFormat sets the timestamp format string.
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// ShowLevel sets whether to include the level field.
func (f *Formatter) ShowLevel(show bool) *Formatter {
	f.setFlag(FlagShowLevel, show)
	return f
}

// ShowTimestamp sets whether to include the timestamp field.
func (f *Formatter) ShowTimestamp(show bool) *Formatter {
	f.setFlag(FlagShowTimestamp, show)
	return f
}

// ShowThreadID sets whether to include the thread/goroutine id field.
func (f *Formatter) ShowThreadID(show bool) *Formatter {
	f.setFlag(FlagShowThreadID, show)
	return f
}

// ShowSource sets whether to include file:line/function fields.
func (f *Formatter) ShowSource(show bool) *Formatter {
	f.setFlag(FlagShowSource, show)
	return f
}

func (f *Formatter) setFlag(flag int64, on bool) {
	if on {
		f.flags |= flag
	} else {
		f.flags &^= flag
	}
}

// FormatRecord renders rec into buf (which is grown as needed) and
// returns the number of bytes written. The consumer calls this once
// per drained record, immediately before handing the bytes to a Sink.
func (f *Formatter) FormatRecord(rec *Record, buf []byte) int {
	f.buf = buf[:0]
	serializer := sanitizer.NewSerializer(f.format, f.sanitizer)

	switch f.format {
	case "raw":
		f.buf = append(f.buf, rec.Message...)
		f.buf = append(f.buf, '\n')
	case "json":
		f.formatJSON(rec, serializer)
	default: // "txt"
		f.formatTxt(rec, serializer)
	}
	return len(f.buf)
}

// Bytes returns the buffer produced by the most recent FormatRecord
// call.
func (f *Formatter) Bytes() []byte { return f.buf }

// formatTxt renders the canonical layout: "[<timestamp_ns>] [<LEVEL>]",
// then an optional " [tid=<id>]", then an optional " <file>:<line>
// <function>", then " <message>\n". Each segment is emitted literally
// as specified — the timestamp is the raw counter value, not a
// wall-clock string, so the layout is stable regardless of
// TimestampFormat (which only affects the JSON "time" field).
func (f *Formatter) formatTxt(rec *Record, serializer *sanitizer.Serializer) {
	needsSpace := false

	if f.flags&FlagShowTimestamp != 0 {
		f.buf = append(f.buf, '[')
		f.buf = strconv.AppendUint(f.buf, rec.TimestampNs, 10)
		f.buf = append(f.buf, ']')
		needsSpace = true
	}
	if f.flags&FlagShowLevel != 0 {
		if needsSpace {
			f.buf = append(f.buf, ' ')
		}
		f.buf = append(f.buf, '[')
		f.buf = append(f.buf, rec.Level...)
		f.buf = append(f.buf, ']')
		needsSpace = true
	}
	if f.flags&FlagShowThreadID != 0 {
		if needsSpace {
			f.buf = append(f.buf, ' ')
		}
		f.buf = append(f.buf, "[tid="...)
		f.buf = strconv.AppendUint(f.buf, rec.ThreadID, 10)
		f.buf = append(f.buf, ']')
		needsSpace = true
	}
	if f.flags&FlagShowSource != 0 && rec.File != "" {
		if needsSpace {
			f.buf = append(f.buf, ' ')
		}
		f.buf = append(f.buf, rec.File...)
		f.buf = append(f.buf, ':')
		f.buf = strconv.AppendInt(f.buf, int64(rec.Line), 10)
		if rec.Function != "" {
			f.buf = append(f.buf, ' ')
			f.buf = append(f.buf, rec.Function...)
		}
		needsSpace = true
	}
	if needsSpace && len(rec.Message) > 0 {
		f.buf = append(f.buf, ' ')
	}
	f.buf = append(f.buf, f.sanitizer.Sanitize(string(rec.Message))...)
	f.buf = append(f.buf, '\n')
}

func (f *Formatter) formatJSON(rec *Record, serializer *sanitizer.Serializer) {
	f.buf = append(f.buf, '{')
	needsComma := false

	if f.flags&FlagShowTimestamp != 0 {
		f.buf = append(f.buf, `"time":"`...)
		f.buf = rec.Timestamp.AppendFormat(f.buf, f.timestampFormat)
		f.buf = append(f.buf, '"')
		needsComma = true
	}
	if f.flags&FlagShowLevel != 0 {
		if needsComma {
			f.buf = append(f.buf, ',')
		}
		f.buf = append(f.buf, `"level":"`...)
		f.buf = append(f.buf, rec.Level...)
		f.buf = append(f.buf, '"')
		needsComma = true
	}
	if f.flags&FlagShowThreadID != 0 {
		if needsComma {
			f.buf = append(f.buf, ',')
		}
		f.buf = append(f.buf, `"tid":`...)
		f.buf = strconv.AppendUint(f.buf, rec.ThreadID, 10)
		needsComma = true
	}
	if f.flags&FlagShowSource != 0 && rec.File != "" {
		if needsComma {
			f.buf = append(f.buf, ',')
		}
		f.buf = append(f.buf, `"source":"`...)
		f.buf = append(f.buf, rec.File...)
		f.buf = append(f.buf, ':')
		f.buf = strconv.AppendInt(f.buf, int64(rec.Line), 10)
		f.buf = append(f.buf, '"')
		needsComma = true
	}
	if needsComma {
		f.buf = append(f.buf, ',')
	}
	f.buf = append(f.buf, `"message":`...)
	serializer.WriteString(&f.buf, string(rec.Message))

	f.buf = append(f.buf, '}', '\n')
}
