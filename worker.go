// FILE: worker.go
package llog

import (
	"time"

	"github.com/moradiya84/low-latency-logger/formatter"
)

// spinSleepStep is the sleep duration used once a drain attempt has
// spun spinCount times without finding work. 500us balances wakeup
// latency against burning a core while idle.
const spinSleepStep = 500 * time.Microsecond

// runConsumer is the single consumer goroutine's body: drain the
// queue, format and sink each record, and multiplex the ambient
// flush/disk-check/retention/heartbeat timers into the same loop.
// Exactly one goroutine runs this for a given Logger at a time,
// started by Start and torn down by Stop.
func (l *Logger) runConsumer(q *queue, done chan struct{}) {
	defer func() {
		l.state.exited.Store(true)
		close(done)
	}()

	cfg := l.config.Load()
	spinCount := cfg.SpinCount

	flushTicker := time.NewTicker(time.Duration(cfg.FlushIntervalMs) * time.Millisecond)
	defer flushTicker.Stop()

	diskTicker := time.NewTicker(time.Duration(cfg.DiskCheckIntervalMs) * time.Millisecond)
	defer diskTicker.Stop()

	var heartbeatTicker *time.Ticker
	if cfg.HeartbeatLevel > 0 {
		heartbeatTicker = time.NewTicker(time.Duration(cfg.HeartbeatIntervalS) * time.Second)
	}
	defer func() {
		if heartbeatTicker != nil {
			heartbeatTicker.Stop()
		}
	}()

	var retentionTicker *time.Ticker
	if cfg.RetentionCheckMins > 0 {
		retentionTicker = time.NewTicker(time.Duration(cfg.RetentionCheckMins * float64(time.Minute)))
		defer retentionTicker.Stop()
	}

	var rec Record
	var lastDiskCheck time.Time
	var processedAtLastDiskCheck uint64

	for {
		// Pick up a config swapped in by ApplyConfig so heartbeat level
		// and interval changes take effect on a running logger.
		if cur := l.config.Load(); cur != cfg {
			cfg = cur
			if heartbeatTicker != nil {
				heartbeatTicker.Stop()
				heartbeatTicker = nil
			}
			if cfg.HeartbeatLevel > 0 {
				heartbeatTicker = time.NewTicker(time.Duration(cfg.HeartbeatIntervalS) * time.Second)
			}
		}

		drainedAny := false
		for spin := 0; spin < spinCount; spin++ {
			if q.tryPop(&rec) {
				l.consumeOne(&rec)
				drainedAny = true
				spin = 0
				continue
			}
			if !l.state.started.Load() {
				l.drainRemaining(q)
				l.sink.Flush()
				return
			}
		}

		if !drainedAny {
			l.sink.Flush()
		}

		select {
		case <-flushTicker.C:
			l.sink.Flush()
		case ack := <-l.state.flushRequest:
			l.drainRemaining(q)
			l.sink.Flush()
			close(ack)
		case <-diskTicker.C:
			l.handleDiskCheck(cfg, &lastDiskCheck, &processedAtLastDiskCheck, diskTicker)
		case <-tickerChanOrNil(heartbeatTicker):
			l.emitHeartbeats(cfg)
		case <-tickerChanOrNil(retentionTicker):
			if fs, ok := l.sink.(*FileSink); ok {
				if err := fs.CheckDiskSpace(); err != nil {
					internalLog(cfg.InternalErrorsToStderr, "llog: retention check failed: %v\n", err)
				}
			}
		case <-time.After(spinSleepStep):
			// idle tick; loop back to the spin phase
		}

		if !l.state.started.Load() && q.empty() {
			l.sink.Flush()
			return
		}
	}
}

// tickerChanOrNil returns t.C, or a nil channel (which blocks forever
// in a select) when t is nil — the idiom used to make an optional
// ticker participate in the same select as the mandatory ones.
func tickerChanOrNil(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// drainRemaining empties the queue without re-entering the spin/sleep
// phase, used on shutdown and on an explicit Flush request where the
// caller is waiting and every queued record must be accounted for.
func (l *Logger) drainRemaining(q *queue) {
	var rec Record
	for q.tryPop(&rec) {
		l.consumeOne(&rec)
	}
}

func (l *Logger) consumeOne(rec *Record) {
	cfg := l.config.Load()

	l.fmtMu.Lock()
	fr := formatter.Record{
		Timestamp:   epochTimeFromCounter(rec.Timestamp),
		TimestampNs: CounterToNanos(rec.Timestamp),
		ThreadID:    rec.ThreadID,
		Level:       rec.Level.String(),
		Line:        rec.Line,
		File:        rec.File,
		Function:    rec.Function,
		Message:     rec.MessageBytes(),
	}
	n := l.fmt.FormatRecord(&fr, nil)
	data := l.fmt.Bytes()[:n]
	l.fmtMu.Unlock()

	if _, err := l.sink.Write(data); err != nil {
		internalLog(cfg.InternalErrorsToStderr, "llog: sink write failed: %v\n", err)
	}
	l.state.processed.Add(1)
}

// epochTimeFromCounter converts a raw ReadCounter reading back to a
// wall-clock time.Time for formatting, via CounterToNanos plus the
// same processEpoch ReadCounter is anchored to.
func epochTimeFromCounter(ticks uint64) time.Time {
	return processEpoch.Add(time.Duration(CounterToNanos(ticks)))
}

func (l *Logger) handleDiskCheck(cfg *Config, lastCheck *time.Time, processedAtLast *uint64, ticker *time.Ticker) {
	fs, ok := l.sink.(*FileSink)
	if !ok {
		return
	}
	now := time.Now()
	if err := fs.CheckDiskSpace(); err != nil {
		internalLog(cfg.InternalErrorsToStderr, "llog: disk check failed: %v\n", err)
	}

	processed := l.state.processed.Load()
	if !lastCheck.IsZero() {
		interval := fs.AdjustDiskCheckInterval(processed-*processedAtLast, now.Sub(*lastCheck))
		ticker.Reset(interval)
	}
	*lastCheck = now
	*processedAtLast = processed
}
