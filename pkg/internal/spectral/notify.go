package spectral

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (r *Reducer) hasLoggers() bool {
	return atomic.LoadInt32(&r.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold r.loggersLock while invoking logger methods.
func (r *Reducer) snapshotLoggers() []types.Logger {
	if !r.hasLoggers() {
		return nil
	}

	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()

	if len(r.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(r.loggers))
	copy(out, r.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (r *Reducer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := r.snapshotLoggers()
	if len(loggers) == 0 {
		return
	}

	type levelChecker interface {
		IsLevelEnabled(types.LogLevel) bool
	}

	for _, logger := range loggers {
		if logger == nil {
			continue
		}
		if lc, ok := logger.(levelChecker); ok && !lc.IsLevelEnabled(level) {
			continue
		}

		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func (r *Reducer) notifyReduced(w *types.Window, record *types.PSDRecord) {
	if !r.hasLoggers() {
		return
	}
	r.NotifyLoggers(
		types.DebugLevel,
		"Window PSD reduced",
		"component", r.componentMetadata,
		"event", "Reduce",
		"result", "SUCCESS",
		"loggerId", w.LoggerID,
		"seq", w.Seq,
		"bins", len(record.Frequencies),
	)
}

func (r *Reducer) notifyReduceFailure(w *types.Window, err error) {
	if !r.hasLoggers() {
		return
	}
	r.NotifyLoggers(
		types.ErrorLevel,
		"Window PSD reduction failed",
		"component", r.componentMetadata,
		"event", "Reduce",
		"result", "FAILURE",
		"loggerId", w.LoggerID,
		"seq", w.Seq,
		"error", err,
	)
}
