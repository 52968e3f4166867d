package reader

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (r *Reader) hasLoggers() bool {
	return atomic.LoadInt32(&r.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold r.loggersLock while invoking logger methods.
func (r *Reader) snapshotLoggers() []types.Logger {
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
func (r *Reader) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
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

func (r *Reader) notifyFilesListed(count int) {
	if !r.hasLoggers() {
		return
	}
	loggerID := ""
	if r.config != nil {
		loggerID = r.config.ID
	}
	r.NotifyLoggers(
		types.DebugLevel,
		"Raw files listed",
		"component", r.componentMetadata,
		"event", "ListFiles",
		"result", "SUCCESS",
		"loggerId", loggerID,
		"files", count,
	)
}

func (r *Reader) notifyFileRead(path string, quality *types.FileQuality) {
	if !r.hasLoggers() {
		return
	}
	loggerID := ""
	if r.config != nil {
		loggerID = r.config.ID
	}
	r.NotifyLoggers(
		types.DebugLevel,
		"Raw file read",
		"component", r.componentMetadata,
		"event", "ReadFile",
		"result", "SUCCESS",
		"loggerId", loggerID,
		"file", path,
		"rows", quality.Rows,
		"detectedFs", quality.SampleFrequency,
		"warnings", len(quality.Warnings),
	)
}

func (r *Reader) notifyReadFailure(path string, err error) {
	if !r.hasLoggers() {
		return
	}
	loggerID := ""
	if r.config != nil {
		loggerID = r.config.ID
	}
	r.NotifyLoggers(
		types.ErrorLevel,
		"Raw file unreadable",
		"component", r.componentMetadata,
		"event", "ReadFile",
		"result", "FAILURE",
		"loggerId", loggerID,
		"file", path,
		"error", err,
	)
}
