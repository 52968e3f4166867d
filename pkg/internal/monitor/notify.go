package monitor

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (m *Monitor) hasLoggers() bool {
	return atomic.LoadInt32(&m.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold m.loggersLock while invoking logger methods.
func (m *Monitor) snapshotLoggers() []types.Logger {
	if !m.hasLoggers() {
		return nil
	}

	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()

	if len(m.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(m.loggers))
	copy(out, m.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (m *Monitor) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := m.snapshotLoggers()
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
