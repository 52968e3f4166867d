package catalog

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (c *Catalog) hasLoggers() bool {
	return atomic.LoadInt32(&c.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold c.loggersLock while invoking logger methods.
func (c *Catalog) snapshotLoggers() []types.Logger {
	if !c.hasLoggers() {
		return nil
	}

	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()

	if len(c.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(c.loggers))
	copy(out, c.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (c *Catalog) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := c.snapshotLoggers()
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

func (c *Catalog) notifyRegistered(cfg *types.LoggerConfig) {
	if !c.hasLoggers() {
		return
	}
	c.NotifyLoggers(
		types.InfoLevel,
		"Logger registered",
		"component", c.componentMetadata,
		"event", "Register",
		"result", "SUCCESS",
		"loggerId", cfg.ID,
		"channels", len(cfg.SelectedColumns),
		"windowSeconds", cfg.WindowSeconds,
	)
}

func (c *Catalog) notifyRegisterFailure(loggerID string, err error) {
	if !c.hasLoggers() {
		return
	}
	c.NotifyLoggers(
		types.ErrorLevel,
		"Logger registration rejected",
		"component", c.componentMetadata,
		"event", "Register",
		"result", "FAILURE",
		"loggerId", loggerID,
		"error", err,
	)
}
