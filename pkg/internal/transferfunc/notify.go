package transferfunc

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (d *Deriver) hasLoggers() bool {
	return atomic.LoadInt32(&d.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold d.loggersLock while invoking logger methods.
func (d *Deriver) snapshotLoggers() []types.Logger {
	if !d.hasLoggers() {
		return nil
	}

	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()

	if len(d.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(d.loggers))
	copy(out, d.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (d *Deriver) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := d.snapshotLoggers()
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

func (d *Deriver) notifyDerived(in, out int) {
	if !d.hasLoggers() {
		return
	}
	d.NotifyLoggers(
		types.DebugLevel,
		"Acceleration derived",
		"component", d.componentMetadata,
		"event", "DeriveAcceleration",
		"result", "SUCCESS",
		"inputSamples", in,
		"outputSamples", out,
	)
}

func (d *Deriver) notifyFunctions(location string, count int) {
	if !d.hasLoggers() {
		return
	}
	d.NotifyLoggers(
		types.DebugLevel,
		"Transfer functions derived",
		"component", d.componentMetadata,
		"event", "Functions",
		"result", "SUCCESS",
		"location", location,
		"seaStates", count,
	)
}
