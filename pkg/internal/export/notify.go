package export

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (x *Writer) hasLoggers() bool {
	return atomic.LoadInt32(&x.loggerCount) != 0
}

// hasMonitors returns true if any monitor is attached (atomic, no locks, no alloc).
func (x *Writer) hasMonitors() bool {
	return atomic.LoadInt32(&x.mntrCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold x.loggersLock while invoking logger methods.
func (x *Writer) snapshotLoggers() []types.Logger {
	if !x.hasLoggers() {
		return nil
	}

	x.loggersLock.Lock()
	defer x.loggersLock.Unlock()

	if len(x.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(x.loggers))
	copy(out, x.loggers)
	return out
}

// snapshotMonitors returns a stable snapshot of the monitor slice.
// Never hold x.monitorLock while invoking monitor callbacks.
func (x *Writer) snapshotMonitors() []types.Monitor {
	if !x.hasMonitors() {
		return nil
	}

	x.monitorLock.Lock()
	defer x.monitorLock.Unlock()

	if len(x.monitors) == 0 {
		return nil
	}
	out := make([]types.Monitor, len(x.monitors))
	copy(out, x.monitors)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (x *Writer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := x.snapshotLoggers()
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

func (x *Writer) notifyExported(result *types.LoggerResult) {
	if !x.hasLoggers() {
		return
	}
	x.NotifyLoggers(
		types.InfoLevel,
		"Logger results exported",
		"component", x.componentMetadata,
		"event", "ExportLogger",
		"result", "SUCCESS",
		"loggerId", result.Logger.ID,
		"windows", result.WindowsEmitted,
		"spectrograms", len(result.Spectrograms),
		"histograms", len(result.Histograms),
	)
}

func (x *Writer) notifyTransferExported(loggerID string, seaStates int) {
	if !x.hasLoggers() {
		return
	}
	x.NotifyLoggers(
		types.InfoLevel,
		"Transfer functions exported",
		"component", x.componentMetadata,
		"event", "ExportTransferFunctions",
		"result", "SUCCESS",
		"loggerId", loggerID,
		"seaStates", seaStates,
	)
}

func (x *Writer) notifyEmptyResult(loggerID string) {
	warning := "no accumulated results; export skipped"

	if x.hasLoggers() {
		x.NotifyLoggers(
			types.WarnLevel,
			"Nothing to export",
			"component", x.componentMetadata,
			"event", "ExportLogger",
			"result", "WARNING",
			"loggerId", loggerID,
		)
	}

	for _, monitor := range x.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnWarning(x.componentMetadata, loggerID, warning)
	}
}
