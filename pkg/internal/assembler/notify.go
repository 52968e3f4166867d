package assembler

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (a *Assembler) hasLoggers() bool {
	return atomic.LoadInt32(&a.loggerCount) != 0
}

// hasMonitors returns true if any monitor is attached (atomic, no locks, no alloc).
func (a *Assembler) hasMonitors() bool {
	return atomic.LoadInt32(&a.mntrCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold a.loggersLock while invoking logger methods.
func (a *Assembler) snapshotLoggers() []types.Logger {
	if !a.hasLoggers() {
		return nil
	}

	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()

	if len(a.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(a.loggers))
	copy(out, a.loggers)
	return out
}

// snapshotMonitors returns a stable snapshot of the monitor slice.
// Never hold a.monitorLock while invoking monitor callbacks.
func (a *Assembler) snapshotMonitors() []types.Monitor {
	if !a.hasMonitors() {
		return nil
	}

	a.monitorLock.Lock()
	defer a.monitorLock.Unlock()

	if len(a.monitors) == 0 {
		return nil
	}
	out := make([]types.Monitor, len(a.monitors))
	copy(out, a.monitors)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (a *Assembler) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := a.snapshotLoggers()
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

func (a *Assembler) notifyWindowEmitted(w *types.Window) {
	if a.hasLoggers() {
		a.NotifyLoggers(
			types.DebugLevel,
			"Window emitted",
			"component", a.componentMetadata,
			"event", "WindowEmitted",
			"result", "SUCCESS",
			"loggerId", a.loggerID,
			"seq", w.Seq,
			"rows", w.Rows(),
			"short", w.Short,
		)
	}

	if !a.hasMonitors() {
		return
	}
	for _, monitor := range a.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnWindowEmitted(a.componentMetadata, w)
	}
}

func (a *Assembler) notifySchemaMismatch(table *types.SampleTable) {
	if !a.hasLoggers() {
		return
	}
	a.NotifyLoggers(
		types.ErrorLevel,
		"Ingested table rejected on channel schema mismatch",
		"component", a.componentMetadata,
		"event", "Ingest",
		"result", "FAILURE",
		"loggerId", a.loggerID,
		"got", table.ChannelNames(),
	)
}
