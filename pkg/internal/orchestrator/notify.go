package orchestrator

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (o *Orchestrator) hasLoggers() bool {
	return atomic.LoadInt32(&o.loggerCount) != 0
}

// hasMonitors returns true if any monitor is attached (atomic, no locks, no alloc).
func (o *Orchestrator) hasMonitors() bool {
	return atomic.LoadInt32(&o.mntrCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold o.loggersLock while invoking logger methods.
func (o *Orchestrator) snapshotLoggers() []types.Logger {
	if !o.hasLoggers() {
		return nil
	}

	o.loggersLock.Lock()
	defer o.loggersLock.Unlock()

	if len(o.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(o.loggers))
	copy(out, o.loggers)
	return out
}

// snapshotMonitors returns a stable snapshot of the monitor slice.
// Never hold o.monitorLock while invoking monitor callbacks.
func (o *Orchestrator) snapshotMonitors() []types.Monitor {
	if !o.hasMonitors() {
		return nil
	}

	o.monitorLock.Lock()
	defer o.monitorLock.Unlock()

	if len(o.monitors) == 0 {
		return nil
	}
	out := make([]types.Monitor, len(o.monitors))
	copy(out, o.monitors)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (o *Orchestrator) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := o.snapshotLoggers()
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

func (o *Orchestrator) notifyRunStarted(runID string, loggers int) {
	if !o.hasLoggers() {
		return
	}
	o.NotifyLoggers(
		types.InfoLevel,
		"Screening run started",
		"component", o.componentMetadata,
		"event", "Run",
		"result", "STARTED",
		"runId", runID,
		"loggers", loggers,
	)
}

func (o *Orchestrator) notifyRunRejected(err error) {
	if !o.hasLoggers() {
		return
	}
	o.NotifyLoggers(
		types.ErrorLevel,
		"Screening run rejected",
		"component", o.componentMetadata,
		"event", "Run",
		"result", "FAILURE",
		"error", err,
	)
}

func (o *Orchestrator) notifyLoggerStart(loggerID string, totalFiles int) {
	if o.hasLoggers() {
		o.NotifyLoggers(
			types.InfoLevel,
			"Logger screening started",
			"component", o.componentMetadata,
			"event", "Logger",
			"result", "STARTED",
			"loggerId", loggerID,
			"files", totalFiles,
		)
	}

	for _, monitor := range o.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnLoggerStart(o.componentMetadata, loggerID, totalFiles)
	}
}

func (o *Orchestrator) notifyFileProcessed(snapshot types.ProgressSnapshot) {
	if o.hasLoggers() {
		o.NotifyLoggers(
			types.DebugLevel,
			"File processed",
			"component", o.componentMetadata,
			"event", "File",
			"result", "SUCCESS",
			"loggerId", snapshot.LoggerID,
			"file", snapshot.Filename,
			"processed", snapshot.FilesProcessed,
			"total", snapshot.TotalFiles,
		)
	}

	for _, monitor := range o.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnFileProcessed(o.componentMetadata, snapshot)
	}
}

func (o *Orchestrator) notifyBadFile(bad types.BadFile) {
	if o.hasLoggers() {
		o.NotifyLoggers(
			types.WarnLevel,
			"Bad file recorded",
			"component", o.componentMetadata,
			"event", "File",
			"result", "WARNING",
			"loggerId", bad.LoggerID,
			"file", bad.Filename,
			"reason", bad.Reason,
		)
	}

	for _, monitor := range o.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnBadFile(o.componentMetadata, bad)
	}
}

func (o *Orchestrator) notifyWarning(loggerID string, warning string) {
	if o.hasLoggers() {
		o.NotifyLoggers(
			types.WarnLevel,
			"Screening warning",
			"component", o.componentMetadata,
			"event", "Warning",
			"result", "WARNING",
			"loggerId", loggerID,
			"warning", warning,
		)
	}

	for _, monitor := range o.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnWarning(o.componentMetadata, loggerID, warning)
	}
}

func (o *Orchestrator) notifyCancel(loggerID string) {
	if o.hasLoggers() {
		o.NotifyLoggers(
			types.InfoLevel,
			"Logger screening cancelled",
			"component", o.componentMetadata,
			"event", "Logger",
			"result", "CANCELLED",
			"loggerId", loggerID,
		)
	}

	for _, monitor := range o.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnCancel(o.componentMetadata, loggerID)
	}
}

func (o *Orchestrator) notifyLoggerExported(result *types.LoggerResult) {
	if o.hasLoggers() {
		o.NotifyLoggers(
			types.InfoLevel,
			"Logger screening exported",
			"component", o.componentMetadata,
			"event", "Logger",
			"result", "SUCCESS",
			"loggerId", result.Logger.ID,
			"files", result.FilesProcessed,
			"windows", result.WindowsEmitted,
		)
	}

	for _, monitor := range o.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnLoggerExported(o.componentMetadata, result)
	}
}

func (o *Orchestrator) notifyRunComplete(summary types.RunSummary) {
	if o.hasLoggers() {
		o.NotifyLoggers(
			types.InfoLevel,
			"Screening run complete",
			"component", o.componentMetadata,
			"event", "Run",
			"result", "SUCCESS",
			"runId", summary.RunID,
			"loggersDone", summary.LoggersDone,
			"files", summary.FilesProcessed,
			"windows", summary.WindowsEmitted,
			"cancelled", summary.Cancelled,
		)
	}

	for _, monitor := range o.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnRunComplete(o.componentMetadata, summary)
	}
}
