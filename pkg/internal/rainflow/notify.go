package rainflow

import (
	"fmt"
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (r *Reducer) hasLoggers() bool {
	return atomic.LoadInt32(&r.loggerCount) != 0
}

// hasMonitors returns true if any monitor is attached (atomic, no locks, no alloc).
func (r *Reducer) hasMonitors() bool {
	return atomic.LoadInt32(&r.mntrCount) != 0
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

// snapshotMonitors returns a stable snapshot of the monitor slice.
// Never hold r.monitorLock while invoking monitor callbacks.
func (r *Reducer) snapshotMonitors() []types.Monitor {
	if !r.hasMonitors() {
		return nil
	}

	r.monitorLock.Lock()
	defer r.monitorLock.Unlock()

	if len(r.monitors) == 0 {
		return nil
	}
	out := make([]types.Monitor, len(r.monitors))
	copy(out, r.monitors)
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

func (r *Reducer) notifyReduced(w *types.Window, hists []*types.Histogram) {
	if !r.hasLoggers() {
		return
	}
	var cycles float64
	for _, h := range hists {
		cycles += h.Total()
	}
	r.NotifyLoggers(
		types.DebugLevel,
		"Window cycles reduced",
		"component", r.componentMetadata,
		"event", "Reduce",
		"result", "SUCCESS",
		"loggerId", w.LoggerID,
		"seq", w.Seq,
		"cycles", cycles,
	)
}

func (r *Reducer) notifyReduceFailure(w *types.Window, err error) {
	if !r.hasLoggers() {
		return
	}
	r.NotifyLoggers(
		types.ErrorLevel,
		"Window cycle reduction failed",
		"component", r.componentMetadata,
		"event", "Reduce",
		"result", "FAILURE",
		"loggerId", w.LoggerID,
		"seq", w.Seq,
		"error", err,
	)
}

func (r *Reducer) notifyOverflow(w *types.Window, clamped int) {
	warning := fmt.Sprintf("%d cycles beyond the %d-bin cap clamped into the last bin", clamped, MaxBins)

	if r.hasLoggers() {
		r.NotifyLoggers(
			types.WarnLevel,
			"Histogram bin cap exceeded",
			"component", r.componentMetadata,
			"event", "Reduce",
			"result", "WARNING",
			"loggerId", w.LoggerID,
			"seq", w.Seq,
			"clamped", clamped,
		)
	}

	for _, monitor := range r.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnWarning(r.componentMetadata, w.LoggerID, warning)
	}
}
