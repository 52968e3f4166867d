package s3sink

import (
	"fmt"
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (u *Uploader) hasLoggers() bool {
	return atomic.LoadInt32(&u.loggerCount) != 0
}

// hasMonitors returns true if any monitor is attached (atomic, no locks, no alloc).
func (u *Uploader) hasMonitors() bool {
	return atomic.LoadInt32(&u.mntrCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold u.loggersLock while invoking logger methods.
func (u *Uploader) snapshotLoggers() []types.Logger {
	if !u.hasLoggers() {
		return nil
	}

	u.loggersLock.Lock()
	defer u.loggersLock.Unlock()

	if len(u.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(u.loggers))
	copy(out, u.loggers)
	return out
}

// snapshotMonitors returns a stable snapshot of the monitor slice.
// Never hold u.monitorLock while invoking monitor callbacks.
func (u *Uploader) snapshotMonitors() []types.Monitor {
	if !u.hasMonitors() {
		return nil
	}

	u.monitorLock.Lock()
	defer u.monitorLock.Unlock()

	if len(u.monitors) == 0 {
		return nil
	}
	out := make([]types.Monitor, len(u.monitors))
	copy(out, u.monitors)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and key/value pairs
// to all registered loggers. It first checks (per logger) if logging is enabled for the
// provided level.
func (u *Uploader) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := u.snapshotLoggers()
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

func (u *Uploader) notifyUploaded(root string, uploaded int) {
	if !u.hasLoggers() {
		return
	}
	u.NotifyLoggers(
		types.InfoLevel,
		"Export tree uploaded",
		"component", u.componentMetadata,
		"event", "UploadTree",
		"result", "SUCCESS",
		"root", root,
		"objects", uploaded,
	)
}

func (u *Uploader) notifyUploadFailure(key string, err error) {
	warning := fmt.Sprintf("upload of %s failed: %v", key, err)

	if u.hasLoggers() {
		u.NotifyLoggers(
			types.WarnLevel,
			"Object upload failed",
			"component", u.componentMetadata,
			"event", "UploadTree",
			"result", "WARNING",
			"key", key,
			"error", err,
		)
	}

	for _, monitor := range u.snapshotMonitors() {
		if monitor == nil {
			continue
		}
		monitor.InvokeOnWarning(u.componentMetadata, "", warning)
	}
}
