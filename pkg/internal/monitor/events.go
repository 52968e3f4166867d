package monitor

import "github.com/moorings-io/fathom/pkg/internal/types"

// RegisterOnLoggerStart registers callbacks for logger processing start.
func (m *Monitor) RegisterOnLoggerStart(callback ...func(types.ComponentMetadata, string, int)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnLoggerStart = append(m.OnLoggerStart, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnLoggerStart invokes callbacks when a logger's file loop begins.
func (m *Monitor) InvokeOnLoggerStart(c types.ComponentMetadata, loggerID string, totalFiles int) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnLoggerStart) {
		if cb == nil {
			continue
		}
		cb(c, loggerID, totalFiles)
	}
}

// RegisterOnFileProcessed registers callbacks for per-file progress snapshots.
func (m *Monitor) RegisterOnFileProcessed(callback ...func(types.ComponentMetadata, types.ProgressSnapshot)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnFileProcessed = append(m.OnFileProcessed, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnFileProcessed invokes callbacks after each file is read and reduced.
func (m *Monitor) InvokeOnFileProcessed(c types.ComponentMetadata, snapshot types.ProgressSnapshot) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnFileProcessed) {
		if cb == nil {
			continue
		}
		cb(c, snapshot)
	}
}

// RegisterOnWindowEmitted registers callbacks for window emission.
func (m *Monitor) RegisterOnWindowEmitted(callback ...func(types.ComponentMetadata, *types.Window)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnWindowEmitted = append(m.OnWindowEmitted, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnWindowEmitted invokes callbacks when the assembler emits a window.
func (m *Monitor) InvokeOnWindowEmitted(c types.ComponentMetadata, w *types.Window) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnWindowEmitted) {
		if cb == nil {
			continue
		}
		cb(c, w)
	}
}

// RegisterOnBadFile registers callbacks for bad-file registry entries.
func (m *Monitor) RegisterOnBadFile(callback ...func(types.ComponentMetadata, types.BadFile)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnBadFile = append(m.OnBadFile, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnBadFile invokes callbacks when a file is flagged bad.
func (m *Monitor) InvokeOnBadFile(c types.ComponentMetadata, bad types.BadFile) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnBadFile) {
		if cb == nil {
			continue
		}
		cb(c, bad)
	}
}

// RegisterOnWarning registers callbacks for per-logger warnings.
func (m *Monitor) RegisterOnWarning(callback ...func(types.ComponentMetadata, string, string)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnWarning = append(m.OnWarning, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnWarning invokes callbacks when a non-fatal quality warning is raised.
func (m *Monitor) InvokeOnWarning(c types.ComponentMetadata, loggerID string, warning string) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnWarning) {
		if cb == nil {
			continue
		}
		cb(c, loggerID, warning)
	}
}

// RegisterOnLoggerExported registers callbacks for logger export completion.
func (m *Monitor) RegisterOnLoggerExported(callback ...func(types.ComponentMetadata, *types.LoggerResult)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnLoggerExported = append(m.OnLoggerExported, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnLoggerExported invokes callbacks when a logger reaches the Exported state.
func (m *Monitor) InvokeOnLoggerExported(c types.ComponentMetadata, result *types.LoggerResult) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnLoggerExported) {
		if cb == nil {
			continue
		}
		cb(c, result)
	}
}

// RegisterOnCancel registers callbacks for cooperative cancellation.
func (m *Monitor) RegisterOnCancel(callback ...func(types.ComponentMetadata, string)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnCancel = append(m.OnCancel, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnCancel invokes callbacks when a logger's processing is cancelled between files.
func (m *Monitor) InvokeOnCancel(c types.ComponentMetadata, loggerID string) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnCancel) {
		if cb == nil {
			continue
		}
		cb(c, loggerID)
	}
}

// RegisterOnRunComplete registers callbacks for run completion.
func (m *Monitor) RegisterOnRunComplete(callback ...func(types.ComponentMetadata, types.RunSummary)) {
	if len(callback) == 0 {
		return
	}

	m.callbackLock.Lock()
	m.OnRunComplete = append(m.OnRunComplete, callback...)
	m.callbackLock.Unlock()
}

// InvokeOnRunComplete invokes callbacks once every enabled logger has exported.
func (m *Monitor) InvokeOnRunComplete(c types.ComponentMetadata, summary types.RunSummary) {
	for _, cb := range snapshotCallbacks(&m.callbackLock, m.OnRunComplete) {
		if cb == nil {
			continue
		}
		cb(c, summary)
	}
}
