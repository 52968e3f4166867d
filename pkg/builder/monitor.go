package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/monitor"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NewMonitor creates a callback monitor with the specified options.
func NewMonitor(options ...types.Option[types.Monitor]) types.Monitor {
	return monitor.NewMonitor(options...)
}

// NewRunMeter creates a meter sampling elapsed time and process resource usage.
func NewRunMeter() *monitor.RunMeter {
	return monitor.NewRunMeter()
}

// MonitorWithLogger adds one or more loggers to the monitor.
func MonitorWithLogger(logger ...types.Logger) types.Option[types.Monitor] {
	return monitor.WithLogger(logger...)
}

// MonitorWithOnLoggerStartFunc registers a callback for the LoggerStart event.
func MonitorWithOnLoggerStartFunc(callback ...func(c types.ComponentMetadata, loggerID string, totalFiles int)) types.Option[types.Monitor] {
	return monitor.WithOnLoggerStartFunc(callback...)
}

// MonitorWithOnFileProcessedFunc registers a callback for the FileProcessed event.
func MonitorWithOnFileProcessedFunc(callback ...func(c types.ComponentMetadata, snapshot types.ProgressSnapshot)) types.Option[types.Monitor] {
	return monitor.WithOnFileProcessedFunc(callback...)
}

// MonitorWithOnWindowEmittedFunc registers a callback for the WindowEmitted event.
func MonitorWithOnWindowEmittedFunc(callback ...func(c types.ComponentMetadata, w *types.Window)) types.Option[types.Monitor] {
	return monitor.WithOnWindowEmittedFunc(callback...)
}

// MonitorWithOnBadFileFunc registers a callback for the BadFile event.
func MonitorWithOnBadFileFunc(callback ...func(c types.ComponentMetadata, bad types.BadFile)) types.Option[types.Monitor] {
	return monitor.WithOnBadFileFunc(callback...)
}

// MonitorWithOnWarningFunc registers a callback for the Warning event.
func MonitorWithOnWarningFunc(callback ...func(c types.ComponentMetadata, loggerID string, warning string)) types.Option[types.Monitor] {
	return monitor.WithOnWarningFunc(callback...)
}

// MonitorWithOnLoggerExportedFunc registers a callback for the LoggerExported event.
func MonitorWithOnLoggerExportedFunc(callback ...func(c types.ComponentMetadata, result *types.LoggerResult)) types.Option[types.Monitor] {
	return monitor.WithOnLoggerExportedFunc(callback...)
}

// MonitorWithOnCancelFunc registers a callback for the Cancel event.
func MonitorWithOnCancelFunc(callback ...func(c types.ComponentMetadata, loggerID string)) types.Option[types.Monitor] {
	return monitor.WithOnCancelFunc(callback...)
}

// MonitorWithOnRunCompleteFunc registers a callback for the RunComplete event.
func MonitorWithOnRunCompleteFunc(callback ...func(c types.ComponentMetadata, summary types.RunSummary)) types.Option[types.Monitor] {
	return monitor.WithOnRunCompleteFunc(callback...)
}
