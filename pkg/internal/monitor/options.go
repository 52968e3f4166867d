// Package monitor provides options for configuring Monitor components.
package monitor

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a Monitor.
func WithLogger(logger ...types.Logger) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.ConnectLogger(logger...)
	}
}

// WithOnLoggerStartFunc creates an option to register a callback for the OnLoggerStart
// event.
func WithOnLoggerStartFunc(callback ...func(c types.ComponentMetadata, loggerID string, totalFiles int)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnLoggerStart(callback...)
	}
}

// WithOnFileProcessedFunc creates an option to register a callback for the OnFileProcessed
// event.
func WithOnFileProcessedFunc(callback ...func(c types.ComponentMetadata, snapshot types.ProgressSnapshot)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnFileProcessed(callback...)
	}
}

// WithOnWindowEmittedFunc creates an option to register a callback for the OnWindowEmitted
// event.
func WithOnWindowEmittedFunc(callback ...func(c types.ComponentMetadata, w *types.Window)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnWindowEmitted(callback...)
	}
}

// WithOnBadFileFunc creates an option to register a callback for the OnBadFile event.
func WithOnBadFileFunc(callback ...func(c types.ComponentMetadata, bad types.BadFile)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnBadFile(callback...)
	}
}

// WithOnWarningFunc creates an option to register a callback for the OnWarning event.
func WithOnWarningFunc(callback ...func(c types.ComponentMetadata, loggerID string, warning string)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnWarning(callback...)
	}
}

// WithOnLoggerExportedFunc creates an option to register a callback for the
// OnLoggerExported event.
func WithOnLoggerExportedFunc(callback ...func(c types.ComponentMetadata, result *types.LoggerResult)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnLoggerExported(callback...)
	}
}

// WithOnCancelFunc creates an option to register a callback for the OnCancel event.
func WithOnCancelFunc(callback ...func(c types.ComponentMetadata, loggerID string)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnCancel(callback...)
	}
}

// WithOnRunCompleteFunc creates an option to register a callback for the OnRunComplete
// event.
func WithOnRunCompleteFunc(callback ...func(c types.ComponentMetadata, summary types.RunSummary)) types.Option[types.Monitor] {
	return func(m types.Monitor) {
		m.RegisterOnRunComplete(callback...)
	}
}
