package types

// Monitor provides callback hooks for screening telemetry. Components invoke the hooks as
// they work; the GUI shell (or tests) register callbacks to observe progress without the
// core ever depending on a presentation layer. All Invoke methods are safe with zero
// registered callbacks.
type Monitor interface {
	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata

	RegisterOnLoggerStart(...func(ComponentMetadata, string, int))
	InvokeOnLoggerStart(meta ComponentMetadata, loggerID string, totalFiles int)

	RegisterOnFileProcessed(...func(ComponentMetadata, ProgressSnapshot))
	InvokeOnFileProcessed(meta ComponentMetadata, snapshot ProgressSnapshot)

	RegisterOnWindowEmitted(...func(ComponentMetadata, *Window))
	InvokeOnWindowEmitted(meta ComponentMetadata, w *Window)

	RegisterOnBadFile(...func(ComponentMetadata, BadFile))
	InvokeOnBadFile(meta ComponentMetadata, bad BadFile)

	RegisterOnWarning(...func(ComponentMetadata, string, string))
	InvokeOnWarning(meta ComponentMetadata, loggerID string, warning string)

	RegisterOnLoggerExported(...func(ComponentMetadata, *LoggerResult))
	InvokeOnLoggerExported(meta ComponentMetadata, result *LoggerResult)

	RegisterOnCancel(...func(ComponentMetadata, string))
	InvokeOnCancel(meta ComponentMetadata, loggerID string)

	RegisterOnRunComplete(...func(ComponentMetadata, RunSummary))
	InvokeOnRunComplete(meta ComponentMetadata, summary RunSummary)
}
