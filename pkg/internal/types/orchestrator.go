package types

import (
	"context"
	"time"
)

// Orchestrator drives screening across all configured loggers: reading files in index
// order, windowing, running the enabled reducers, and triggering export. Cancellation is
// cooperative and checked between files, never mid-file, so already-exported results are
// always preserved.
type Orchestrator interface {
	// Run processes every enabled logger and returns the run summary. The error is
	// non-nil only for pre-run configuration failures; per-file problems are recorded in
	// the screening report instead.
	Run(ctx context.Context) (*RunSummary, error)

	// Results returns the per-logger results merged so far, in completion order. Only
	// loggers that reached Exported appear.
	Results() []*LoggerResult

	// StateOf reports the screening state of one logger.
	StateOf(loggerID string) LoggerState

	// SetCatalog assigns the logger registry the run screens.
	SetCatalog(c Catalog)

	// SetExporter assigns the writer that persists accumulated results.
	SetExporter(e Exporter)

	// SetSink assigns the optional object-store sink the export tree is uploaded to
	// after the run.
	SetSink(s S3Sink)

	// SetTransferSettings assigns the run's transfer-function pairing.
	SetTransferSettings(t TransferSettings)

	// SetStartTime fixes the timestamp of the first logger's first sample. The zero
	// value stamps samples against the run's wall-clock start.
	SetStartTime(t time.Time)

	// SetLoggerConcurrency bounds how many loggers screen in parallel. Values below 1
	// mean sequential processing in registration order.
	SetLoggerConcurrency(n int)

	ConnectLogger(...Logger)
	ConnectMonitor(...Monitor)
	GetComponentMetadata() ComponentMetadata
}
