package orchestrator

import (
	"time"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger attaches loggers for diagnostics.
func WithLogger(logger ...types.Logger) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.ConnectLogger(logger...)
	}
}

// WithMonitor attaches monitors receiving the run's lifecycle callbacks.
func WithMonitor(monitor ...types.Monitor) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.ConnectMonitor(monitor...)
	}
}

// WithCatalog assigns the logger registry the run screens.
func WithCatalog(c types.Catalog) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.SetCatalog(c)
	}
}

// WithExporter assigns the writer that persists accumulated results.
func WithExporter(e types.Exporter) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.SetExporter(e)
	}
}

// WithSink assigns the optional object-store sink for the export tree.
func WithSink(s types.S3Sink) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.SetSink(s)
	}
}

// WithTransferSettings assigns the run's transfer-function pairing.
func WithTransferSettings(t types.TransferSettings) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.SetTransferSettings(t)
	}
}

// WithStartTime fixes the timestamp of the first sample of every logger's file sequence.
func WithStartTime(t time.Time) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.SetStartTime(t)
	}
}

// WithLoggerConcurrency bounds how many loggers screen in parallel.
func WithLoggerConcurrency(n int) types.Option[types.Orchestrator] {
	return func(o types.Orchestrator) {
		o.SetLoggerConcurrency(n)
	}
}
