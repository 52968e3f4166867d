package builder

import (
	"time"

	"github.com/moorings-io/fathom/pkg/internal/orchestrator"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NewOrchestrator creates a screening orchestrator with the provided configuration
// options.
func NewOrchestrator(options ...types.Option[types.Orchestrator]) types.Orchestrator {
	return orchestrator.NewOrchestrator(options...)
}

// OrchestratorWithLogger adds one or more loggers to the orchestrator.
func OrchestratorWithLogger(logger ...types.Logger) types.Option[types.Orchestrator] {
	return orchestrator.WithLogger(logger...)
}

// OrchestratorWithMonitor adds one or more monitors to the orchestrator.
func OrchestratorWithMonitor(monitor ...types.Monitor) types.Option[types.Orchestrator] {
	return orchestrator.WithMonitor(monitor...)
}

// OrchestratorWithCatalog assigns the logger catalog the run screens.
func OrchestratorWithCatalog(c types.Catalog) types.Option[types.Orchestrator] {
	return orchestrator.WithCatalog(c)
}

// OrchestratorWithExporter assigns the export writer.
func OrchestratorWithExporter(e types.Exporter) types.Option[types.Orchestrator] {
	return orchestrator.WithExporter(e)
}

// OrchestratorWithSink assigns the optional object-store uploader.
func OrchestratorWithSink(s types.S3Sink) types.Option[types.Orchestrator] {
	return orchestrator.WithSink(s)
}

// OrchestratorWithTransferSettings assigns the run-level transfer-function pairing.
func OrchestratorWithTransferSettings(t types.TransferSettings) types.Option[types.Orchestrator] {
	return orchestrator.WithTransferSettings(t)
}

// OrchestratorWithStartTime pins the timestamp of the run's first sample.
func OrchestratorWithStartTime(t time.Time) types.Option[types.Orchestrator] {
	return orchestrator.WithStartTime(t)
}

// OrchestratorWithLoggerConcurrency sets the number of loggers screened in parallel.
func OrchestratorWithLoggerConcurrency(n int) types.Option[types.Orchestrator] {
	return orchestrator.WithLoggerConcurrency(n)
}
