package orchestrator

import (
	"sync/atomic"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Results returns the per-logger results merged so far, in completion order. Only loggers
// that reached Exported appear.
func (o *Orchestrator) Results() []*types.LoggerResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*types.LoggerResult, len(o.results))
	copy(out, o.results)
	return out
}

// StateOf reports the screening state of one logger. Unknown ids are Idle.
func (o *Orchestrator) StateOf(loggerID string) types.LoggerState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.states[loggerID]
}

// SetCatalog assigns the logger registry the run screens.
func (o *Orchestrator) SetCatalog(c types.Catalog) {
	o.catalog = c
}

// SetExporter assigns the writer that persists accumulated results.
func (o *Orchestrator) SetExporter(e types.Exporter) {
	o.exporter = e
}

// SetSink assigns the optional object-store sink the export tree is uploaded to after the
// run.
func (o *Orchestrator) SetSink(s types.S3Sink) {
	o.sink = s
}

// SetTransferSettings assigns the run's transfer-function pairing.
func (o *Orchestrator) SetTransferSettings(t types.TransferSettings) {
	o.transfer = t
}

// SetStartTime fixes the timestamp of the first logger's first sample. The zero value
// stamps samples against the run's wall-clock start.
func (o *Orchestrator) SetStartTime(t time.Time) {
	o.startTime = t
}

// SetLoggerConcurrency bounds how many loggers screen in parallel. Values below 1 mean
// sequential processing in registration order.
func (o *Orchestrator) SetLoggerConcurrency(n int) {
	o.workers = n
}

// ConnectLogger attaches loggers for diagnostics. Per-logger components built during a run
// inherit them.
func (o *Orchestrator) ConnectLogger(logger ...types.Logger) {
	o.loggersLock.Lock()
	defer o.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		o.loggers = append(o.loggers, l)
		atomic.AddInt32(&o.loggerCount, 1)
	}
}

// ConnectMonitor attaches monitors receiving run, progress, bad-file, warning, and export
// callbacks.
func (o *Orchestrator) ConnectMonitor(monitor ...types.Monitor) {
	o.monitorLock.Lock()
	defer o.monitorLock.Unlock()
	for _, m := range monitor {
		if m == nil {
			continue
		}
		o.monitors = append(o.monitors, m)
		atomic.AddInt32(&o.mntrCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (o *Orchestrator) GetComponentMetadata() types.ComponentMetadata {
	o.metadataLock.Lock()
	defer o.metadataLock.Unlock()
	return o.componentMetadata
}
