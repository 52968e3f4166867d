package stats

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Table returns the per-logger accumulator. The returned handle stays valid for the
// logger's whole run; callers must treat appended records as immutable.
func (r *Reducer) Table() *types.StatisticsTable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table
}

// ConnectLogger attaches loggers for diagnostics.
func (r *Reducer) ConnectLogger(logger ...types.Logger) {
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		r.loggers = append(r.loggers, l)
		atomic.AddInt32(&r.loggerCount, 1)
	}
}

// ConnectMonitor attaches monitors observing reduction progress.
func (r *Reducer) ConnectMonitor(monitor ...types.Monitor) {
	r.monitorLock.Lock()
	defer r.monitorLock.Unlock()
	for _, m := range monitor {
		if m == nil {
			continue
		}
		r.monitors = append(r.monitors, m)
		atomic.AddInt32(&r.mntrCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (r *Reducer) GetComponentMetadata() types.ComponentMetadata {
	r.metadataLock.Lock()
	defer r.metadataLock.Unlock()
	return r.componentMetadata
}
