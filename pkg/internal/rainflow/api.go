package rainflow

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Sets returns the per-channel accumulators in channel order, nil before the first window
// has been reduced.
func (r *Reducer) Sets() []*types.HistogramSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sets == nil {
		return nil
	}
	out := make([]*types.HistogramSet, len(r.sets))
	copy(out, r.sets)
	return out
}

// SetSettings assigns the binning parameters. Bin widths latch per channel at the first
// window that yields cycles.
func (r *Reducer) SetSettings(s types.RainflowSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
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
