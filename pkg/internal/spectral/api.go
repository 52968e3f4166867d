package spectral

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Spectrograms returns the per-channel accumulators in channel order, nil before the first
// window has been reduced.
func (r *Reducer) Spectrograms() []*types.Spectrogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.specs == nil {
		return nil
	}
	out := make([]*types.Spectrogram, len(r.specs))
	copy(out, r.specs)
	return out
}

// Frequencies returns the logger's established frequency axis, nil before the first window
// has been reduced.
func (r *Reducer) Frequencies() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.freqs
}

// SetSettings assigns the Welch parameters. Effective only before the first Reduce call.
func (r *Reducer) SetSettings(s types.SpectralSettings) {
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
