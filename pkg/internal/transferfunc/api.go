package transferfunc

import (
	"math"
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NearestSeaState returns the index of the configured sea state with the smallest
// Euclidean distance to (hs, tp). Ties resolve to the lowest index.
func (d *Deriver) NearestSeaState(hs, tp float64) (int, error) {
	states := d.SeaStates()
	if len(states) == 0 {
		return 0, ErrNoSeaStates
	}

	best := 0
	bestDist := math.Inf(1)
	for i, s := range states {
		dist := math.Hypot(hs-s.Hs, tp-s.Tp)
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best, nil
}

// SeaStates returns the configured sea states in order.
func (d *Deriver) SeaStates() []types.SeaState {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]types.SeaState, len(d.states))
	copy(out, d.states)
	return out
}

// SetSeaStates assigns the sea states, aligned positionally with the excitation logger's
// windows.
func (d *Deriver) SetSeaStates(states []types.SeaState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.states = append([]types.SeaState(nil), states...)
}

// SetGravity overrides the gravity constant used in the contamination term.
func (d *Deriver) SetGravity(g float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gravity = g
}

// SetRotationRadians marks rotation series as radians; degrees by default.
func (d *Deriver) SetRotationRadians(radians bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.radians = radians
}

// ConnectLogger attaches loggers for diagnostics.
func (d *Deriver) ConnectLogger(logger ...types.Logger) {
	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		d.loggers = append(d.loggers, l)
		atomic.AddInt32(&d.loggerCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (d *Deriver) GetComponentMetadata() types.ComponentMetadata {
	d.metadataLock.Lock()
	defer d.metadataLock.Unlock()
	return d.componentMetadata
}
