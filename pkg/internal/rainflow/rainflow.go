// Package rainflow implements the fatigue-cycle reducer: each channel's window is
// collapsed to a reversal sequence, cycles are extracted with the four-point rainflow
// algorithm, and the (range, count) pairs are binned into uniform stress-range histograms.
// Bin widths latch per channel at the first window that yields cycles; every histogram of
// a channel then shares one fixed step, so the per-logger aggregate is a plain
// integer-indexed element-wise sum.
package rainflow

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

// MaxBins caps a histogram's bin count. Ranges beyond the cap are clamped into the last
// bin with a warning rather than growing the histogram without bound.
const MaxBins = 500

var (
	// ErrNoBinWidth is returned when a channel yields cycles but neither a bin size nor a
	// bin count is configured to derive one.
	ErrNoBinWidth = errors.New("rainflow: no bin size configured and none derivable")

	// ErrWidthMismatch is returned when histograms with different bin widths are merged.
	ErrWidthMismatch = errors.New("rainflow: histogram bin widths differ")
)

// Reducer is the concrete implementation behind types.RainflowReducer.
type Reducer struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	mu       sync.Mutex
	settings types.RainflowSettings
	widths   []float64 // Per-channel bin widths, 0 until latched.
	sets     []*types.HistogramSet

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32

	monitors    []types.Monitor
	monitorLock sync.Mutex
	mntrCount   int32
}

// NewReducer constructs a rainflow reducer configured with the provided options.
func NewReducer(options ...types.Option[types.RainflowReducer]) types.RainflowReducer {
	r := &Reducer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "RAINFLOW_REDUCER",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	return r
}

// Reduce extracts cycles from every channel of the window, bins them, and folds each
// histogram into the channel's aggregate. The returned histograms are the per-window ones,
// in channel order.
func (r *Reducer) Reduce(w *types.Window) ([]*types.Histogram, error) {
	r.mu.Lock()

	if r.sets == nil {
		r.sets = make([]*types.HistogramSet, len(w.Table.Channels))
		r.widths = make([]float64, len(w.Table.Channels))
		for ci, ch := range w.Table.Channels {
			r.sets[ci] = &types.HistogramSet{LoggerID: w.LoggerID, Channel: ch}
		}
	} else if len(w.Table.Channels) != len(r.sets) {
		err := fmt.Errorf("window has %d channels, established %d", len(w.Table.Channels), len(r.sets))
		r.mu.Unlock()
		r.notifyReduceFailure(w, err)
		return nil, err
	}

	label := w.Start.UTC().Format("2006-01-02 15:04:05")
	hists := make([]*types.Histogram, len(r.sets))
	clamped := 0
	for ci := range r.sets {
		cycles := ExtractCycles(Reversals(dropNaN(w.Channel(ci))))

		// Zero-range cycles (a flat channel's boundary halves) cannot seed a derived
		// width; leave the latch open until real load ranges appear.
		if r.widths[ci] == 0 && maxCycleRange(cycles) > 0 {
			width, err := r.deriveWidthLocked(r.sets[ci].Channel.Name, cycles)
			if err != nil {
				r.mu.Unlock()
				r.notifyReduceFailure(w, err)
				return nil, err
			}
			r.widths[ci] = width
			r.sets[ci].BinWidth = width
		}

		hist, overflowed := Bin(cycles, r.widths[ci], label)
		clamped += overflowed
		hists[ci] = hist
		r.sets[ci].Windows = append(r.sets[ci].Windows, hist)

		if len(hist.Counts) > 0 {
			merged, err := Merge(r.sets[ci].Aggregate, hist)
			if err != nil {
				r.mu.Unlock()
				r.notifyReduceFailure(w, err)
				return nil, err
			}
			merged.Label = "Aggregate"
			r.sets[ci].Aggregate = merged
		}
	}

	r.mu.Unlock()
	if clamped > 0 {
		r.notifyOverflow(w, clamped)
	}
	r.notifyReduced(w, hists)
	return hists, nil
}

// deriveWidthLocked resolves a channel's bin width: the configured per-channel or
// logger-wide size when present, else derived from the first window's largest range and
// the configured bin count. Caller holds r.mu.
func (r *Reducer) deriveWidthLocked(channel string, cycles []types.Cycle) (float64, error) {
	if s, ok := r.settings.ChannelBinSizes[channel]; ok && s > 0 {
		return s, nil
	}
	if r.settings.BinSize > 0 {
		return r.settings.BinSize, nil
	}
	if r.settings.NumBins > 0 {
		if width := ceilTo3(maxCycleRange(cycles) / float64(r.settings.NumBins)); width > 0 {
			return width, nil
		}
	}
	return 0, fmt.Errorf("%w: channel %q", ErrNoBinWidth, channel)
}

func maxCycleRange(cycles []types.Cycle) float64 {
	var max float64
	for _, c := range cycles {
		if c.Range > max {
			max = c.Range
		}
	}
	return max
}

// dropNaN filters non-finite samples before reversal reduction; coerced parse failures
// must not fabricate reversals or corrupt bin indices.
func dropNaN(samples []float64) []float64 {
	out := make([]float64, 0, len(samples))
	for _, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
