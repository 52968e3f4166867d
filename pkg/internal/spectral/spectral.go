// Package spectral implements the Welch PSD reducer: one power spectral density per
// channel per window, accumulated into per-channel spectrograms whose time axis is the
// ascending sequence of window start times. The segment length, overlap, window function
// and sampling frequency are latched from the first reduced window and define the logger's
// frequency axis; every later window must reproduce that axis exactly.
package spectral

import (
	"errors"
	"fmt"
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
	"gonum.org/v1/gonum/dsp/window"
)

var (
	// ErrShortWindow is returned when a window holds fewer samples than the established
	// segment length, so no PSD on the logger's axis can be computed from it.
	ErrShortWindow = errors.New("spectral: window shorter than established segment length")

	// ErrAxisMismatch is returned when a window would produce a frequency axis different
	// from the axis established by the logger's earlier windows.
	ErrAxisMismatch = errors.New("spectral: frequency axis mismatch")

	// ErrOutOfOrder is returned when appending a window would break the spectrogram's
	// ascending time order.
	ErrOutOfOrder = errors.New("spectral: window start not after previous window")
)

// defaultSegmentLength is the Welch nperseg used when the settings leave it unset.
const defaultSegmentLength = 256

// Reducer is the concrete implementation behind types.SpectralReducer.
type Reducer struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	mu       sync.Mutex
	settings types.SpectralSettings

	// Latched by the first Reduce call.
	nperseg  int
	noverlap int
	fs       float64
	win      window.Values
	winSumSq float64
	freqs    []float64
	specs    []*types.Spectrogram

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32

	monitors    []types.Monitor
	monitorLock sync.Mutex
	mntrCount   int32
}

// NewReducer constructs a spectral reducer configured with the provided options.
func NewReducer(options ...types.Option[types.SpectralReducer]) types.SpectralReducer {
	r := &Reducer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SPECTRAL_REDUCER",
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

// Reduce computes the window's PSD and appends one row per channel to the spectrograms.
func (r *Reducer) Reduce(w *types.Window) (*types.PSDRecord, error) {
	r.mu.Lock()

	if r.freqs == nil {
		if err := r.establishLocked(w); err != nil {
			r.mu.Unlock()
			r.notifyReduceFailure(w, err)
			return nil, err
		}
	} else {
		if w.SampleFrequency != r.fs {
			err := fmt.Errorf("%w: window fs %v, established fs %v", ErrAxisMismatch, w.SampleFrequency, r.fs)
			r.mu.Unlock()
			r.notifyReduceFailure(w, err)
			return nil, err
		}
		if len(w.Table.Channels) != len(r.specs) {
			err := fmt.Errorf("%w: window has %d channels, established %d", ErrAxisMismatch, len(w.Table.Channels), len(r.specs))
			r.mu.Unlock()
			r.notifyReduceFailure(w, err)
			return nil, err
		}
		if w.Rows() < r.nperseg {
			err := fmt.Errorf("%w: %d rows, segment length %d", ErrShortWindow, w.Rows(), r.nperseg)
			r.mu.Unlock()
			r.notifyReduceFailure(w, err)
			return nil, err
		}
	}

	if n := len(r.specs[0].Times); n > 0 && !w.Start.After(r.specs[0].Times[n-1]) {
		err := fmt.Errorf("%w: start %v, previous %v", ErrOutOfOrder, w.Start, r.specs[0].Times[n-1])
		r.mu.Unlock()
		r.notifyReduceFailure(w, err)
		return nil, err
	}

	record := &types.PSDRecord{
		Start:       w.Start,
		End:         w.End,
		Frequencies: r.freqs,
		Amplitudes:  make([][]float64, len(r.specs)),
	}
	for ci := range r.specs {
		row := r.welchLocked(w.Channel(ci))
		record.Amplitudes[ci] = row
		r.specs[ci].Times = append(r.specs[ci].Times, w.Start)
		r.specs[ci].Rows = append(r.specs[ci].Rows, row)
	}

	r.mu.Unlock()
	r.notifyReduced(w, record)
	return record, nil
}
