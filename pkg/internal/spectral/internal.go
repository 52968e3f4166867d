package spectral

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/mjibson/go-dsp/fft"
	"github.com/moorings-io/fathom/pkg/internal/types"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ResolveWindow maps a window-function name to its gonum implementation. The empty name
// selects the boxcar window.
func ResolveWindow(name string) (func([]float64) []float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "boxcar", "rectangular":
		return window.Rectangular, nil
	case "hann":
		return window.Hann, nil
	case "hamming":
		return window.Hamming, nil
	}
	return nil, fmt.Errorf("unknown window function %q (want boxcar, hann or hamming)", name)
}

// establishLocked latches the Welch parameters and frequency axis from the first window
// and creates the per-channel spectrogram accumulators. Caller holds r.mu.
func (r *Reducer) establishLocked(w *types.Window) error {
	winFunc, err := ResolveWindow(r.settings.WindowName)
	if err != nil {
		return err
	}

	nperseg := r.settings.SegmentLength
	if nperseg <= 0 {
		nperseg = defaultSegmentLength
	}
	if rows := w.Rows(); nperseg > rows {
		nperseg = rows
	}
	if nperseg < 2 {
		return fmt.Errorf("%w: %d rows is too short for a Welch segment", ErrShortWindow, w.Rows())
	}

	noverlap := r.settings.Overlap
	if noverlap <= 0 {
		noverlap = nperseg / 2
	}
	if noverlap >= nperseg {
		return fmt.Errorf("overlap %d must be smaller than segment length %d", noverlap, nperseg)
	}

	fs := w.SampleFrequency
	if fs <= 0 {
		return fmt.Errorf("window carries no sampling frequency")
	}

	values := window.NewValues(winFunc, nperseg)
	freqs := make([]float64, nperseg/2+1)
	for k := range freqs {
		freqs[k] = float64(k) * fs / float64(nperseg)
	}

	specs := make([]*types.Spectrogram, len(w.Table.Channels))
	for ci, ch := range w.Table.Channels {
		specs[ci] = &types.Spectrogram{
			LoggerID:    w.LoggerID,
			Channel:     ch,
			Frequencies: freqs,
		}
	}

	r.nperseg = nperseg
	r.noverlap = noverlap
	r.fs = fs
	r.win = values
	r.winSumSq = floats.Dot(values, values)
	r.freqs = freqs
	r.specs = specs
	return nil
}

// welchLocked computes the one-sided Welch PSD of one channel's samples on the latched
// parameters. Segments are mean-detrended, windowed and averaged; the trailing partial
// segment is dropped. NaN samples propagate into the density. Caller holds r.mu.
func (r *Reducer) welchLocked(samples []float64) []float64 {
	step := r.nperseg - r.noverlap
	nbins := r.nperseg/2 + 1
	psd := make([]float64, nbins)
	seg := make([]float64, r.nperseg)

	segments := 0
	for start := 0; start+r.nperseg <= len(samples); start += step {
		copy(seg, samples[start:start+r.nperseg])
		floats.AddConst(-stat.Mean(seg, nil), seg)
		r.win.Transform(seg)

		spectrum := fft.FFTReal(seg)
		for k := 0; k < nbins; k++ {
			mag := cmplx.Abs(spectrum[k])
			psd[k] += mag * mag
		}
		segments++
	}

	// At least one segment always fits: Reduce rejects windows shorter than nperseg.
	scale := 1 / (r.fs * r.winSumSq * float64(segments))
	for k := 0; k < nbins; k++ {
		psd[k] *= scale
		if k != 0 && !(k == nbins-1 && r.nperseg%2 == 0) {
			psd[k] *= 2
		}
	}
	return psd
}
