package spectral_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/spectral"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

var testStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// sine returns rows samples of an amp-scaled sine completing cycles full periods, so its
// energy lands exactly on one FFT bin of a rows-length segment.
func sine(rows, cycles int, amp float64) []float64 {
	out := make([]float64, rows)
	for n := range out {
		out[n] = amp * math.Sin(2*math.Pi*float64(cycles)*float64(n)/float64(rows))
	}
	return out
}

// alternating returns +1/-1 samples, all energy at the Nyquist bin.
func alternating(rows int) []float64 {
	out := make([]float64, rows)
	for n := range out {
		if n%2 == 0 {
			out[n] = 1
		} else {
			out[n] = -1
		}
	}
	return out
}

func makeWindow(seq int, start time.Time, fs float64, values ...[]float64) *types.Window {
	rows := len(values[0])
	ts := make([]time.Time, rows)
	dt := time.Duration(float64(time.Second) / fs)
	for i := 0; i < rows; i++ {
		ts[i] = start.Add(time.Duration(i) * dt)
	}
	channels := make([]types.Channel, len(values))
	names := []string{"AccX", "AccY", "AccZ"}
	for ci := range values {
		channels[ci] = types.Channel{Name: names[ci], Unit: "m/s^2", Index: ci}
	}
	return &types.Window{
		LoggerID:        "lg-01",
		Seq:             seq,
		Start:           start,
		End:             ts[rows-1],
		SampleFrequency: fs,
		Table: &types.SampleTable{
			Channels:   channels,
			Timestamps: ts,
			Values:     values,
		},
	}
}

func TestReduceSingleSegmentSineDensity(t *testing.T) {
	r := spectral.NewReducer()

	// 64 samples at 8 Hz, 8 full cycles => 1 Hz, exactly bin 8. The second channel
	// doubles the amplitude, which must quadruple the density.
	record, err := r.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1), sine(64, 8, 2)))
	if err != nil {
		t.Fatalf("Reduce error: %v", err)
	}

	// Defaults clamp nperseg to the 64-row window: a single segment, boxcar window.
	// PSD at the sine bin is 2*(N/2)^2/(fs*N) = N/(2*fs) = 4.
	if got := record.Amplitudes[0][8]; math.Abs(got-4) > 1e-9 {
		t.Errorf("expected density 4 at bin 8, got %v", got)
	}
	if got := record.Amplitudes[1][8]; math.Abs(got-16) > 1e-9 {
		t.Errorf("expected density 16 for the doubled amplitude, got %v", got)
	}
	for k, v := range record.Amplitudes[0] {
		if k == 8 {
			continue
		}
		if math.Abs(v) > 1e-9 {
			t.Errorf("expected no leakage at bin %d with boxcar window, got %v", k, v)
		}
	}
}

func TestReduceFrequencyAxis(t *testing.T) {
	r := spectral.NewReducer()

	if _, err := r.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1))); err != nil {
		t.Fatalf("Reduce error: %v", err)
	}

	freqs := r.Frequencies()
	if len(freqs) != 33 {
		t.Fatalf("expected 33 one-sided bins for nperseg 64, got %d", len(freqs))
	}
	if freqs[0] != 0 {
		t.Errorf("expected DC bin at 0 Hz, got %v", freqs[0])
	}
	if math.Abs(freqs[8]-1) > 1e-12 {
		t.Errorf("expected bin 8 at 1 Hz, got %v", freqs[8])
	}
	if math.Abs(freqs[32]-4) > 1e-12 {
		t.Errorf("expected Nyquist bin at 4 Hz, got %v", freqs[32])
	}
}

func TestReduceNyquistNotDoubled(t *testing.T) {
	r := spectral.NewReducer()

	record, err := r.Reduce(makeWindow(0, testStart, 8, alternating(64)))
	if err != nil {
		t.Fatalf("Reduce error: %v", err)
	}

	// |X[N/2]| = N for the alternating signal; undoubled density N^2/(fs*N) = 8.
	if got := record.Amplitudes[0][32]; math.Abs(got-8) > 1e-9 {
		t.Errorf("expected undoubled Nyquist density 8, got %v", got)
	}
	if got := record.Amplitudes[0][0]; math.Abs(got) > 1e-9 {
		t.Errorf("expected detrended DC bin near 0, got %v", got)
	}
}

func TestReduceOverlappingSegments(t *testing.T) {
	r := spectral.NewReducer(spectral.WithSettings(types.SpectralSettings{
		SegmentLength: 64,
		Overlap:       32,
	}))

	// 128 rows with nperseg 64 and half overlap: segments at 0, 32 and 64. The sine is
	// periodic over 64 samples, so every segment sees the same on-bin tone.
	record, err := r.Reduce(makeWindow(0, testStart, 8, sine(128, 16, 1)))
	if err != nil {
		t.Fatalf("Reduce error: %v", err)
	}

	if got := len(record.Frequencies); got != 33 {
		t.Fatalf("expected 33 bins from the configured segment length, got %d", got)
	}
	if got := record.Amplitudes[0][8]; math.Abs(got-4) > 1e-9 {
		t.Errorf("expected averaged density 4 at bin 8, got %v", got)
	}
}

func TestReduceHannWindowSelectable(t *testing.T) {
	boxcar := spectral.NewReducer()
	hann := spectral.NewReducer(spectral.WithSettings(types.SpectralSettings{WindowName: "hann"}))

	b, err := boxcar.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1)))
	if err != nil {
		t.Fatalf("boxcar Reduce error: %v", err)
	}
	h, err := hann.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1)))
	if err != nil {
		t.Fatalf("hann Reduce error: %v", err)
	}

	peak := 0
	for k, v := range h.Amplitudes[0] {
		if v > h.Amplitudes[0][peak] {
			peak = k
		}
	}
	if peak != 8 {
		t.Errorf("expected Hann peak at bin 8, got %d", peak)
	}
	if h.Amplitudes[0][7] < 1e-6 || h.Amplitudes[0][9] < 1e-6 {
		t.Errorf("expected Hann sidelobe leakage into neighbour bins, got %v and %v",
			h.Amplitudes[0][7], h.Amplitudes[0][9])
	}
	if math.Abs(h.Amplitudes[0][8]-b.Amplitudes[0][8]) < 1e-9 {
		t.Errorf("expected Hann and boxcar densities to differ at bin 8")
	}
}

func TestReduceNaNPropagates(t *testing.T) {
	r := spectral.NewReducer()

	values := sine(64, 8, 1)
	values[10] = math.NaN()
	record, err := r.Reduce(makeWindow(0, testStart, 8, values))
	if err != nil {
		t.Fatalf("Reduce error: %v", err)
	}

	for k, v := range record.Amplitudes[0] {
		if !math.IsNaN(v) {
			t.Fatalf("expected NaN density at bin %d, got %v", k, v)
		}
	}
}

func TestReduceShortWindowRejected(t *testing.T) {
	r := spectral.NewReducer()

	if _, err := r.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1))); err != nil {
		t.Fatalf("Reduce error: %v", err)
	}

	short := makeWindow(1, testStart.Add(8*time.Second), 8, sine(32, 4, 1))
	short.Short = true
	if _, err := r.Reduce(short); !errors.Is(err, spectral.ErrShortWindow) {
		t.Fatalf("expected ErrShortWindow, got %v", err)
	}
	if got := len(r.Spectrograms()[0].Rows); got != 1 {
		t.Errorf("expected the rejected window to leave the spectrogram untouched, got %d rows", got)
	}
}

func TestReduceFrequencyChangeRejected(t *testing.T) {
	r := spectral.NewReducer()

	if _, err := r.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1))); err != nil {
		t.Fatalf("Reduce error: %v", err)
	}
	if _, err := r.Reduce(makeWindow(1, testStart.Add(8*time.Second), 10, sine(64, 8, 1))); !errors.Is(err, spectral.ErrAxisMismatch) {
		t.Fatalf("expected ErrAxisMismatch, got %v", err)
	}
}

func TestReduceOutOfOrderRejected(t *testing.T) {
	r := spectral.NewReducer()

	if _, err := r.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1))); err != nil {
		t.Fatalf("Reduce error: %v", err)
	}
	if _, err := r.Reduce(makeWindow(1, testStart, 8, sine(64, 8, 1))); !errors.Is(err, spectral.ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder, got %v", err)
	}
}

func TestSpectrogramAccumulation(t *testing.T) {
	r := spectral.NewReducer()

	first := makeWindow(0, testStart, 8, sine(64, 8, 1), sine(64, 4, 1))
	second := makeWindow(1, testStart.Add(8*time.Second), 8, sine(64, 8, 1), sine(64, 4, 1))
	if _, err := r.Reduce(first); err != nil {
		t.Fatalf("Reduce error: %v", err)
	}
	if _, err := r.Reduce(second); err != nil {
		t.Fatalf("Reduce error: %v", err)
	}

	specs := r.Spectrograms()
	if len(specs) != 2 {
		t.Fatalf("expected 2 per-channel spectrograms, got %d", len(specs))
	}
	for _, spec := range specs {
		if spec.LoggerID != "lg-01" {
			t.Errorf("expected logger id lg-01, got %q", spec.LoggerID)
		}
		if spec.Len() != 2 {
			t.Fatalf("expected 2 accumulated rows, got %d", spec.Len())
		}
		if !spec.Times[0].Equal(first.Start) || !spec.Times[1].Equal(second.Start) {
			t.Errorf("expected ascending window start times, got %v", spec.Times)
		}
		if len(spec.Frequencies) != 33 || len(spec.Rows[0]) != 33 {
			t.Errorf("expected rows aligned to the 33-bin axis")
		}
	}
	if specs[0].Channel.Name != "AccX" || specs[1].Channel.Name != "AccY" {
		t.Errorf("expected spectrograms in channel order, got %q, %q",
			specs[0].Channel.Name, specs[1].Channel.Name)
	}
}

func TestReduceUnknownWindowName(t *testing.T) {
	r := spectral.NewReducer(spectral.WithSettings(types.SpectralSettings{WindowName: "blackman"}))

	if _, err := r.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1))); err == nil {
		t.Fatal("expected an error for an unsupported window function")
	}
	if r.Frequencies() != nil {
		t.Errorf("expected no axis established after a failed first window")
	}
}

func TestReduceOverlapTooLarge(t *testing.T) {
	r := spectral.NewReducer(spectral.WithSettings(types.SpectralSettings{
		SegmentLength: 64,
		Overlap:       64,
	}))

	if _, err := r.Reduce(makeWindow(0, testStart, 8, sine(64, 8, 1))); err == nil {
		t.Fatal("expected an error when overlap is not smaller than segment length")
	}
}
