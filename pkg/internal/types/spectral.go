package types

import "time"

// PSDRecord is one window's Welch power spectral density for every channel. The frequency
// vector is identical across all windows of one logger; holding nperseg and fs constant for
// the logger's full run is a hard invariant, and a mid-run change is a configuration error.
type PSDRecord struct {
	Start       time.Time
	End         time.Time
	Frequencies []float64
	Amplitudes  [][]float64 // Indexed [channel][bin], aligned to the logger's channel order.
}

// Spectrogram accumulates one channel's PSD rows over a logger's run. The time axis is the
// window start times in ascending order; rows are append-only and never reordered or
// interpolated.
type Spectrogram struct {
	LoggerID    string
	Channel     Channel
	Frequencies []float64   // Fixed column axis, set by the first appended record.
	Times       []time.Time // Ascending window start times.
	Rows        [][]float64 // One amplitude row per window, aligned to Frequencies.
}

// Len returns the number of accumulated PSD rows.
func (s *Spectrogram) Len() int { return len(s.Rows) }
