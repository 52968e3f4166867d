package types

// StatisticsReducer computes per-channel min/max/mean/std for each window and owns the
// logger's ordered statistics table.
type StatisticsReducer interface {
	// Reduce computes the window's statistics record and appends it to the table.
	Reduce(w *Window) *StatisticsRecord

	// Table returns the per-logger accumulator. The returned handle stays valid for the
	// logger's whole run; callers must treat appended records as immutable.
	Table() *StatisticsTable

	ConnectLogger(...Logger)
	ConnectMonitor(...Monitor)
	GetComponentMetadata() ComponentMetadata
}

// SpectralReducer computes one Welch PSD record per window and accumulates per-channel
// spectrograms ordered by window start time.
type SpectralReducer interface {
	// Reduce computes the window's PSD and appends one row per channel to the
	// spectrograms. It returns an error when the resulting frequency axis differs from
	// the axis established by the logger's earlier windows, or when the append would
	// break ascending time order.
	Reduce(w *Window) (*PSDRecord, error)

	// Spectrograms returns the per-channel accumulators in channel order.
	Spectrograms() []*Spectrogram

	// Frequencies returns the logger's established frequency axis, nil before the first
	// window has been reduced.
	Frequencies() []float64

	// SetSettings assigns the Welch parameters. Effective only before the first Reduce
	// call; the axis is latched from the first window.
	SetSettings(s SpectralSettings)

	ConnectLogger(...Logger)
	ConnectMonitor(...Monitor)
	GetComponentMetadata() ComponentMetadata
}

// RainflowReducer reduces each window to stress-range cycle histograms and maintains the
// per-channel aggregate histograms for the logger.
type RainflowReducer interface {
	// Reduce extracts cycles from every channel of the window, bins them, and folds each
	// histogram into the channel's aggregate. The returned histograms are the per-window
	// ones, in channel order.
	Reduce(w *Window) ([]*Histogram, error)

	// Sets returns the per-channel accumulators in channel order.
	Sets() []*HistogramSet

	// SetSettings assigns the binning parameters. Bin widths latch per channel at the
	// first window that yields cycles and stay fixed for the run.
	SetSettings(s RainflowSettings)

	ConnectLogger(...Logger)
	ConnectMonitor(...Monitor)
	GetComponentMetadata() ComponentMetadata
}
