package types

import "time"

// LoggerState tracks a logger through the screening state machine. Transitions run
// Idle -> Windowing -> Reducing -> Exported; a logger with no raw files moves directly to
// Exported with a diagnostic.
type LoggerState int

const (
	StateIdle LoggerState = iota
	StateWindowing
	StateReducing
	StateExported
)

func (s LoggerState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWindowing:
		return "Windowing"
	case StateReducing:
		return "Reducing"
	case StateExported:
		return "Exported"
	default:
		return "Unknown"
	}
}

// ProgressSnapshot is the immutable per-file progress report handed to monitor callbacks.
type ProgressSnapshot struct {
	RunID          string
	LoggerID       string
	FileIndex      int
	Filename       string
	FilesProcessed int
	TotalFiles     int
	Elapsed        time.Duration
}

// BadFile records a per-file shape or read failure. Bad files are skipped for reduction but
// never abort the run; they surface in the end-of-run screening report.
type BadFile struct {
	LoggerID string
	Filename string
	Reason   string
	Detail   string
}

// FileQuality is the per-file data-quality outcome from the reader: the detected sampling
// frequency, per-channel quantization resolutions (smallest distinct successive difference),
// and any non-fatal warnings raised while parsing.
type FileQuality struct {
	Filename        string
	Rows            int
	SampleFrequency float64
	Resolutions     []float64 // Aligned to channel order; NaN when a channel never moved.
	Warnings        []string
}

// LoggerResult bundles everything one logger produced: its accumulated reducer outputs, the
// bad-file registry, and run diagnostics. Results are merged into the run total only after
// the logger reaches Exported.
type LoggerResult struct {
	Logger         *LoggerConfig
	State          LoggerState
	Channels       []Channel
	FilesProcessed int
	WindowsEmitted int
	Statistics     *StatisticsTable
	Spectrograms   []*Spectrogram
	Histograms     []*HistogramSet
	Damage         []ChannelDamage
	BadFiles       []BadFile
	Quality        []FileQuality
	Diagnostics    []string
}

// ChannelDamage is the Miner's-rule fatigue damage accumulated over one channel's aggregate
// histogram.
type ChannelDamage struct {
	Channel Channel
	Damage  float64
}

// RunSummary describes a completed (or cancelled) screening run.
type RunSummary struct {
	RunID          string
	Start          time.Time
	Elapsed        time.Duration
	LoggersTotal   int
	LoggersDone    int
	FilesProcessed int
	WindowsEmitted int
	BadFiles       int
	Warnings       int
	Cancelled      bool
	PeakCPUPercent float64
	PeakRAMPercent float64
}
