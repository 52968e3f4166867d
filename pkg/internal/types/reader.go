package types

import "time"

// Reader normalizes one logger's raw delimited files into SampleTables. A Reader is owned
// by a single logger's processing loop; it resolves the sampling frequency and channel set
// from configuration plus the first readable file and holds them for the rest of the run.
type Reader interface {
	// ListFiles returns the logger's raw files in processing order.
	ListFiles() ([]string, error)

	// ReadFile parses one raw file into a SampleTable whose first row is stamped at base.
	// Numeric parse failures coerce to NaN; configured columns beyond the file's width
	// produce NaN columns with a warning. The returned FileQuality carries the detected
	// sampling frequency, per-channel resolutions, and non-fatal warnings.
	ReadFile(path string, base time.Time) (*SampleTable, *FileQuality, error)

	// SampleFrequency returns the resolved sampling frequency in Hz: the configured value
	// when set, otherwise the frequency derived from the first readable file's time
	// column. Zero until resolution succeeds.
	SampleFrequency() float64

	// Channels returns the resolved channel set, nil until the first file is read when
	// names come from file headers.
	Channels() []Channel

	// SetLoggerConfig assigns the logger configuration the reader parses against.
	SetLoggerConfig(cfg *LoggerConfig)

	// ConnectLogger attaches one or more loggers for diagnostics.
	ConnectLogger(...Logger)

	// GetComponentMetadata returns the component's metadata.
	GetComponentMetadata() ComponentMetadata

	// SetComponentMetadata overrides the component's name and id.
	SetComponentMetadata(name string, id string)
}
