package types

// Channel identifies one measurement series recorded by a logger: its name, engineering unit,
// and ordinal position within the logger's channel set. Channel count and order are fixed per
// logger for the duration of a run; every window produced for a logger presents the same
// channel set in the same order.
type Channel struct {
	Name  string // Channel name as configured or read from the file header.
	Unit  string // Engineering unit string, e.g. "m/s^2", "kNm", "deg".
	Index int    // Ordinal position within the logger's selected channel set.
}

// HeaderLayout describes where a raw file's metadata rows sit. Row indices are zero-based
// positions within the file; a value of -1 means the row is absent.
type HeaderLayout struct {
	ChannelRow   int // Row carrying channel names, -1 if the file has none.
	UnitsRow     int // Row carrying unit strings, -1 if the file has none.
	FirstDataRow int // First row of numeric samples.
}

// SpectralSettings holds the per-logger Welch parameters. SegmentLength and Overlap are in
// samples; holding them constant for a logger's full run is what keeps the frequency axis
// of every window identical, which the spectrogram accumulation relies on.
type SpectralSettings struct {
	Enabled       bool
	SegmentLength int    // Welch nperseg; clamped to the window length when larger.
	Overlap       int    // Welch noverlap; defaults to SegmentLength/2.
	WindowName    string // "boxcar" (default), "hann" or "hamming".
}

// RainflowSettings holds the per-logger rainflow binning parameters. BinSize wins when both
// it and NumBins are set; NumBins derives a bin size from the first window's largest range.
// ChannelBinSizes overrides BinSize for individual channels by name.
type RainflowSettings struct {
	Enabled         bool
	BinSize         float64
	NumBins         int
	ChannelBinSizes map[string]float64
}

// FatigueSettings holds the per-logger Miner's-rule parameters: the piecewise S-N curve
// applied to every channel's aggregate histogram. Fatigue requires the rainflow reducer.
type FatigueSettings struct {
	Enabled  bool
	Segments []SNSegment
	Rule     SegmentRule
}

// LoggerConfig is the immutable configuration entity for one logger. It is created from
// project configuration before any file is read and is never mutated by reducers; cloning
// it for a sibling logger is an explicit field-by-field copy via Clone.
type LoggerConfig struct {
	ID        string // Unique logger identifier; duplicates are a fatal configuration error.
	Name      string // Human-readable logger title used in report and export headers.
	Path      string // Directory holding the logger's raw files.
	Extension string // Raw file extension, e.g. ".csv".
	Delimiter string // Column delimiter; empty means any run of whitespace.

	Header          HeaderLayout
	TimeColumn      int   // Column index of the elapsed-time/timestamp column.
	SelectedColumns []int // Data column indices to screen, in channel order.

	ChannelNames    []string  // Optional overrides for header-derived channel names.
	ChannelUnits    []string  // Optional overrides for header-derived unit strings.
	UnitConversions []float64 // Per-channel multiplicative conversion factors; empty means 1.0.

	SampleFrequency float64 // Hz; 0 means detect from the time column of the first file.
	ExpectedSamples int     // Expected rows per file; 0 disables the completeness check.
	WindowSeconds   float64 // Analysis window length in seconds.

	Statistics bool // Statistics reducer toggle.
	Spectral   SpectralSettings
	Rainflow   RainflowSettings
	Fatigue    FatigueSettings
}

// Clone returns a field-by-field copy of the configuration with slices and maps duplicated,
// so a derived logger cannot alias the original's backing arrays.
func (c *LoggerConfig) Clone() *LoggerConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.SelectedColumns = append([]int(nil), c.SelectedColumns...)
	out.ChannelNames = append([]string(nil), c.ChannelNames...)
	out.ChannelUnits = append([]string(nil), c.ChannelUnits...)
	out.UnitConversions = append([]float64(nil), c.UnitConversions...)
	if c.Rainflow.ChannelBinSizes != nil {
		out.Rainflow.ChannelBinSizes = make(map[string]float64, len(c.Rainflow.ChannelBinSizes))
		for k, v := range c.Rainflow.ChannelBinSizes {
			out.Rainflow.ChannelBinSizes[k] = v
		}
	}
	out.Fatigue.Segments = append([]SNSegment(nil), c.Fatigue.Segments...)
	return &out
}

// WindowLength converts the configured window duration to a sample count for the given
// sampling frequency. A zero result means windowing is impossible and the logger cannot run.
func (c *LoggerConfig) WindowLength(fs float64) int {
	if c.WindowSeconds <= 0 || fs <= 0 {
		return 0
	}
	n := int(c.WindowSeconds*fs + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// BinSizeFor resolves the rainflow bin size for a channel, preferring the per-channel
// override, then the logger-wide size. Zero means the size must be derived from NumBins.
func (c *LoggerConfig) BinSizeFor(channel string) float64 {
	if s, ok := c.Rainflow.ChannelBinSizes[channel]; ok {
		return s
	}
	return c.Rainflow.BinSize
}

// Catalog is the logger registry: the validated set of LoggerConfigs a run screens,
// in registration order. Registration rejects duplicate ids; lookups never mutate.
type Catalog interface {
	// Register adds a logger configuration after validating it. Duplicate ids are a
	// configuration error.
	Register(cfg *LoggerConfig) error

	// Get returns the configuration registered under id.
	Get(id string) (*LoggerConfig, bool)

	// Loggers returns all registered configurations in registration order.
	Loggers() []*LoggerConfig

	// Len returns the number of registered loggers.
	Len() int

	// Channels resolves the channel set for a registered logger from its configured
	// names and units.
	Channels(id string) ([]Channel, error)

	// ConnectLogger attaches one or more loggers for diagnostics.
	ConnectLogger(...Logger)

	// GetComponentMetadata returns the component's metadata.
	GetComponentMetadata() ComponentMetadata

	// SetComponentMetadata overrides the component's name and id.
	SetComponentMetadata(name string, id string)
}
