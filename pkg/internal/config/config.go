// Package config loads the screening control file: the yaml document naming the run's
// loggers, their reducer settings, the output formats, and the optional transfer-function
// and object-store blocks. Load fills defaults and validates the document before
// anything touches the raw data tree; validation failures are fatal and name the
// offending field.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moorings-io/fathom/pkg/internal/spectral"
)

// Control is the parsed control file for one screening run.
type Control struct {
	Project     string        `yaml:"project"`
	StartTime   time.Time     `yaml:"start_time"`
	Concurrency int           `yaml:"concurrency"`
	LogLevel    string        `yaml:"log_level"`
	Output      OutputBlock   `yaml:"output"`
	S3          S3Block       `yaml:"s3"`
	Transfer    TransferBlock `yaml:"transfer"`
	Loggers     []LoggerBlock `yaml:"loggers"`
}

// OutputBlock selects where and how exports are written.
type OutputBlock struct {
	Root     string   `yaml:"root"`
	Formats  []string `yaml:"formats"`
	Compress bool     `yaml:"compress"`
}

// S3Block configures the optional post-export upload. Credential fields follow the sink's
// precedence: role_arn first, then static keys, then the shared-config provider chain.
type S3Block struct {
	Enabled        bool     `yaml:"enabled"`
	Region         string   `yaml:"region"`
	Bucket         string   `yaml:"bucket"`
	Prefix         string   `yaml:"prefix"`
	Endpoint       string   `yaml:"endpoint"`
	ForcePathStyle bool     `yaml:"force_path_style"`
	AccessKey      string   `yaml:"access_key"`
	SecretKey      string   `yaml:"secret_key"`
	SessionToken   string   `yaml:"session_token"`
	RoleARN        string   `yaml:"role_arn"`
	SessionName    string   `yaml:"session_name"`
	ExternalID     string   `yaml:"external_id"`
	Duration       Duration `yaml:"duration"`
}

// TransferBlock pairs a motion logger with a response logger for transfer-function
// derivation. Both referenced ids must appear under loggers.
type TransferBlock struct {
	Enabled             bool            `yaml:"enabled"`
	ExcitationLogger    string          `yaml:"excitation_logger"`
	DisplacementChannel string          `yaml:"displacement_channel"`
	RotationChannel     string          `yaml:"rotation_channel"`
	ResponseLogger      string          `yaml:"response_logger"`
	ResponseChannels    []string        `yaml:"response_channels"`
	RotationRadians     bool            `yaml:"rotation_radians"`
	Gravity             float64         `yaml:"gravity"`
	SeaStates           []SeaStateBlock `yaml:"sea_states"`
}

// SeaStateBlock is one sea state: label, significant wave height, peak period, and the
// occurrence percentage used as the weighted-average weight.
type SeaStateBlock struct {
	Label      string  `yaml:"label"`
	Hs         float64 `yaml:"hs"`
	Tp         float64 `yaml:"tp"`
	Occurrence float64 `yaml:"occurrence"`
}

// LoggerBlock describes one logger's raw file tree and reducer settings.
type LoggerBlock struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	Path            string        `yaml:"path"`
	Extension       string        `yaml:"extension"`
	Delimiter       string        `yaml:"delimiter"`
	Header          HeaderBlock   `yaml:"header"`
	TimeColumn      int           `yaml:"time_column"`
	Columns         []int         `yaml:"columns"`
	Channels        []string      `yaml:"channels"`
	Units           []string      `yaml:"units"`
	Conversions     []float64     `yaml:"conversions"`
	SampleFrequency float64       `yaml:"sample_frequency"`
	ExpectedSamples int           `yaml:"expected_samples"`
	WindowSeconds   float64       `yaml:"window_seconds"`
	Statistics      bool          `yaml:"statistics"`
	Spectral        SpectralBlock `yaml:"spectral"`
	Rainflow        RainflowBlock `yaml:"rainflow"`
	Fatigue         FatigueBlock  `yaml:"fatigue"`
}

// HeaderBlock locates a raw file's metadata rows. Absent channel_row and units_row mean
// the file carries none; an absent first_data_row defaults to the row after the last
// configured header row.
type HeaderBlock struct {
	ChannelRow   *int `yaml:"channel_row"`
	UnitsRow     *int `yaml:"units_row"`
	FirstDataRow int  `yaml:"first_data_row"`
}

// SpectralBlock holds the Welch parameters for one logger.
type SpectralBlock struct {
	Enabled       bool   `yaml:"enabled"`
	SegmentLength int    `yaml:"segment_length"`
	Overlap       int    `yaml:"overlap"`
	Window        string `yaml:"window"`
}

// RainflowBlock holds the rainflow binning parameters for one logger.
type RainflowBlock struct {
	Enabled         bool               `yaml:"enabled"`
	BinSize         float64            `yaml:"bin_size"`
	NumBins         int                `yaml:"num_bins"`
	ChannelBinSizes map[string]float64 `yaml:"channel_bin_sizes"`
}

// FatigueBlock holds the S-N curve for one logger. Rule selects the segment-matching
// behavior: smallest_exceeding (the default) or legacy_last_match.
type FatigueBlock struct {
	Enabled  bool           `yaml:"enabled"`
	Rule     string         `yaml:"rule"`
	Segments []SegmentBlock `yaml:"segments"`
}

// SegmentBlock is one piece of a piecewise S-N curve.
type SegmentBlock struct {
	A                float64 `yaml:"a"`
	K                float64 `yaml:"k"`
	TransitionCycles float64 `yaml:"transition_cycles"`
	SCF              float64 `yaml:"scf"`
}

// Duration unmarshals yaml strings like "15m" or "1h30m" through time.ParseDuration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(parsed)
	return nil
}

// Load reads the control file at path, fills defaults, and validates the result. The
// returned Control is ready to feed the builder.
func Load(path string) (*Control, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ctl Control
	if err := yaml.Unmarshal(raw, &ctl); err != nil {
		return nil, err
	}

	ctl.applyDefaults()
	if err := ctl.validate(); err != nil {
		return nil, err
	}

	return &ctl, nil
}

func (c *Control) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Output.Root == "" {
		c.Output.Root = "exports"
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"csv"}
	}
	for i := range c.Loggers {
		lg := &c.Loggers[i]
		if lg.Name == "" {
			lg.Name = lg.ID
		}
		if lg.Extension == "" {
			lg.Extension = ".csv"
		}
		if last := lastHeaderRow(lg.Header); last >= 0 && lg.Header.FirstDataRow == 0 {
			lg.Header.FirstDataRow = last + 1
		}
	}
}

// validate covers what only the control file knows: format and rule names, header row
// layout, cross-references between blocks, and the object-store shape. Per-logger
// semantic checks (column selection, window length, curve parameters) belong to the
// catalog and surface when the loggers are registered.
func (c *Control) validate() error {
	for _, f := range c.Output.Formats {
		switch f {
		case "csv", "xlsx", "parquet":
		default:
			return fmt.Errorf("output.formats: unknown format %q (want csv, xlsx or parquet)", f)
		}
	}
	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when s3.enabled is set")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("s3.region is required when s3.enabled is set")
		}
	}
	if len(c.Loggers) == 0 {
		return fmt.Errorf("at least one logger is required")
	}
	seen := make(map[string]struct{}, len(c.Loggers))
	for i := range c.Loggers {
		lg := &c.Loggers[i]
		if lg.ID == "" {
			return fmt.Errorf("loggers[%d]: id is required", i)
		}
		if _, dup := seen[lg.ID]; dup {
			return fmt.Errorf("loggers[%d]: duplicate id %q", i, lg.ID)
		}
		seen[lg.ID] = struct{}{}
		if lg.Path == "" {
			return fmt.Errorf("loggers[%d]: path is required", i)
		}
		if last := lastHeaderRow(lg.Header); last >= 0 && lg.Header.FirstDataRow <= last {
			return fmt.Errorf("loggers[%d]: header.first_data_row %d overlaps the header rows", i, lg.Header.FirstDataRow)
		}
		if lg.Spectral.Enabled {
			if _, err := spectral.ResolveWindow(lg.Spectral.Window); err != nil {
				return fmt.Errorf("loggers[%d].spectral.window: %w", i, err)
			}
		}
		if lg.Fatigue.Rule != "" {
			if _, ok := segmentRule(lg.Fatigue.Rule); !ok {
				return fmt.Errorf("loggers[%d].fatigue.rule: unknown rule %q (want %s or %s)",
					i, lg.Fatigue.Rule, ruleSmallestExceeding, ruleLegacyLastMatch)
			}
		}
	}
	if c.Transfer.Enabled {
		if err := c.validateTransfer(seen); err != nil {
			return err
		}
	}
	return nil
}

func (c *Control) validateTransfer(loggers map[string]struct{}) error {
	t := &c.Transfer
	if t.ExcitationLogger == "" {
		return fmt.Errorf("transfer.excitation_logger is required when transfer.enabled is set")
	}
	if _, ok := loggers[t.ExcitationLogger]; !ok {
		return fmt.Errorf("transfer.excitation_logger: no logger with id %q", t.ExcitationLogger)
	}
	if t.ResponseLogger == "" {
		return fmt.Errorf("transfer.response_logger is required when transfer.enabled is set")
	}
	if _, ok := loggers[t.ResponseLogger]; !ok {
		return fmt.Errorf("transfer.response_logger: no logger with id %q", t.ResponseLogger)
	}
	if t.DisplacementChannel == "" || t.RotationChannel == "" {
		return fmt.Errorf("transfer.displacement_channel and transfer.rotation_channel are required when transfer.enabled is set")
	}
	for i, s := range t.SeaStates {
		if s.Occurrence < 0 {
			return fmt.Errorf("transfer.sea_states[%d]: occurrence must not be negative", i)
		}
	}
	return nil
}

func lastHeaderRow(h HeaderBlock) int {
	last := -1
	if h.ChannelRow != nil && *h.ChannelRow > last {
		last = *h.ChannelRow
	}
	if h.UnitsRow != nil && *h.UnitsRow > last {
		last = *h.UnitsRow
	}
	return last
}
