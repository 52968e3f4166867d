package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/config"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

func writeControl(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "control.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing control file: %v", err)
	}
	return path
}

const minimalControl = `
loggers:
  - id: lg-01
    path: /data/raw/lg-01
    time_column: 0
    columns: [1]
    channels: [Heave]
    units: [m]
    sample_frequency: 10
    window_seconds: 60
    statistics: true
`

const fullControl = `
project: Western Isles FPSO
start_time: 2024-03-01T00:00:00Z
concurrency: 2
log_level: debug

output:
  root: /tmp/fathom-exports
  formats: [csv, xlsx, parquet]
  compress: true

s3:
  enabled: true
  region: eu-west-1
  bucket: fathom-exports
  prefix: runs/western-isles
  role_arn: arn:aws:iam::123456789012:role/export-writer
  session_name: fathom-export
  duration: 15m

transfer:
  enabled: true
  excitation_logger: mot-01
  displacement_channel: Heave
  rotation_channel: Pitch
  response_logger: bm-01
  response_channels: [BM_Fore]
  sea_states:
    - {label: SS1, hs: 2.5, tp: 8.0, occurrence: 60}
    - {label: SS2, hs: 4.0, tp: 10.5, occurrence: 40}

loggers:
  - id: mot-01
    name: Fore Deck Motion
    path: /data/raw/mot-01
    delimiter: ","
    header:
      channel_row: 0
      units_row: 1
    time_column: 0
    columns: [1, 2]
    channels: [Heave, Pitch]
    units: [m, deg]
    conversions: [1.0, 1.0]
    sample_frequency: 10
    expected_samples: 36000
    window_seconds: 60
    statistics: true
    spectral:
      enabled: true
      segment_length: 256
      overlap: 128
      window: hann
  - id: bm-01
    name: Midship Bending
    path: /data/raw/bm-01
    delimiter: ","
    time_column: 0
    columns: [1]
    channels: [BM_Fore]
    units: [kNm]
    sample_frequency: 10
    window_seconds: 60
    spectral:
      enabled: true
      segment_length: 256
      window: hann
    rainflow:
      enabled: true
      bin_size: 1.0
      channel_bin_sizes: {BM_Fore: 2.5}
    fatigue:
      enabled: true
      rule: smallest_exceeding
      segments:
        - {a: 1.0e12, k: 3.0, transition_cycles: 1.0e7, scf: 1.25}
`

func TestLoadAppliesDefaults(t *testing.T) {
	ctl, err := config.Load(writeControl(t, minimalControl))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ctl.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", ctl.LogLevel)
	}
	if ctl.Output.Root != "exports" {
		t.Errorf("default output root = %q, want exports", ctl.Output.Root)
	}
	if len(ctl.Output.Formats) != 1 || ctl.Output.Formats[0] != "csv" {
		t.Errorf("default formats = %v, want [csv]", ctl.Output.Formats)
	}
	lg := ctl.Loggers[0]
	if lg.Extension != ".csv" {
		t.Errorf("default extension = %q, want .csv", lg.Extension)
	}
	if lg.Name != "lg-01" {
		t.Errorf("default name = %q, want the logger id", lg.Name)
	}
}

func TestLoadFullControlFile(t *testing.T) {
	ctl, err := config.Load(writeControl(t, fullControl))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !ctl.StartTime.Equal(want) {
		t.Errorf("start time = %v, want %v", ctl.StartTime, want)
	}
	if ctl.Concurrency != 2 {
		t.Errorf("concurrency = %d, want 2", ctl.Concurrency)
	}

	sink := ctl.SinkSettings()
	if !sink.Enabled || sink.Bucket != "fathom-exports" || sink.RoleARN == "" {
		t.Errorf("sink settings not carried over: %+v", sink)
	}
	if sink.Duration != 15*time.Minute {
		t.Errorf("sink duration = %v, want 15m", sink.Duration)
	}

	transfer := ctl.TransferSettings()
	if transfer.ExcitationLoggerID != "mot-01" || transfer.ResponseLoggerID != "bm-01" {
		t.Errorf("transfer pairing = %q -> %q", transfer.ExcitationLoggerID, transfer.ResponseLoggerID)
	}
	if len(transfer.SeaStates) != 2 || transfer.SeaStates[1].PercOccurrence != 40 {
		t.Errorf("sea states not carried over: %+v", transfer.SeaStates)
	}

	formats := ctl.OutputFormats()
	if len(formats) != 3 || formats[2] != types.FormatParquet {
		t.Errorf("formats = %v", formats)
	}

	configs := ctl.LoggerConfigs()
	if len(configs) != 2 {
		t.Fatalf("got %d logger configs, want 2", len(configs))
	}
	mot := configs[0]
	if mot.Header.ChannelRow != 0 || mot.Header.UnitsRow != 1 || mot.Header.FirstDataRow != 2 {
		t.Errorf("header layout = %+v, want rows 0/1 with data from row 2", mot.Header)
	}
	if mot.Spectral.WindowName != "hann" || mot.Spectral.SegmentLength != 256 {
		t.Errorf("spectral settings = %+v", mot.Spectral)
	}
	bm := configs[1]
	if bm.Header.ChannelRow != -1 || bm.Header.UnitsRow != -1 || bm.Header.FirstDataRow != 0 {
		t.Errorf("headerless layout = %+v, want -1/-1/0", bm.Header)
	}
	if got := bm.Rainflow.ChannelBinSizes["BM_Fore"]; got != 2.5 {
		t.Errorf("channel bin size = %v, want 2.5", got)
	}
	if len(bm.Fatigue.Segments) != 1 || bm.Fatigue.Segments[0].A != 1e12 {
		t.Errorf("fatigue segments = %+v", bm.Fatigue.Segments)
	}
	if bm.Fatigue.Rule != types.SelectSmallestExceeding {
		t.Errorf("fatigue rule = %v, want SelectSmallestExceeding", bm.Fatigue.Rule)
	}
}

func TestLoadMapsLegacyRule(t *testing.T) {
	body := `
loggers:
  - id: lg-01
    path: /data/raw
    columns: [1]
    window_seconds: 60
    rainflow:
      enabled: true
      bin_size: 1.0
    fatigue:
      enabled: true
      rule: legacy_last_match
      segments:
        - {a: 1.0e12, k: 3.0, transition_cycles: 1.0e7, scf: 1.0}
`
	ctl, err := config.Load(writeControl(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ctl.LoggerConfigs()[0].Fatigue.Rule; got != types.SelectLegacyLastMatch {
		t.Errorf("rule = %v, want SelectLegacyLastMatch", got)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "NoLoggers",
			body: "project: empty\n",
			want: "at least one logger",
		},
		{
			name: "MissingID",
			body: "loggers:\n  - path: /data/raw\n",
			want: "id is required",
		},
		{
			name: "MissingPath",
			body: "loggers:\n  - id: lg-01\n",
			want: "path is required",
		},
		{
			name: "DuplicateID",
			body: "loggers:\n  - id: lg-01\n    path: /a\n  - id: lg-01\n    path: /b\n",
			want: `duplicate id "lg-01"`,
		},
		{
			name: "UnknownFormat",
			body: "output:\n  formats: [csv, pdf]\nloggers:\n  - id: lg-01\n    path: /a\n",
			want: `unknown format "pdf"`,
		},
		{
			name: "UnknownSpectralWindow",
			body: "loggers:\n  - id: lg-01\n    path: /a\n    spectral:\n      enabled: true\n      window: blackman\n",
			want: "unknown window function",
		},
		{
			name: "UnknownFatigueRule",
			body: "loggers:\n  - id: lg-01\n    path: /a\n    fatigue:\n      rule: first_match\n",
			want: `unknown rule "first_match"`,
		},
		{
			name: "HeaderOverlap",
			body: "loggers:\n  - id: lg-01\n    path: /a\n    header:\n      channel_row: 0\n      units_row: 1\n      first_data_row: 1\n",
			want: "overlaps the header rows",
		},
		{
			name: "SinkWithoutBucket",
			body: "s3:\n  enabled: true\n  region: eu-west-1\nloggers:\n  - id: lg-01\n    path: /a\n",
			want: "s3.bucket is required",
		},
		{
			name: "TransferUnknownLogger",
			body: "transfer:\n  enabled: true\n  excitation_logger: mot-99\n  response_logger: lg-01\n  displacement_channel: Heave\n  rotation_channel: Pitch\nloggers:\n  - id: lg-01\n    path: /a\n",
			want: `no logger with id "mot-99"`,
		},
		{
			name: "TransferMissingChannels",
			body: "transfer:\n  enabled: true\n  excitation_logger: lg-01\n  response_logger: lg-01\n  displacement_channel: Heave\nloggers:\n  - id: lg-01\n    path: /a\n",
			want: "rotation_channel",
		},
		{
			name: "NegativeOccurrence",
			body: "transfer:\n  enabled: true\n  excitation_logger: lg-01\n  response_logger: lg-01\n  displacement_channel: Heave\n  rotation_channel: Pitch\n  sea_states:\n    - {label: SS1, hs: 2.0, tp: 8.0, occurrence: -5}\nloggers:\n  - id: lg-01\n    path: /a\n",
			want: "occurrence must not be negative",
		},
		{
			name: "BadDuration",
			body: "s3:\n  enabled: true\n  region: eu-west-1\n  bucket: b\n  duration: soon\nloggers:\n  - id: lg-01\n    path: /a\n",
			want: `invalid duration "soon"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeControl(t, tc.body))
			if err == nil {
				t.Fatal("Load accepted an invalid control file")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load accepted a missing control file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := config.Load(writeControl(t, "loggers: [\n")); err == nil {
		t.Fatal("Load accepted malformed yaml")
	}
}
