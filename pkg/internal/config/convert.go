package config

import (
	"time"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

const (
	ruleSmallestExceeding = "smallest_exceeding"
	ruleLegacyLastMatch   = "legacy_last_match"
)

func segmentRule(name string) (types.SegmentRule, bool) {
	switch name {
	case "", ruleSmallestExceeding:
		return types.SelectSmallestExceeding, true
	case ruleLegacyLastMatch:
		return types.SelectLegacyLastMatch, true
	default:
		return types.SelectSmallestExceeding, false
	}
}

// LoggerConfigs converts the logger blocks into catalog-ready configurations, in file
// order.
func (c *Control) LoggerConfigs() []*types.LoggerConfig {
	out := make([]*types.LoggerConfig, 0, len(c.Loggers))
	for i := range c.Loggers {
		out = append(out, c.Loggers[i].loggerConfig())
	}
	return out
}

func (l *LoggerBlock) loggerConfig() *types.LoggerConfig {
	rule, _ := segmentRule(l.Fatigue.Rule)
	cfg := &types.LoggerConfig{
		ID:        l.ID,
		Name:      l.Name,
		Path:      l.Path,
		Extension: l.Extension,
		Delimiter: l.Delimiter,
		Header: types.HeaderLayout{
			ChannelRow:   headerRow(l.Header.ChannelRow),
			UnitsRow:     headerRow(l.Header.UnitsRow),
			FirstDataRow: l.Header.FirstDataRow,
		},
		TimeColumn:      l.TimeColumn,
		SelectedColumns: append([]int(nil), l.Columns...),
		ChannelNames:    append([]string(nil), l.Channels...),
		ChannelUnits:    append([]string(nil), l.Units...),
		UnitConversions: append([]float64(nil), l.Conversions...),
		SampleFrequency: l.SampleFrequency,
		ExpectedSamples: l.ExpectedSamples,
		WindowSeconds:   l.WindowSeconds,
		Statistics:      l.Statistics,
		Spectral: types.SpectralSettings{
			Enabled:       l.Spectral.Enabled,
			SegmentLength: l.Spectral.SegmentLength,
			Overlap:       l.Spectral.Overlap,
			WindowName:    l.Spectral.Window,
		},
		Rainflow: types.RainflowSettings{
			Enabled: l.Rainflow.Enabled,
			BinSize: l.Rainflow.BinSize,
			NumBins: l.Rainflow.NumBins,
		},
		Fatigue: types.FatigueSettings{
			Enabled: l.Fatigue.Enabled,
			Rule:    rule,
		},
	}
	if len(l.Rainflow.ChannelBinSizes) > 0 {
		cfg.Rainflow.ChannelBinSizes = make(map[string]float64, len(l.Rainflow.ChannelBinSizes))
		for name, size := range l.Rainflow.ChannelBinSizes {
			cfg.Rainflow.ChannelBinSizes[name] = size
		}
	}
	for _, s := range l.Fatigue.Segments {
		cfg.Fatigue.Segments = append(cfg.Fatigue.Segments, types.SNSegment{
			A:                s.A,
			K:                s.K,
			TransitionCycles: s.TransitionCycles,
			SCF:              s.SCF,
		})
	}
	return cfg
}

// TransferSettings converts the transfer block into the orchestrator's run-level
// settings.
func (c *Control) TransferSettings() types.TransferSettings {
	t := c.Transfer
	out := types.TransferSettings{
		Enabled:             t.Enabled,
		ExcitationLoggerID:  t.ExcitationLogger,
		DisplacementChannel: t.DisplacementChannel,
		RotationChannel:     t.RotationChannel,
		ResponseLoggerID:    t.ResponseLogger,
		ResponseChannels:    append([]string(nil), t.ResponseChannels...),
		RotationRadians:     t.RotationRadians,
		Gravity:             t.Gravity,
	}
	for _, s := range t.SeaStates {
		out.SeaStates = append(out.SeaStates, types.SeaState{
			Label:          s.Label,
			Hs:             s.Hs,
			Tp:             s.Tp,
			PercOccurrence: s.Occurrence,
		})
	}
	return out
}

// SinkSettings converts the s3 block into the sink's settings.
func (c *Control) SinkSettings() types.S3SinkSettings {
	s := c.S3
	return types.S3SinkSettings{
		Enabled:        s.Enabled,
		Region:         s.Region,
		Bucket:         s.Bucket,
		Prefix:         s.Prefix,
		Endpoint:       s.Endpoint,
		ForcePathStyle: s.ForcePathStyle,
		AccessKey:      s.AccessKey,
		SecretKey:      s.SecretKey,
		SessionToken:   s.SessionToken,
		RoleARN:        s.RoleARN,
		SessionName:    s.SessionName,
		ExternalID:     s.ExternalID,
		Duration:       time.Duration(s.Duration),
	}
}

// OutputFormats converts the output format names into exporter formats.
func (c *Control) OutputFormats() []types.OutputFormat {
	out := make([]types.OutputFormat, 0, len(c.Output.Formats))
	for _, f := range c.Output.Formats {
		out = append(out, types.OutputFormat(f))
	}
	return out
}

func headerRow(row *int) int {
	if row == nil {
		return -1
	}
	return *row
}
