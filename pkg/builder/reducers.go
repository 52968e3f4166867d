package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/rainflow"
	"github.com/moorings-io/fathom/pkg/internal/spectral"
	"github.com/moorings-io/fathom/pkg/internal/stats"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NewStatisticsReducer creates a per-window statistics reducer.
func NewStatisticsReducer(options ...types.Option[types.StatisticsReducer]) types.StatisticsReducer {
	return stats.NewReducer(options...)
}

// StatisticsWithLogger adds one or more loggers to the statistics reducer.
func StatisticsWithLogger(logger ...types.Logger) types.Option[types.StatisticsReducer] {
	return stats.WithLogger(logger...)
}

// StatisticsWithMonitor adds one or more monitors to the statistics reducer.
func StatisticsWithMonitor(monitor ...types.Monitor) types.Option[types.StatisticsReducer] {
	return stats.WithMonitor(monitor...)
}

// NewSpectralReducer creates a Welch PSD reducer.
func NewSpectralReducer(options ...types.Option[types.SpectralReducer]) types.SpectralReducer {
	return spectral.NewReducer(options...)
}

// SpectralWithLogger adds one or more loggers to the spectral reducer.
func SpectralWithLogger(logger ...types.Logger) types.Option[types.SpectralReducer] {
	return spectral.WithLogger(logger...)
}

// SpectralWithMonitor adds one or more monitors to the spectral reducer.
func SpectralWithMonitor(monitor ...types.Monitor) types.Option[types.SpectralReducer] {
	return spectral.WithMonitor(monitor...)
}

// SpectralWithSettings assigns the Welch parameters.
func SpectralWithSettings(s types.SpectralSettings) types.Option[types.SpectralReducer] {
	return spectral.WithSettings(s)
}

// NewRainflowReducer creates a rainflow cycle-counting reducer.
func NewRainflowReducer(options ...types.Option[types.RainflowReducer]) types.RainflowReducer {
	return rainflow.NewReducer(options...)
}

// RainflowWithLogger adds one or more loggers to the rainflow reducer.
func RainflowWithLogger(logger ...types.Logger) types.Option[types.RainflowReducer] {
	return rainflow.WithLogger(logger...)
}

// RainflowWithMonitor adds one or more monitors to the rainflow reducer.
func RainflowWithMonitor(monitor ...types.Monitor) types.Option[types.RainflowReducer] {
	return rainflow.WithMonitor(monitor...)
}

// RainflowWithSettings assigns the binning parameters.
func RainflowWithSettings(s types.RainflowSettings) types.Option[types.RainflowReducer] {
	return rainflow.WithSettings(s)
}
