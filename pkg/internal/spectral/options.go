// Package spectral provides options for configuring SpectralReducer components.
package spectral

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a SpectralReducer.
func WithLogger(logger ...types.Logger) types.Option[types.SpectralReducer] {
	return func(r types.SpectralReducer) {
		r.ConnectLogger(logger...)
	}
}

// WithMonitor creates an option to add a monitor to a SpectralReducer.
func WithMonitor(monitor ...types.Monitor) types.Option[types.SpectralReducer] {
	return func(r types.SpectralReducer) {
		r.ConnectMonitor(monitor...)
	}
}

// WithSettings creates an option setting the Welch parameters.
func WithSettings(s types.SpectralSettings) types.Option[types.SpectralReducer] {
	return func(r types.SpectralReducer) {
		r.SetSettings(s)
	}
}
