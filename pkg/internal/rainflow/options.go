// Package rainflow provides options for configuring RainflowReducer components.
package rainflow

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a RainflowReducer.
func WithLogger(logger ...types.Logger) types.Option[types.RainflowReducer] {
	return func(r types.RainflowReducer) {
		r.ConnectLogger(logger...)
	}
}

// WithMonitor creates an option to add a monitor to a RainflowReducer.
func WithMonitor(monitor ...types.Monitor) types.Option[types.RainflowReducer] {
	return func(r types.RainflowReducer) {
		r.ConnectMonitor(monitor...)
	}
}

// WithSettings creates an option setting the binning parameters.
func WithSettings(s types.RainflowSettings) types.Option[types.RainflowReducer] {
	return func(r types.RainflowReducer) {
		r.SetSettings(s)
	}
}
