// Package stats provides options for configuring StatisticsReducer components.
package stats

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a StatisticsReducer.
func WithLogger(logger ...types.Logger) types.Option[types.StatisticsReducer] {
	return func(r types.StatisticsReducer) {
		r.ConnectLogger(logger...)
	}
}

// WithMonitor creates an option to add a monitor to a StatisticsReducer.
func WithMonitor(monitor ...types.Monitor) types.Option[types.StatisticsReducer] {
	return func(r types.StatisticsReducer) {
		r.ConnectMonitor(monitor...)
	}
}
