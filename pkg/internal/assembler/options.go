// Package assembler provides options for configuring WindowAssembler components.
package assembler

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a WindowAssembler.
func WithLogger(logger ...types.Logger) types.Option[types.WindowAssembler] {
	return func(a types.WindowAssembler) {
		a.ConnectLogger(logger...)
	}
}

// WithMonitor creates an option to add a monitor to a WindowAssembler.
func WithMonitor(monitor ...types.Monitor) types.Option[types.WindowAssembler] {
	return func(a types.WindowAssembler) {
		a.ConnectMonitor(monitor...)
	}
}

// WithLoggerID creates an option setting the logger id stamped onto emitted windows.
func WithLoggerID(id string) types.Option[types.WindowAssembler] {
	return func(a types.WindowAssembler) {
		a.SetLoggerID(id)
	}
}

// WithTargetLength creates an option setting the window length in samples.
func WithTargetLength(n int) types.Option[types.WindowAssembler] {
	return func(a types.WindowAssembler) {
		a.SetTargetLength(n)
	}
}

// WithSampleFrequency creates an option setting the sampling frequency stamped onto
// emitted windows.
func WithSampleFrequency(fs float64) types.Option[types.WindowAssembler] {
	return func(a types.WindowAssembler) {
		a.SetSampleFrequency(fs)
	}
}
