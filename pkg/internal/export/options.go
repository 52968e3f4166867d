// Package export provides options for configuring Exporter components.
package export

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to an Exporter.
func WithLogger(logger ...types.Logger) types.Option[types.Exporter] {
	return func(e types.Exporter) {
		e.ConnectLogger(logger...)
	}
}

// WithMonitor creates an option to add a monitor to an Exporter.
func WithMonitor(monitor ...types.Monitor) types.Option[types.Exporter] {
	return func(e types.Exporter) {
		e.ConnectMonitor(monitor...)
	}
}

// WithRoot creates an option assigning the output root directory.
func WithRoot(dir string) types.Option[types.Exporter] {
	return func(e types.Exporter) {
		e.SetRoot(dir)
	}
}

// WithFormats creates an option enabling output serializations.
func WithFormats(formats ...types.OutputFormat) types.Option[types.Exporter] {
	return func(e types.Exporter) {
		e.SetFormats(formats...)
	}
}

// WithCompression creates an option toggling zstd compression of delimited outputs.
func WithCompression(enabled bool) types.Option[types.Exporter] {
	return func(e types.Exporter) {
		e.SetCompress(enabled)
	}
}
