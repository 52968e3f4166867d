package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/export"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

type OutputFormat = types.OutputFormat

// Output serializations accepted by ExportWithFormats.
const (
	FormatCSV     = types.FormatCSV
	FormatXLSX    = types.FormatXLSX
	FormatParquet = types.FormatParquet
)

// NewExportWriter creates an export writer with the provided configuration options.
func NewExportWriter(options ...types.Option[types.Exporter]) types.Exporter {
	return export.NewWriter(options...)
}

// ExportWithLogger adds one or more loggers to the export writer.
func ExportWithLogger(logger ...types.Logger) types.Option[types.Exporter] {
	return export.WithLogger(logger...)
}

// ExportWithMonitor adds one or more monitors to the export writer.
func ExportWithMonitor(monitor ...types.Monitor) types.Option[types.Exporter] {
	return export.WithMonitor(monitor...)
}

// ExportWithRoot assigns the output root directory.
func ExportWithRoot(dir string) types.Option[types.Exporter] {
	return export.WithRoot(dir)
}

// ExportWithFormats enables the given output serializations.
func ExportWithFormats(formats ...types.OutputFormat) types.Option[types.Exporter] {
	return export.WithFormats(formats...)
}

// ExportWithCompression toggles zstd compression of delimited text outputs.
func ExportWithCompression(enabled bool) types.Option[types.Exporter] {
	return export.WithCompression(enabled)
}
