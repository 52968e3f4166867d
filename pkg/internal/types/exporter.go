package types

// OutputFormat selects an export serialization. Any combination may be enabled per run.
type OutputFormat string

const (
	FormatCSV     OutputFormat = "csv"     // Delimited text, optionally zstd-compressed.
	FormatXLSX    OutputFormat = "xlsx"    // Spreadsheet workbook, one per logger.
	FormatParquet OutputFormat = "parquet" // Columnar binary container.
)

// Exporter writes a logger's accumulated results to the configured output formats. Output
// directories are created once per output kind before any file is written; no two loggers
// ever share an output file.
type Exporter interface {
	// Prepare creates the output directory tree for the enabled formats. It is
	// idempotent and safe to call repeatedly.
	Prepare() error

	// ExportLogger writes the statistics table, spectrograms, and rainflow histograms for
	// one logger in every enabled format.
	ExportLogger(result *LoggerResult) error

	// ExportTransferFunctions writes one file per sea state plus the weighted-average
	// file for the given excitation logger.
	ExportTransferFunctions(loggerID string, perSeaState [][]*TransferFunction, weighted []*TransferFunction) error

	// ExportReport writes the end-of-run screening report accumulated across loggers.
	ExportReport(results []*LoggerResult, summary RunSummary) error

	// Root returns the output root directory.
	Root() string

	// SetRoot assigns the output root directory.
	SetRoot(dir string)

	// SetFormats selects the enabled output serializations. Formats accumulate across
	// calls; without any call the writer defaults to delimited text.
	SetFormats(formats ...OutputFormat)

	// SetCompress toggles zstd compression of delimited text outputs.
	SetCompress(enabled bool)

	ConnectLogger(...Logger)
	ConnectMonitor(...Monitor)
	GetComponentMetadata() ComponentMetadata
}
