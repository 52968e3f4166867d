// Package export writes a logger's accumulated screening results to disk: the window
// statistics table, per-channel spectrograms, per-channel rainflow histograms, derived
// transfer functions, and the end-of-run screening report. Three serializations are
// supported in any combination: delimited text (optionally zstd-compressed), a spreadsheet
// workbook per logger, and parquet with long-form row records. Output directories are
// created once per output kind and no two loggers ever share an output file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

// Subdirectories per output kind under the export root.
const (
	dirStatistics   = "statistics"
	dirSpectrograms = "spectrograms"
	dirHistograms   = "histograms"
	dirTransferFns  = "transfer_functions"
	dirWorkbooks    = "workbooks"
	dirParquet      = "parquet"
)

// reportFilename is the end-of-run screening report, written once at the export root.
const reportFilename = "screening_report.txt"

// timeLayout is the timestamp rendering shared by every delimited and workbook output.
// It matches the per-window histogram labels produced by the rainflow reducer.
const timeLayout = "2006-01-02 15:04:05"

// Writer is the concrete implementation behind types.Exporter.
type Writer struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	mu       sync.Mutex
	root     string
	formats  map[types.OutputFormat]bool
	compress bool
	prepared bool

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32

	monitors    []types.Monitor
	monitorLock sync.Mutex
	mntrCount   int32
}

// NewWriter constructs an export writer configured with the provided options.
func NewWriter(options ...types.Option[types.Exporter]) types.Exporter {
	w := &Writer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "EXPORT_WRITER",
		},
		formats: make(map[types.OutputFormat]bool),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}

	return w
}

// Prepare creates the output directory tree for the enabled formats. It is idempotent and
// safe to call repeatedly.
func (x *Writer) Prepare() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.prepareLocked()
}

func (x *Writer) prepareLocked() error {
	if x.root == "" {
		return fmt.Errorf("export root directory not configured")
	}

	dirs := []string{x.root}
	if x.formatEnabledLocked(types.FormatCSV) {
		dirs = append(dirs,
			filepath.Join(x.root, dirStatistics),
			filepath.Join(x.root, dirSpectrograms),
			filepath.Join(x.root, dirHistograms),
			filepath.Join(x.root, dirTransferFns),
		)
	}
	if x.formatEnabledLocked(types.FormatXLSX) {
		dirs = append(dirs, filepath.Join(x.root, dirWorkbooks))
	}
	if x.formatEnabledLocked(types.FormatParquet) {
		dirs = append(dirs, filepath.Join(x.root, dirParquet))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	x.prepared = true
	return nil
}

// ExportLogger writes the statistics table, spectrograms, and rainflow histograms for one
// logger in every enabled format. Accumulators that never latched a channel axis (a logger
// with zero emitted windows) are skipped with a warning rather than producing empty files.
func (x *Writer) ExportLogger(result *types.LoggerResult) error {
	if result == nil || result.Logger == nil {
		return fmt.Errorf("export: nil logger result")
	}

	x.mu.Lock()
	if !x.prepared {
		if err := x.prepareLocked(); err != nil {
			x.mu.Unlock()
			return err
		}
	}
	root := x.root
	compress := x.compress
	csvOn := x.formatEnabledLocked(types.FormatCSV)
	xlsxOn := x.formatEnabledLocked(types.FormatXLSX)
	parquetOn := x.formatEnabledLocked(types.FormatParquet)
	x.mu.Unlock()

	if !x.hasAccumulatedResults(result) {
		x.notifyEmptyResult(result.Logger.ID)
		return nil
	}

	if csvOn {
		if err := x.writeDelimitedLogger(root, compress, result); err != nil {
			return err
		}
	}
	if xlsxOn {
		if err := x.writeWorkbook(root, result); err != nil {
			return err
		}
	}
	if parquetOn {
		if err := x.writeParquetLogger(root, result); err != nil {
			return err
		}
	}

	x.notifyExported(result)
	return nil
}

// ExportTransferFunctions writes one file per sea state plus the weighted-average file for
// the given excitation logger. Every inner slice holds one transfer function per response
// location on a shared frequency axis.
func (x *Writer) ExportTransferFunctions(loggerID string, perSeaState [][]*types.TransferFunction, weighted []*types.TransferFunction) error {
	x.mu.Lock()
	if !x.prepared {
		if err := x.prepareLocked(); err != nil {
			x.mu.Unlock()
			return err
		}
	}
	root := x.root
	compress := x.compress
	csvOn := x.formatEnabledLocked(types.FormatCSV)
	xlsxOn := x.formatEnabledLocked(types.FormatXLSX)
	parquetOn := x.formatEnabledLocked(types.FormatParquet)
	x.mu.Unlock()

	if len(perSeaState) == 0 && len(weighted) == 0 {
		x.notifyEmptyResult(loggerID)
		return nil
	}

	if csvOn {
		if err := x.writeDelimitedTransferFunctions(root, compress, loggerID, perSeaState, weighted); err != nil {
			return err
		}
	}
	if xlsxOn {
		if err := x.writeTransferWorkbook(root, loggerID, perSeaState, weighted); err != nil {
			return err
		}
	}
	if parquetOn {
		if err := x.writeParquetTransferFunctions(root, loggerID, perSeaState, weighted); err != nil {
			return err
		}
	}

	x.notifyTransferExported(loggerID, len(perSeaState))
	return nil
}

// ExportReport writes the end-of-run screening report accumulated across loggers. The
// report is always plain text at the export root, independent of the enabled formats.
func (x *Writer) ExportReport(results []*types.LoggerResult, summary types.RunSummary) error {
	x.mu.Lock()
	if !x.prepared {
		if err := x.prepareLocked(); err != nil {
			x.mu.Unlock()
			return err
		}
	}
	root := x.root
	x.mu.Unlock()

	path := filepath.Join(root, reportFilename)
	if err := x.writeReport(path, results, summary); err != nil {
		return fmt.Errorf("write screening report: %w", err)
	}

	x.NotifyLoggers(
		types.InfoLevel,
		"Screening report written",
		"component", x.componentMetadata,
		"event", "ExportReport",
		"result", "SUCCESS",
		"path", path,
		"loggers", len(results),
	)
	return nil
}

// hasAccumulatedResults reports whether at least one reducer latched a channel axis and
// produced output worth serializing.
func (x *Writer) hasAccumulatedResults(result *types.LoggerResult) bool {
	if t := result.Statistics; t != nil && len(t.Channels) > 0 && t.Len() > 0 {
		return true
	}
	for _, sp := range result.Spectrograms {
		if sp != nil && sp.Len() > 0 {
			return true
		}
	}
	for _, set := range result.Histograms {
		if set != nil && len(set.Windows) > 0 {
			return true
		}
	}
	return false
}

func (x *Writer) formatEnabledLocked(f types.OutputFormat) bool {
	if len(x.formats) == 0 {
		return f == types.FormatCSV
	}
	return x.formats[f]
}
