package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// writeDelimitedFile runs the record-producing callback against a csv writer over the
// (optionally compressed) file at path, flushing and closing in one place.
func writeDelimitedFile(path string, compress bool, write func(*csv.Writer) error) error {
	wc, err := createDelimited(path, compress)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(wc)
	if err := write(cw); err != nil {
		_ = wc.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

func (x *Writer) writeDelimitedLogger(root string, compress bool, result *types.LoggerResult) error {
	id := sanitizeName(result.Logger.ID)

	if t := result.Statistics; t != nil && len(t.Channels) > 0 && t.Len() > 0 {
		path := filepath.Join(root, dirStatistics, id+"_statistics.csv")
		if err := writeDelimitedFile(path, compress, func(cw *csv.Writer) error {
			return writeStatisticsRecords(cw, t)
		}); err != nil {
			return fmt.Errorf("export statistics for %s: %w", result.Logger.ID, err)
		}
	}

	for _, sp := range result.Spectrograms {
		if sp == nil || sp.Len() == 0 {
			continue
		}
		name := fmt.Sprintf("%s_%s_spectrogram.csv", id, sanitizeName(sp.Channel.Name))
		path := filepath.Join(root, dirSpectrograms, name)
		if err := writeDelimitedFile(path, compress, func(cw *csv.Writer) error {
			return writeSpectrogramRecords(cw, sp)
		}); err != nil {
			return fmt.Errorf("export spectrogram %s/%s: %w", result.Logger.ID, sp.Channel.Name, err)
		}
	}

	for _, set := range result.Histograms {
		if set == nil || len(set.Windows) == 0 {
			continue
		}
		name := fmt.Sprintf("%s_%s_rainflow.csv", id, sanitizeName(set.Channel.Name))
		path := filepath.Join(root, dirHistograms, name)
		if err := writeDelimitedFile(path, compress, func(cw *csv.Writer) error {
			return writeHistogramRecords(cw, set)
		}); err != nil {
			return fmt.Errorf("export rainflow histogram %s/%s: %w", result.Logger.ID, set.Channel.Name, err)
		}
	}

	return nil
}

// writeStatisticsRecords emits the statistics table: Start and End columns, then four
// statistic columns per channel, with an engineering-units sub-header under the names.
func writeStatisticsRecords(cw *csv.Writer, t *types.StatisticsTable) error {
	header := []string{"Start", "End"}
	units := []string{"", ""}
	for _, ch := range t.Channels {
		header = append(header, ch.Name+" Min", ch.Name+" Max", ch.Name+" Mean", ch.Name+" Std")
		units = append(units, ch.Unit, ch.Unit, ch.Unit, ch.Unit)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.Write(units); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for _, r := range t.Records {
		record = record[:0]
		record = append(record, formatTime(r.Start), formatTime(r.End))
		for ci := range t.Channels {
			record = append(record,
				formatFloat(r.Min[ci]),
				formatFloat(r.Max[ci]),
				formatFloat(r.Mean[ci]),
				formatFloat(r.Std[ci]),
			)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// writeSpectrogramRecords emits one channel's time-by-frequency density matrix: the header
// carries the frequency axis, each row a window start time and its density values.
func writeSpectrogramRecords(cw *csv.Writer, sp *types.Spectrogram) error {
	header := make([]string, 0, len(sp.Frequencies)+1)
	header = append(header, "Time")
	for _, f := range sp.Frequencies {
		header = append(header, formatFloat(f))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for i, row := range sp.Rows {
		record = record[:0]
		record = append(record, formatTime(sp.Times[i]))
		for _, v := range row {
			record = append(record, formatFloat(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// writeHistogramRecords emits one channel's rainflow table indexed by bin lower edge: the
// Aggregate column first, then one column per window, zero-filled to the common bin count.
func writeHistogramRecords(cw *csv.Writer, set *types.HistogramSet) error {
	bins := 0
	if set.Aggregate != nil {
		bins = len(set.Aggregate.Counts)
	}
	for _, h := range set.Windows {
		if h != nil && len(h.Counts) > bins {
			bins = len(h.Counts)
		}
	}

	header := make([]string, 0, len(set.Windows)+2)
	header = append(header, "Range", "Aggregate")
	for _, h := range set.Windows {
		header = append(header, h.Label)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for i := 0; i < bins; i++ {
		record = record[:0]
		record = append(record, formatFloat(float64(i)*set.BinWidth))
		record = append(record, formatFloat(countAt(set.Aggregate, i)))
		for _, h := range set.Windows {
			record = append(record, formatFloat(countAt(h, i)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func countAt(h *types.Histogram, i int) float64 {
	if h == nil || i >= len(h.Counts) {
		return 0
	}
	return h.Counts[i]
}

func (x *Writer) writeDelimitedTransferFunctions(root string, compress bool, loggerID string, perSeaState [][]*types.TransferFunction, weighted []*types.TransferFunction) error {
	id := sanitizeName(loggerID)

	for i, fns := range perSeaState {
		if len(fns) == 0 {
			continue
		}
		label := fns[0].SeaState
		if label == "" {
			label = fmt.Sprintf("sea_state_%02d", i+1)
		}
		name := fmt.Sprintf("%s_%s_tf.csv", id, sanitizeName(label))
		path := filepath.Join(root, dirTransferFns, name)
		if err := writeDelimitedFile(path, compress, func(cw *csv.Writer) error {
			return writeTransferRecords(cw, fns)
		}); err != nil {
			return fmt.Errorf("export transfer functions %s/%s: %w", loggerID, label, err)
		}
	}

	if len(weighted) > 0 {
		path := filepath.Join(root, dirTransferFns, id+"_weighted_average_tf.csv")
		if err := writeDelimitedFile(path, compress, func(cw *csv.Writer) error {
			return writeTransferRecords(cw, weighted)
		}); err != nil {
			return fmt.Errorf("export weighted-average transfer functions %s: %w", loggerID, err)
		}
	}

	return nil
}

// writeTransferRecords emits a frequency-indexed table with one ratio column per response
// location. All functions in the slice share one frequency axis.
func writeTransferRecords(cw *csv.Writer, fns []*types.TransferFunction) error {
	header := make([]string, 0, len(fns)+1)
	header = append(header, "Frequency")
	for _, fn := range fns {
		header = append(header, fn.Location)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	axis := fns[0].Frequencies
	record := make([]string, 0, len(header))
	for i, f := range axis {
		record = record[:0]
		record = append(record, formatFloat(f))
		for _, fn := range fns {
			record = append(record, formatFloat(fn.Ratio[i]))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// writeReport renders the end-of-run screening report: the run summary followed by each
// logger's damage totals, bad files, per-file quality, and diagnostics.
func (x *Writer) writeReport(path string, results []*types.LoggerResult, summary types.RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	cancelled := "no"
	if summary.Cancelled {
		cancelled = "yes"
	}

	fmt.Fprintf(f, "Screening report\n")
	fmt.Fprintf(f, "================\n")
	fmt.Fprintf(f, "Run:        %s\n", summary.RunID)
	fmt.Fprintf(f, "Started:    %s\n", formatTime(summary.Start))
	fmt.Fprintf(f, "Elapsed:    %s\n", summary.Elapsed)
	fmt.Fprintf(f, "Loggers:    %d of %d exported\n", summary.LoggersDone, summary.LoggersTotal)
	fmt.Fprintf(f, "Files:      %d processed, %d bad\n", summary.FilesProcessed, summary.BadFiles)
	fmt.Fprintf(f, "Windows:    %d\n", summary.WindowsEmitted)
	fmt.Fprintf(f, "Warnings:   %d\n", summary.Warnings)
	fmt.Fprintf(f, "Cancelled:  %s\n", cancelled)
	fmt.Fprintf(f, "Peak CPU:   %.1f%%\n", summary.PeakCPUPercent)
	fmt.Fprintf(f, "Peak RAM:   %.1f%%\n", summary.PeakRAMPercent)

	for _, r := range results {
		if r == nil || r.Logger == nil {
			continue
		}
		fmt.Fprintf(f, "\nLogger %s (%s) [%s]\n", r.Logger.ID, r.Logger.Name, r.State)
		fmt.Fprintf(f, "  files processed: %d\n", r.FilesProcessed)
		fmt.Fprintf(f, "  windows emitted: %d\n", r.WindowsEmitted)

		if len(r.Damage) > 0 {
			fmt.Fprintf(f, "  fatigue damage:\n")
			for _, d := range r.Damage {
				fmt.Fprintf(f, "    %s (%s): %s\n", d.Channel.Name, d.Channel.Unit, formatFloat(d.Damage))
			}
		}

		if len(r.BadFiles) > 0 {
			fmt.Fprintf(f, "  bad files:\n")
			for _, b := range r.BadFiles {
				if b.Detail != "" {
					fmt.Fprintf(f, "    %s: %s (%s)\n", b.Filename, b.Reason, b.Detail)
				} else {
					fmt.Fprintf(f, "    %s: %s\n", b.Filename, b.Reason)
				}
			}
		}

		warned := false
		for _, q := range r.Quality {
			for _, w := range q.Warnings {
				if !warned {
					fmt.Fprintf(f, "  warnings:\n")
					warned = true
				}
				fmt.Fprintf(f, "    %s: %s\n", q.Filename, w)
			}
		}

		if len(r.Quality) > 0 {
			fmt.Fprintf(f, "  resolutions:\n")
			for _, q := range r.Quality {
				fmt.Fprintf(f, "    %s: fs %s Hz", q.Filename, formatFloat(q.SampleFrequency))
				for ci, res := range q.Resolutions {
					name := fmt.Sprintf("ch%d", ci)
					if ci < len(r.Channels) {
						name = r.Channels[ci].Name
					}
					fmt.Fprintf(f, ", %s %s", name, formatFloat(res))
				}
				fmt.Fprintf(f, "\n")
			}
		}

		for _, d := range r.Diagnostics {
			fmt.Fprintf(f, "  diagnostic: %s\n", d)
		}
	}

	return f.Close()
}
