package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Long-form row records, one value per row, so downstream columnar tooling can filter on
// logger, channel and window without reshaping matrices.

type statisticsRow struct {
	LoggerID string    `parquet:"logger_id"`
	Start    time.Time `parquet:"window_start"`
	End      time.Time `parquet:"window_end"`
	Channel  string    `parquet:"channel"`
	Unit     string    `parquet:"unit"`
	Min      float64   `parquet:"min"`
	Max      float64   `parquet:"max"`
	Mean     float64   `parquet:"mean"`
	Std      float64   `parquet:"std"`
}

type spectralRow struct {
	LoggerID  string    `parquet:"logger_id"`
	Channel   string    `parquet:"channel"`
	Start     time.Time `parquet:"window_start"`
	Frequency float64   `parquet:"frequency_hz"`
	Density   float64   `parquet:"density"`
}

type rainflowRow struct {
	LoggerID string  `parquet:"logger_id"`
	Channel  string  `parquet:"channel"`
	Window   string  `parquet:"window"`
	BinLower float64 `parquet:"bin_lower"`
	BinUpper float64 `parquet:"bin_upper"`
	Count    float64 `parquet:"count"`
}

type transferRow struct {
	LoggerID  string  `parquet:"logger_id"`
	SeaState  string  `parquet:"sea_state"`
	Location  string  `parquet:"location"`
	Frequency float64 `parquet:"frequency_hz"`
	Ratio     float64 `parquet:"ratio"`
}

// writeParquetFile serializes rows with the generic writer, snappy-compressed. Zero rows
// writes nothing at all.
func writeParquetFile[T any](path string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	pw := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := pw.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (x *Writer) writeParquetLogger(root string, result *types.LoggerResult) error {
	id := sanitizeName(result.Logger.ID)
	dir := filepath.Join(root, dirParquet)

	if t := result.Statistics; t != nil && len(t.Channels) > 0 && t.Len() > 0 {
		rows := make([]statisticsRow, 0, t.Len()*len(t.Channels))
		for _, r := range t.Records {
			for ci, ch := range t.Channels {
				rows = append(rows, statisticsRow{
					LoggerID: t.LoggerID,
					Start:    r.Start,
					End:      r.End,
					Channel:  ch.Name,
					Unit:     ch.Unit,
					Min:      r.Min[ci],
					Max:      r.Max[ci],
					Mean:     r.Mean[ci],
					Std:      r.Std[ci],
				})
			}
		}
		if err := writeParquetFile(filepath.Join(dir, id+"_statistics.parquet"), rows); err != nil {
			return fmt.Errorf("export statistics parquet for %s: %w", result.Logger.ID, err)
		}
	}

	var psdRows []spectralRow
	for _, sp := range result.Spectrograms {
		if sp == nil || sp.Len() == 0 {
			continue
		}
		for ri, densities := range sp.Rows {
			for bi, v := range densities {
				psdRows = append(psdRows, spectralRow{
					LoggerID:  sp.LoggerID,
					Channel:   sp.Channel.Name,
					Start:     sp.Times[ri],
					Frequency: sp.Frequencies[bi],
					Density:   v,
				})
			}
		}
	}
	if err := writeParquetFile(filepath.Join(dir, id+"_spectrograms.parquet"), psdRows); err != nil {
		return fmt.Errorf("export spectrogram parquet for %s: %w", result.Logger.ID, err)
	}

	var histRows []rainflowRow
	for _, set := range result.Histograms {
		if set == nil || len(set.Windows) == 0 {
			continue
		}
		appendHist := func(h *types.Histogram) {
			if h == nil {
				return
			}
			for i, c := range h.Counts {
				histRows = append(histRows, rainflowRow{
					LoggerID: set.LoggerID,
					Channel:  set.Channel.Name,
					Window:   h.Label,
					BinLower: h.LowerEdge(i),
					BinUpper: h.UpperEdge(i),
					Count:    c,
				})
			}
		}
		appendHist(set.Aggregate)
		for _, h := range set.Windows {
			appendHist(h)
		}
	}
	if err := writeParquetFile(filepath.Join(dir, id+"_rainflow.parquet"), histRows); err != nil {
		return fmt.Errorf("export rainflow parquet for %s: %w", result.Logger.ID, err)
	}

	return nil
}

func (x *Writer) writeParquetTransferFunctions(root, loggerID string, perSeaState [][]*types.TransferFunction, weighted []*types.TransferFunction) error {
	var rows []transferRow
	appendFns := func(fns []*types.TransferFunction) {
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			for i, f := range fn.Frequencies {
				rows = append(rows, transferRow{
					LoggerID:  loggerID,
					SeaState:  fn.SeaState,
					Location:  fn.Location,
					Frequency: f,
					Ratio:     fn.Ratio[i],
				})
			}
		}
	}
	for _, fns := range perSeaState {
		appendFns(fns)
	}
	appendFns(weighted)

	path := filepath.Join(root, dirParquet, sanitizeName(loggerID)+"_transfer_functions.parquet")
	if err := writeParquetFile(path, rows); err != nil {
		return fmt.Errorf("export transfer-function parquet for %s: %w", loggerID, err)
	}
	return nil
}
