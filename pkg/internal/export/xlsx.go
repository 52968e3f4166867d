package export

import (
	"fmt"
	"path/filepath"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook renders one spreadsheet workbook per logger: a Statistics sheet plus one
// sheet per channel spectrogram and per channel rainflow histogram, all stream-written.
func (x *Writer) writeWorkbook(root string, result *types.LoggerResult) error {
	wb := excelize.NewFile()
	defer wb.Close()
	first := true

	addSheet := func(name string, fill func(*excelize.StreamWriter) error) error {
		if first {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
		} else if _, err := wb.NewSheet(name); err != nil {
			return err
		}
		sw, err := wb.NewStreamWriter(name)
		if err != nil {
			return err
		}
		if err := fill(sw); err != nil {
			return err
		}
		return sw.Flush()
	}

	if t := result.Statistics; t != nil && len(t.Channels) > 0 && t.Len() > 0 {
		if err := addSheet("Statistics", func(sw *excelize.StreamWriter) error {
			return streamStatistics(sw, t)
		}); err != nil {
			return fmt.Errorf("workbook statistics for %s: %w", result.Logger.ID, err)
		}
	}

	for _, sp := range result.Spectrograms {
		if sp == nil || sp.Len() == 0 {
			continue
		}
		if err := addSheet(sheetName("Spectrogram", sp.Channel.Name), func(sw *excelize.StreamWriter) error {
			return streamSpectrogram(sw, sp)
		}); err != nil {
			return fmt.Errorf("workbook spectrogram %s/%s: %w", result.Logger.ID, sp.Channel.Name, err)
		}
	}

	for _, set := range result.Histograms {
		if set == nil || len(set.Windows) == 0 {
			continue
		}
		if err := addSheet(sheetName("Rainflow", set.Channel.Name), func(sw *excelize.StreamWriter) error {
			return streamHistogram(sw, set)
		}); err != nil {
			return fmt.Errorf("workbook rainflow %s/%s: %w", result.Logger.ID, set.Channel.Name, err)
		}
	}

	if first {
		return nil
	}

	path := filepath.Join(root, dirWorkbooks, sanitizeName(result.Logger.ID)+".xlsx")
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func streamStatistics(sw *excelize.StreamWriter, t *types.StatisticsTable) error {
	header := []interface{}{"Start", "End"}
	units := []interface{}{"", ""}
	for _, ch := range t.Channels {
		header = append(header, ch.Name+" Min", ch.Name+" Max", ch.Name+" Mean", ch.Name+" Std")
		units = append(units, ch.Unit, ch.Unit, ch.Unit, ch.Unit)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	if err := sw.SetRow("A2", units); err != nil {
		return err
	}

	for i, r := range t.Records {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		row := make([]interface{}, 0, len(header))
		row = append(row, formatTime(r.Start), formatTime(r.End))
		for ci := range t.Channels {
			row = append(row, cellValue(r.Min[ci]), cellValue(r.Max[ci]), cellValue(r.Mean[ci]), cellValue(r.Std[ci]))
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return nil
}

func streamSpectrogram(sw *excelize.StreamWriter, sp *types.Spectrogram) error {
	header := make([]interface{}, 0, len(sp.Frequencies)+1)
	header = append(header, "Time")
	for _, f := range sp.Frequencies {
		header = append(header, f)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, densities := range sp.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := make([]interface{}, 0, len(header))
		row = append(row, formatTime(sp.Times[i]))
		for _, v := range densities {
			row = append(row, cellValue(v))
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return nil
}

func streamHistogram(sw *excelize.StreamWriter, set *types.HistogramSet) error {
	bins := 0
	if set.Aggregate != nil {
		bins = len(set.Aggregate.Counts)
	}
	for _, h := range set.Windows {
		if h != nil && len(h.Counts) > bins {
			bins = len(h.Counts)
		}
	}

	header := make([]interface{}, 0, len(set.Windows)+2)
	header = append(header, "Range", "Aggregate")
	for _, h := range set.Windows {
		header = append(header, h.Label)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i := 0; i < bins; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := make([]interface{}, 0, len(header))
		row = append(row, float64(i)*set.BinWidth, countAt(set.Aggregate, i))
		for _, h := range set.Windows {
			row = append(row, countAt(h, i))
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return nil
}

// writeTransferWorkbook renders the transfer-function workbook for one excitation logger:
// one sheet per sea state plus the weighted-average sheet.
func (x *Writer) writeTransferWorkbook(root, loggerID string, perSeaState [][]*types.TransferFunction, weighted []*types.TransferFunction) error {
	wb := excelize.NewFile()
	defer wb.Close()
	first := true

	addSheet := func(name string, fns []*types.TransferFunction) error {
		if first {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
		} else if _, err := wb.NewSheet(name); err != nil {
			return err
		}
		sw, err := wb.NewStreamWriter(name)
		if err != nil {
			return err
		}
		if err := streamTransferFunctions(sw, fns); err != nil {
			return err
		}
		return sw.Flush()
	}

	for i, fns := range perSeaState {
		if len(fns) == 0 {
			continue
		}
		label := fns[0].SeaState
		if label == "" {
			label = fmt.Sprintf("Sea State %02d", i+1)
		}
		if err := addSheet(sheetName("TF", label), fns); err != nil {
			return fmt.Errorf("workbook transfer functions %s/%s: %w", loggerID, label, err)
		}
	}

	if len(weighted) > 0 {
		if err := addSheet("Weighted Average", weighted); err != nil {
			return fmt.Errorf("workbook weighted-average transfer functions %s: %w", loggerID, err)
		}
	}

	if first {
		return nil
	}

	path := filepath.Join(root, dirWorkbooks, sanitizeName(loggerID)+"_transfer_functions.xlsx")
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func streamTransferFunctions(sw *excelize.StreamWriter, fns []*types.TransferFunction) error {
	header := make([]interface{}, 0, len(fns)+1)
	header = append(header, "Frequency")
	for _, fn := range fns {
		header = append(header, fn.Location)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	axis := fns[0].Frequencies
	for i, f := range axis {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := make([]interface{}, 0, len(header))
		row = append(row, f)
		for _, fn := range fns {
			row = append(row, cellValue(fn.Ratio[i]))
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return nil
}
