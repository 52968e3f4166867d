package reader

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// rawFile is the intermediate parse result before column selection and timestamping.
type rawFile struct {
	headerNames []string
	headerUnits []string
	rows        [][]string
}

// parseFile reads every line of the file, capturing header rows by their configured indices
// and collecting the data rows as raw string fields. Files with a .zst suffix are
// decompressed on the fly.
func (r *Reader) parseFile(path string) (*rawFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: opening %s: %w", path, err)
	}
	defer f.Close()

	var scanner *bufio.Scanner
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reader: decompressing %s: %w", path, err)
		}
		defer dec.Close()
		scanner = bufio.NewScanner(dec)
	} else {
		scanner = bufio.NewScanner(bufio.NewReader(f))
	}
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	header := r.config.Header
	out := &rawFile{}

	row := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case header.ChannelRow >= 0 && row == header.ChannelRow:
			out.headerNames = r.splitFields(line)
		case header.UnitsRow >= 0 && row == header.UnitsRow:
			out.headerUnits = r.splitFields(line)
		case row >= header.FirstDataRow:
			if strings.TrimSpace(line) == "" {
				row++
				continue
			}
			out.rows = append(out.rows, r.splitFields(line))
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reader: scanning %s: %w", path, err)
	}
	return out, nil
}

// splitFields splits one line into trimmed cells. An empty delimiter means any run of
// whitespace.
func (r *Reader) splitFields(line string) []string {
	if r.config.Delimiter == "" {
		return strings.Fields(line)
	}
	fields := strings.Split(line, r.config.Delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseCell converts one cell to a float, coercing parse failures to NaN.
func parseCell(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// resolveChannels builds this file's channel set: configured names and units win, then the
// file's header rows, then positional placeholders.
func (r *Reader) resolveChannels(headerNames, headerUnits []string) []types.Channel {
	cfg := r.config
	channels := make([]types.Channel, len(cfg.SelectedColumns))
	for i, col := range cfg.SelectedColumns {
		name := fmt.Sprintf("C%d", i+1)
		if i < len(cfg.ChannelNames) && cfg.ChannelNames[i] != "" {
			name = cfg.ChannelNames[i]
		} else if col < len(headerNames) && headerNames[col] != "" {
			name = headerNames[col]
		}

		unit := ""
		if i < len(cfg.ChannelUnits) && cfg.ChannelUnits[i] != "" {
			unit = cfg.ChannelUnits[i]
		} else if col < len(headerUnits) {
			unit = headerUnits[col]
		}

		channels[i] = types.Channel{Name: name, Unit: unit, Index: i}
	}
	return channels
}

// buildTable converts raw string rows to the numeric SampleTable: parses the time column,
// resolves the sampling frequency, stamps row times against base, selects and converts the
// configured channels, and computes the per-channel resolution signal.
func (r *Reader) buildTable(raw *rawFile, channels []types.Channel, base time.Time, quality *types.FileQuality) *types.SampleTable {
	cfg := r.config
	n := len(raw.rows)

	elapsed := make([]float64, n)
	for i, fields := range raw.rows {
		if cfg.TimeColumn < len(fields) {
			elapsed[i] = parseCell(fields[cfg.TimeColumn])
		} else {
			elapsed[i] = math.NaN()
		}
	}

	fileFs := detectFrequency(elapsed)
	quality.SampleFrequency = fileFs
	if fileFs == 0 {
		quality.Warnings = append(quality.Warnings, "sample frequency undetectable from time column")
	}

	r.mu.Lock()
	if r.fs == 0 && fileFs > 0 {
		r.fs = fileFs
	}
	fs := r.fs
	r.mu.Unlock()

	dt := 0.0
	if fs > 0 {
		dt = 1.0 / fs
	}

	firstElapsed := math.NaN()
	for _, e := range elapsed {
		if !math.IsNaN(e) {
			firstElapsed = e
			break
		}
	}

	timestamps := make([]time.Time, n)
	approximated := false
	for i := range raw.rows {
		switch {
		case !math.IsNaN(elapsed[i]) && !math.IsNaN(firstElapsed):
			timestamps[i] = base.Add(secondsToDuration(elapsed[i] - firstElapsed))
		case dt > 0:
			timestamps[i] = base.Add(secondsToDuration(float64(i) * dt))
			approximated = true
		default:
			timestamps[i] = base
			approximated = true
		}
	}
	if approximated {
		quality.Warnings = append(quality.Warnings, "row timestamps approximated for rows with unreadable time cells")
	}

	values := make([][]float64, len(cfg.SelectedColumns))
	missing := make([]bool, len(cfg.SelectedColumns))
	for ci, col := range cfg.SelectedColumns {
		factor := 1.0
		if ci < len(cfg.UnitConversions) && cfg.UnitConversions[ci] != 0 {
			factor = cfg.UnitConversions[ci]
		}

		column := make([]float64, n)
		for i, fields := range raw.rows {
			if col < len(fields) {
				column[i] = parseCell(fields[col]) * factor
			} else {
				column[i] = math.NaN()
				missing[ci] = true
			}
		}
		values[ci] = column
	}
	for ci, m := range missing {
		if m {
			quality.Warnings = append(quality.Warnings,
				fmt.Sprintf("column %d missing in some rows; filled with NaN", cfg.SelectedColumns[ci]))
		}
	}

	quality.Resolutions = channelResolutions(values)

	return &types.SampleTable{
		Channels:   channels,
		Timestamps: timestamps,
		Values:     values,
	}
}

// detectFrequency derives the sampling frequency from the elapsed-time column using the
// first and last finite entries. Returns 0 when the column cannot support a detection,
// which is a non-fatal quality signal for every file but a logger's first.
func detectFrequency(elapsed []float64) float64 {
	firstIdx, lastIdx := -1, -1
	for i, e := range elapsed {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			continue
		}
		if firstIdx < 0 {
			firstIdx = i
		}
		lastIdx = i
	}
	if firstIdx < 0 || lastIdx <= firstIdx {
		return 0
	}
	span := elapsed[lastIdx] - elapsed[firstIdx]
	if span <= 0 {
		return 0
	}
	fs := float64(lastIdx-firstIdx) / span
	if math.IsNaN(fs) || math.IsInf(fs, 0) || fs <= 0 {
		return 0
	}
	return fs
}

// channelResolutions computes the smallest distinct successive difference per channel, the
// quantization signal that surfaces suspiciously coarse recordings. NaN when a channel has
// no two successive finite samples that differ.
func channelResolutions(values [][]float64) []float64 {
	out := make([]float64, len(values))
	for ci, column := range values {
		res := math.NaN()
		for i := 1; i < len(column); i++ {
			a, b := column[i-1], column[i]
			if math.IsNaN(a) || math.IsNaN(b) {
				continue
			}
			d := math.Abs(b - a)
			if d == 0 {
				continue
			}
			if math.IsNaN(res) || d < res {
				res = d
			}
		}
		out[ci] = res
	}
	return out
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
