package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// compressedExt is appended to delimited outputs when zstd compression is enabled.
const compressedExt = ".zst"

// sanitizeName maps an arbitrary identifier (logger id, channel name, sea-state label)
// onto a filename-safe token. Logger ids are unique by catalog validation, so distinct
// loggers keep distinct filenames.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}

// sheetName builds a workbook sheet name within excelize's 31-character limit, stripping
// the characters xlsx forbids in sheet names.
func sheetName(prefix, name string) string {
	var b strings.Builder
	for _, r := range prefix + " " + name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" {
		s = "Sheet"
	}
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}

// formatFloat renders a value with the shortest round-trippable representation. NaN and
// the infinities keep strconv's spelling, which strconv.ParseFloat reads back.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// cellValue converts a sample for a workbook cell. xlsx numeric cells cannot hold IEEE
// specials, so NaN and the infinities are written as text.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatFloat(v)
	}
	return v
}

// zstFile chains the zstd encoder and its backing file so Close flushes the frame before
// the file handle goes away.
type zstFile struct {
	enc *zstd.Encoder
	f   *os.File
}

func (z *zstFile) Write(p []byte) (int, error) { return z.enc.Write(p) }

func (z *zstFile) Close() error {
	if err := z.enc.Close(); err != nil {
		_ = z.f.Close()
		return err
	}
	return z.f.Close()
}

// createDelimited opens the delimited output file at path, transparently wrapping it in a
// zstd encoder (and extending the name) when compression is enabled.
func createDelimited(path string, compress bool) (io.WriteCloser, error) {
	if compress {
		path += compressedExt
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	if !compress {
		return f, nil
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &zstFile{enc: enc, f: f}, nil
}
