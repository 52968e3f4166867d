package rainflow

import (
	"fmt"
	"math"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// binEpsilon absorbs the floating-point wobble of a range sitting exactly on the largest
// bin edge when sizing a histogram.
const binEpsilon = 1e-9

// ceilTo3 rounds up to three decimal places, so a bin width derived from a bin count
// always covers the full range that produced it.
func ceilTo3(x float64) float64 {
	return math.Ceil(x*1000) / 1000
}

// Bin sorts cycles into a uniform left-closed histogram of the given width: bin i covers
// [i*width, (i+1)*width). Indices at or beyond MaxBins clamp into the last bin; the
// returned overflow is the number of clamped cycles. An empty cycle set or zero width
// yields an empty histogram with no counts.
func Bin(cycles []types.Cycle, width float64, label string) (*types.Histogram, int) {
	hist := &types.Histogram{Label: label, BinWidth: width}
	if len(cycles) == 0 || width <= 0 {
		return hist, 0
	}

	nbins := int(math.Ceil((maxCycleRange(cycles) + binEpsilon) / width))
	if nbins < 1 {
		nbins = 1
	}
	overflow := 0
	if nbins > MaxBins {
		nbins = MaxBins
	}

	hist.Counts = make([]float64, nbins)
	for _, c := range cycles {
		if math.IsNaN(c.Range) {
			continue
		}
		idx := int(c.Range / width)
		if idx >= nbins {
			idx = nbins - 1
			overflow++
		}
		hist.Counts[idx] += c.Count
	}
	return hist, overflow
}

// Merge returns the element-wise sum of two histograms sharing one bin width, zero-filling
// the shorter count array. A nil or empty operand merges as identity. Equal fixed-step
// indexing is what makes this a plain array sum; histograms with differing widths cannot
// be merged.
func Merge(a, b *types.Histogram) (*types.Histogram, error) {
	if a == nil || len(a.Counts) == 0 {
		return cloneHistogram(b), nil
	}
	if b == nil || len(b.Counts) == 0 {
		return cloneHistogram(a), nil
	}
	if a.BinWidth != b.BinWidth {
		return nil, fmt.Errorf("%w: %v vs %v", ErrWidthMismatch, a.BinWidth, b.BinWidth)
	}

	size := len(a.Counts)
	if len(b.Counts) > size {
		size = len(b.Counts)
	}
	counts := make([]float64, size)
	copy(counts, a.Counts)
	for i, c := range b.Counts {
		counts[i] += c
	}
	return &types.Histogram{Label: a.Label, BinWidth: a.BinWidth, Counts: counts}, nil
}

func cloneHistogram(h *types.Histogram) *types.Histogram {
	if h == nil {
		return &types.Histogram{}
	}
	return &types.Histogram{
		Label:    h.Label,
		BinWidth: h.BinWidth,
		Counts:   append([]float64(nil), h.Counts...),
	}
}
