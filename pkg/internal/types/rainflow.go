package types

// Cycle is one stress cycle extracted from a reversal sequence. Count is 1.0 for a full
// cycle and 0.5 for a half cycle left over at the sequence boundaries.
type Cycle struct {
	Range float64
	Mean  float64
	Count float64
}

// Histogram is a uniform-width stress-range histogram. Bin i covers the left-closed
// interval [i*BinWidth, (i+1)*BinWidth), so a bin index is just floor(range/width); merging
// two histograms reduces to summing fixed-step integer-indexed count arrays, which avoids
// the floating-point edge mismatches a generic join on float edges would invite.
type Histogram struct {
	Label    string  // Window start label, or "Aggregate" for the accumulated histogram.
	BinWidth float64 // Uniform bin width; > 0 for any non-empty histogram.
	Counts   []float64
}

// Empty reports whether the histogram holds no cycles at all.
func (h *Histogram) Empty() bool {
	if h == nil {
		return true
	}
	for _, c := range h.Counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// Total returns the summed cycle count across all bins.
func (h *Histogram) Total() float64 {
	var sum float64
	for _, c := range h.Counts {
		sum += c
	}
	return sum
}

// LowerEdge returns the lower stress bound of bin i.
func (h *Histogram) LowerEdge(i int) float64 { return float64(i) * h.BinWidth }

// UpperEdge returns the upper stress bound of bin i.
func (h *Histogram) UpperEdge(i int) float64 { return float64(i+1) * h.BinWidth }

// HistogramSet is the per-logger, per-channel rainflow accumulator: the ordered per-window
// histograms plus the running Aggregate, which always equals the element-wise sum of the
// window histograms after zero-filling to the common bin set.
type HistogramSet struct {
	LoggerID  string
	Channel   Channel
	BinWidth  float64 // Fixed step shared by every histogram in the set.
	Windows   []*Histogram
	Aggregate *Histogram
}
