package rainflow

import (
	"math"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Reversals collapses a series to its sequence of local extrema. Both endpoints are
// retained and plateau samples (equal consecutive values) are skipped; feeding raw samples
// straight into cycle extraction over-counts cycles.
func Reversals(series []float64) []float64 {
	if len(series) < 2 {
		return append([]float64(nil), series...)
	}

	out := make([]float64, 0, len(series))
	out = append(out, series[0])

	x := series[1]
	dLast := series[1] - series[0]
	looped := false
	for i := 2; i < len(series); i++ {
		next := series[i]
		looped = true
		if next == x {
			continue
		}
		d := next - x
		if dLast*d < 0 {
			out = append(out, x)
		}
		x = next
		dLast = d
	}
	if looped {
		out = append(out, series[len(series)-1])
	}
	return out
}

// ExtractCycles runs the four-point rainflow algorithm over a reversal sequence. Full
// cycles count 1.0; the ranges left open at the sequence boundaries count 0.5 each
// (closed-right convention: a range is counted once its upper bound is reached).
func ExtractCycles(reversals []float64) []types.Cycle {
	var cycles []types.Cycle
	points := make([]float64, 0, len(reversals))

	for _, point := range reversals {
		points = append(points, point)

		for len(points) >= 3 {
			n := len(points)
			x := math.Abs(points[n-1] - points[n-2])
			y := math.Abs(points[n-2] - points[n-3])

			if x < y {
				// The y range is still open; read the next reversal.
				break
			}
			if n == 3 {
				// y contains the starting point: count a half cycle and discard
				// the first point.
				cycles = append(cycles, newCycle(points[0], points[1], 0.5))
				points = points[1:]
				continue
			}
			// Count y as one full cycle and discard its peak and valley.
			cycles = append(cycles, newCycle(points[n-3], points[n-2], 1.0))
			points = append(points[:n-3], points[n-1])
		}
	}

	// The ranges still open at the end count as half cycles.
	for len(points) > 1 {
		cycles = append(cycles, newCycle(points[0], points[1], 0.5))
		points = points[1:]
	}
	return cycles
}

func newCycle(a, b, count float64) types.Cycle {
	return types.Cycle{
		Range: math.Abs(a - b),
		Mean:  0.5 * (a + b),
		Count: count,
	}
}
