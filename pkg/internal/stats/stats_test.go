package stats_test

import (
	"math"
	"testing"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/stats"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

var testStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// window builds a two-channel window at 20 Hz with the given per-channel values.
func window(seq int, start time.Time, heave, pitch []float64) *types.Window {
	rows := len(heave)
	ts := make([]time.Time, rows)
	for i := 0; i < rows; i++ {
		ts[i] = start.Add(time.Duration(i) * 50 * time.Millisecond)
	}
	return &types.Window{
		LoggerID:        "lg-01",
		Seq:             seq,
		Start:           start,
		End:             ts[rows-1],
		SampleFrequency: 20,
		Table: &types.SampleTable{
			Channels: []types.Channel{
				{Name: "Heave", Unit: "m", Index: 0},
				{Name: "Pitch", Unit: "deg", Index: 1},
			},
			Timestamps: ts,
			Values:     [][]float64{heave, pitch},
		},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestReduceKnownValues(t *testing.T) {
	r := stats.NewReducer()

	record := r.Reduce(window(0, testStart,
		[]float64{1, 2, 3, 4},
		[]float64{-2, -2, -2, -2},
	))

	if !record.Start.Equal(testStart) {
		t.Errorf("expected start %v, got %v", testStart, record.Start)
	}
	if record.Min[0] != 1 || record.Max[0] != 4 {
		t.Errorf("expected heave min/max 1/4, got %v/%v", record.Min[0], record.Max[0])
	}
	if !almostEqual(record.Mean[0], 2.5) {
		t.Errorf("expected heave mean 2.5, got %v", record.Mean[0])
	}
	// Population std of {1,2,3,4} is sqrt(1.25).
	if !almostEqual(record.Std[0], math.Sqrt(1.25)) {
		t.Errorf("expected heave std sqrt(1.25), got %v", record.Std[0])
	}
	if record.Min[1] != -2 || record.Max[1] != -2 || !almostEqual(record.Mean[1], -2) {
		t.Errorf("unexpected pitch statistics: %v/%v/%v", record.Min[1], record.Max[1], record.Mean[1])
	}
	if record.Std[1] != 0 {
		t.Errorf("expected zero std for constant channel, got %v", record.Std[1])
	}
}

func TestReduceExcludesNaN(t *testing.T) {
	r := stats.NewReducer()

	record := r.Reduce(window(0, testStart,
		[]float64{1, math.NaN(), 3, math.NaN()},
		[]float64{0, 0, 0, 0},
	))

	if record.Min[0] != 1 || record.Max[0] != 3 {
		t.Errorf("expected min/max 1/3 over finite samples, got %v/%v", record.Min[0], record.Max[0])
	}
	if !almostEqual(record.Mean[0], 2) {
		t.Errorf("expected mean 2 over finite samples, got %v", record.Mean[0])
	}
	// Population std of {1,3} is 1.
	if !almostEqual(record.Std[0], 1) {
		t.Errorf("expected std 1 over finite samples, got %v", record.Std[0])
	}
}

func TestReduceAllNaNChannel(t *testing.T) {
	r := stats.NewReducer()

	record := r.Reduce(window(0, testStart,
		[]float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()},
		[]float64{1, 1, 2, 2},
	))

	for _, v := range []float64{record.Min[0], record.Max[0], record.Mean[0], record.Std[0]} {
		if !math.IsNaN(v) {
			t.Errorf("expected NaN statistic for all-NaN channel, got %v", v)
		}
	}
	if math.IsNaN(record.Mean[1]) {
		t.Errorf("expected finite statistics for the healthy channel")
	}
	if got := r.Table().Len(); got != 1 {
		t.Errorf("expected the record appended despite the NaN channel, got %d records", got)
	}
}

func TestTableAccumulatesInWindowOrder(t *testing.T) {
	r := stats.NewReducer()

	first := window(0, testStart, []float64{1, 2}, []float64{0, 0})
	second := window(1, testStart.Add(100*time.Millisecond), []float64{3, 4}, []float64{0, 0})
	r.Reduce(first)
	r.Reduce(second)

	table := r.Table()
	if table.LoggerID != "lg-01" {
		t.Errorf("expected logger id lg-01, got %q", table.LoggerID)
	}
	if len(table.Channels) != 2 || table.Channels[0].Name != "Heave" || table.Channels[1].Name != "Pitch" {
		t.Fatalf("expected channels [Heave Pitch], got %v", table.Channels)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", table.Len())
	}
	if !table.Records[0].Start.Equal(first.Start) || !table.Records[1].Start.Equal(second.Start) {
		t.Errorf("records out of window order: %v, %v", table.Records[0].Start, table.Records[1].Start)
	}
	if table.Records[1].Min[0] != 3 {
		t.Errorf("expected second record heave min 3, got %v", table.Records[1].Min[0])
	}
}
