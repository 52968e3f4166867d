package transferfunc_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/moorings-io/fathom/pkg/internal/transferfunc"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// seaStateTable is an eight-state scatter table; occurrence percentages follow the
// long-term distribution used throughout the screening acceptance data.
func seaStateTable() []types.SeaState {
	percs := []float64{19.040, 10.134, 20.049, 17.022, 14.644, 10.374, 5.448, 3.289}
	hs := []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0, 2.5, 3.0}
	tp := []float64{4.5, 5.5, 6.5, 7.5, 8.5, 9.5, 10.5, 11.5}
	states := make([]types.SeaState, len(percs))
	for i := range states {
		states[i] = types.SeaState{
			Label:          fmt.Sprintf("SS%d", i+1),
			Hs:             hs[i],
			Tp:             tp[i],
			PercOccurrence: percs[i],
		}
	}
	return states
}

func spectrogram(channel string, freqs []float64, rows ...[]float64) *types.Spectrogram {
	return &types.Spectrogram{
		LoggerID:    "lg-01",
		Channel:     types.Channel{Name: channel, Unit: "kNm", Index: 0},
		Frequencies: freqs,
		Rows:        rows,
	}
}

func TestDeriveAccelerationCentralDifference(t *testing.T) {
	d := transferfunc.NewDeriver()

	// Displacement t^2 has an exact second derivative of 2 under the central stencil.
	dt := 0.5
	disp := make([]float64, 6)
	rot := make([]float64, 6)
	for i := range disp {
		ti := float64(i) * dt
		disp[i] = ti * ti
	}

	accel, elapsed, err := d.DeriveAcceleration(disp, rot, dt)
	if err != nil {
		t.Fatalf("DeriveAcceleration error: %v", err)
	}
	if len(accel) != 4 || len(elapsed) != 4 {
		t.Fatalf("expected 4 valid samples after dropping endpoints, got %d", len(accel))
	}
	for i, a := range accel {
		if math.Abs(a-2) > 1e-9 {
			t.Errorf("expected acceleration 2 at sample %d, got %v", i, a)
		}
	}
	want := []float64{0, 0.5, 1.0, 1.5}
	for i, e := range elapsed {
		if math.Abs(e-want[i]) > 1e-12 {
			t.Errorf("expected rebased time %v at sample %d, got %v", want[i], i, e)
		}
	}
}

func TestDeriveAccelerationGravityTerm(t *testing.T) {
	d := transferfunc.NewDeriver()

	// Constant zero displacement isolates the g*sin(theta) term; 30 degrees gives g/2.
	disp := make([]float64, 5)
	rot := []float64{30, 30, 30, 30, 30}
	accel, _, err := d.DeriveAcceleration(disp, rot, 0.1)
	if err != nil {
		t.Fatalf("DeriveAcceleration error: %v", err)
	}
	for _, a := range accel {
		if math.Abs(a-transferfunc.StandardGravity/2) > 1e-9 {
			t.Errorf("expected g/2 from the 30 degree gravity term, got %v", a)
		}
	}

	radians := transferfunc.NewDeriver(
		transferfunc.WithRotationRadians(true),
		transferfunc.WithGravity(10),
	)
	rotRad := []float64{math.Pi / 6, math.Pi / 6, math.Pi / 6, math.Pi / 6, math.Pi / 6}
	accel, _, err = radians.DeriveAcceleration(disp, rotRad, 0.1)
	if err != nil {
		t.Fatalf("DeriveAcceleration error: %v", err)
	}
	for _, a := range accel {
		if math.Abs(a-5) > 1e-9 {
			t.Errorf("expected 5 from radian input with g=10, got %v", a)
		}
	}
}

func TestDeriveAccelerationDropsExactlyTwoSamples(t *testing.T) {
	d := transferfunc.NewDeriver()

	// A full-length displacement record loses exactly its two endpoint samples and the
	// surviving time index restarts at zero.
	rows := 36002
	dt := 0.1
	disp := make([]float64, rows)
	rot := make([]float64, rows)
	for i := range disp {
		disp[i] = math.Sin(2 * math.Pi * 0.05 * float64(i) * dt)
	}

	accel, elapsed, err := d.DeriveAcceleration(disp, rot, dt)
	if err != nil {
		t.Fatalf("DeriveAcceleration error: %v", err)
	}
	if len(accel) != rows-2 {
		t.Fatalf("expected %d valid samples, got %d", rows-2, len(accel))
	}
	if elapsed[0] != 0 {
		t.Errorf("expected rebased time to start at 0, got %v", elapsed[0])
	}
	if math.Abs(elapsed[len(elapsed)-1]-float64(rows-3)*dt) > 1e-6 {
		t.Errorf("expected final rebased time %v, got %v", float64(rows-3)*dt, elapsed[len(elapsed)-1])
	}
}

func TestDeriveAccelerationErrors(t *testing.T) {
	d := transferfunc.NewDeriver()

	if _, _, err := d.DeriveAcceleration([]float64{1, 2, 3}, []float64{0, 0}, 0.1); !errors.Is(err, transferfunc.ErrSeriesLength) {
		t.Errorf("expected ErrSeriesLength for mismatched inputs, got %v", err)
	}
	if _, _, err := d.DeriveAcceleration([]float64{1, 2}, []float64{0, 0}, 0.1); !errors.Is(err, transferfunc.ErrSeriesLength) {
		t.Errorf("expected ErrSeriesLength for a too-short series, got %v", err)
	}
	if _, _, err := d.DeriveAcceleration([]float64{1, 2, 3}, []float64{0, 0, 0}, 0); err == nil {
		t.Errorf("expected an error for a non-positive sample interval")
	}
}

func TestTrimEndpoints(t *testing.T) {
	d := transferfunc.NewDeriver()

	src := []float64{1, 2, 3, 4}
	out, err := d.TrimEndpoints(src)
	if err != nil {
		t.Fatalf("TrimEndpoints error: %v", err)
	}
	if len(out) != 2 || out[0] != 2 || out[1] != 3 {
		t.Fatalf("expected [2 3], got %v", out)
	}
	src[1] = 99
	if out[0] != 2 {
		t.Errorf("expected trimmed series not to alias the source")
	}
	if _, err := d.TrimEndpoints([]float64{1, 2}); !errors.Is(err, transferfunc.ErrSeriesLength) {
		t.Errorf("expected ErrSeriesLength, got %v", err)
	}
}

func TestRatio(t *testing.T) {
	d := transferfunc.NewDeriver()

	out, err := d.Ratio([]float64{8, 6, 4}, []float64{2, 3, 4})
	if err != nil {
		t.Fatalf("Ratio error: %v", err)
	}
	want := []float64{4, 2, 1}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("expected ratio %v at bin %d, got %v", want[i], i, out[i])
		}
	}

	out, err = d.Ratio([]float64{1, 0}, []float64{0, 0})
	if err != nil {
		t.Fatalf("Ratio error: %v", err)
	}
	if !math.IsInf(out[0], 1) {
		t.Errorf("expected +Inf for finite/zero, got %v", out[0])
	}
	if !math.IsNaN(out[1]) {
		t.Errorf("expected NaN for zero/zero, got %v", out[1])
	}

	if _, err := d.Ratio([]float64{1}, []float64{1, 2}); !errors.Is(err, transferfunc.ErrSeriesLength) {
		t.Errorf("expected ErrSeriesLength, got %v", err)
	}
}

func TestNearestSeaState(t *testing.T) {
	d := transferfunc.NewDeriver(transferfunc.WithSeaStates(seaStateTable()...))

	idx, err := d.NearestSeaState(2, 9.5)
	if err != nil {
		t.Fatalf("NearestSeaState error: %v", err)
	}
	if idx != 5 {
		t.Errorf("expected nearest sea state index 5 for (2, 9.5), got %d", idx)
	}

	idx, err = d.NearestSeaState(0.6, 4.6)
	if err != nil {
		t.Fatalf("NearestSeaState error: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected nearest sea state index 0 for (0.6, 4.6), got %d", idx)
	}

	empty := transferfunc.NewDeriver()
	if _, err := empty.NearestSeaState(2, 9.5); !errors.Is(err, transferfunc.ErrNoSeaStates) {
		t.Errorf("expected ErrNoSeaStates, got %v", err)
	}
}

func TestNearestSeaStateTieTakesLowestIndex(t *testing.T) {
	d := transferfunc.NewDeriver(transferfunc.WithSeaStates(
		types.SeaState{Label: "a", Hs: 1, Tp: 9},
		types.SeaState{Label: "b", Hs: 3, Tp: 9},
	))

	idx, err := d.NearestSeaState(2, 9)
	if err != nil {
		t.Fatalf("NearestSeaState error: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected the tie to resolve to index 0, got %d", idx)
	}
}

func TestFunctionsPerSeaState(t *testing.T) {
	freqs := []float64{0, 0.5, 1}
	exc := spectrogram("Accel", freqs,
		[]float64{1, 2, 4},
		[]float64{2, 2, 2},
	)
	resp := spectrogram("BM-Aft", freqs,
		[]float64{2, 2, 4},
		[]float64{6, 4, 2},
	)

	d := transferfunc.NewDeriver(transferfunc.WithSeaStates(
		types.SeaState{Label: "calm", Hs: 1, Tp: 5, PercOccurrence: 60},
		types.SeaState{Label: "storm", Hs: 4, Tp: 11, PercOccurrence: 40},
	))

	fns, err := d.Functions(exc, resp)
	if err != nil {
		t.Fatalf("Functions error: %v", err)
	}
	if len(fns) != 2 {
		t.Fatalf("expected one transfer function per window, got %d", len(fns))
	}
	if fns[0].SeaState != "calm" || fns[1].SeaState != "storm" {
		t.Errorf("expected sea-state labels, got %q, %q", fns[0].SeaState, fns[1].SeaState)
	}
	if fns[0].Location != "BM-Aft" {
		t.Errorf("expected location from the response channel, got %q", fns[0].Location)
	}
	want := [][]float64{{2, 1, 1}, {3, 2, 1}}
	for i := range want {
		for k := range want[i] {
			if math.Abs(fns[i].Ratio[k]-want[i][k]) > 1e-12 {
				t.Errorf("window %d bin %d: expected %v, got %v", i, k, want[i][k], fns[i].Ratio[k])
			}
		}
	}
}

func TestFunctionsWithoutSeaStatesLabelsByOrdinal(t *testing.T) {
	freqs := []float64{0, 0.5}
	d := transferfunc.NewDeriver()

	fns, err := d.Functions(
		spectrogram("Accel", freqs, []float64{1, 1}),
		spectrogram("BM-Fwd", freqs, []float64{2, 3}),
	)
	if err != nil {
		t.Fatalf("Functions error: %v", err)
	}
	if fns[0].SeaState != "Window 1" {
		t.Errorf("expected ordinal label, got %q", fns[0].SeaState)
	}
}

func TestFunctionsRejectsMismatchedAxes(t *testing.T) {
	d := transferfunc.NewDeriver()

	_, err := d.Functions(
		spectrogram("Accel", []float64{0, 0.5}, []float64{1, 1}),
		spectrogram("BM-Fwd", []float64{0, 1}, []float64{2, 3}),
	)
	if !errors.Is(err, transferfunc.ErrAxisMismatch) {
		t.Errorf("expected ErrAxisMismatch for differing axes, got %v", err)
	}

	_, err = d.Functions(
		spectrogram("Accel", []float64{0, 0.5}, []float64{1, 1}, []float64{1, 1}),
		spectrogram("BM-Fwd", []float64{0, 0.5}, []float64{2, 3}),
	)
	if !errors.Is(err, transferfunc.ErrAxisMismatch) {
		t.Errorf("expected ErrAxisMismatch for differing window counts, got %v", err)
	}
}

func TestFunctionsRejectsMisalignedSeaStates(t *testing.T) {
	freqs := []float64{0, 0.5}
	d := transferfunc.NewDeriver(transferfunc.WithSeaStates(seaStateTable()...))

	_, err := d.Functions(
		spectrogram("Accel", freqs, []float64{1, 1}),
		spectrogram("BM-Fwd", freqs, []float64{2, 3}),
	)
	if err == nil {
		t.Fatal("expected an error when sea states do not align with windows")
	}
}

func TestWeightedAverage(t *testing.T) {
	d := transferfunc.NewDeriver(transferfunc.WithSeaStates(
		types.SeaState{Label: "calm", PercOccurrence: 25},
		types.SeaState{Label: "storm", PercOccurrence: 75},
	))

	avg, err := d.WeightedAverage([]*types.TransferFunction{
		{SeaState: "calm", Location: "BM-Aft", Frequencies: []float64{0, 0.5}, Ratio: []float64{2, 4}},
		{SeaState: "storm", Location: "BM-Aft", Frequencies: []float64{0, 0.5}, Ratio: []float64{6, 8}},
	})
	if err != nil {
		t.Fatalf("WeightedAverage error: %v", err)
	}
	if avg.SeaState != "Weighted Average" {
		t.Errorf("expected the aggregate label, got %q", avg.SeaState)
	}
	if math.Abs(avg.Ratio[0]-5) > 1e-12 || math.Abs(avg.Ratio[1]-7) > 1e-12 {
		t.Errorf("expected weighted ratios [5 7], got %v", avg.Ratio)
	}
}

func TestWeightedAverageRequiresSeaStates(t *testing.T) {
	d := transferfunc.NewDeriver()

	_, err := d.WeightedAverage([]*types.TransferFunction{
		{Ratio: []float64{1}, Frequencies: []float64{0}},
	})
	if !errors.Is(err, transferfunc.ErrNoSeaStates) {
		t.Errorf("expected ErrNoSeaStates, got %v", err)
	}

	zero := transferfunc.NewDeriver(transferfunc.WithSeaStates(
		types.SeaState{Label: "a", PercOccurrence: 0},
	))
	if _, err := zero.WeightedAverage([]*types.TransferFunction{
		{Ratio: []float64{1}, Frequencies: []float64{0}},
	}); err == nil {
		t.Errorf("expected an error when occurrence weights sum to zero")
	}
}
