// Package transferfunc derives motion-to-response transfer functions from spectral
// reducer outputs. The excitation side is a gravity-contaminated acceleration obtained by
// double-differentiating a displacement channel and adding g*sin(rotation); the response
// side is a bending-moment location channel. One transfer function is derived per window
// (= sea state) as the element-wise PSD ratio, and the per-location result is the
// occurrence-weighted average across sea states.
package transferfunc

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
)

// StandardGravity is the conventional standard acceleration of free fall, m/s^2.
const StandardGravity = 9.80665

var (
	// ErrSeriesLength is returned when paired series disagree in length or are too short
	// for the finite-difference stencil.
	ErrSeriesLength = errors.New("transferfunc: series length mismatch")

	// ErrAxisMismatch is returned when the excitation and response spectrograms do not
	// share a frequency axis or row count.
	ErrAxisMismatch = errors.New("transferfunc: spectrogram axes differ")

	// ErrNoSeaStates is returned when an operation needs sea states and none are
	// configured.
	ErrNoSeaStates = errors.New("transferfunc: no sea states configured")
)

// Deriver is the concrete implementation behind types.TransferDeriver.
type Deriver struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	mu      sync.Mutex
	states  []types.SeaState
	gravity float64
	radians bool

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32
}

// NewDeriver constructs a transfer-function deriver configured with the provided options.
func NewDeriver(options ...types.Option[types.TransferDeriver]) types.TransferDeriver {
	d := &Deriver{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "TRANSFER_DERIVER",
		},
		gravity: StandardGravity,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}

	return d
}

// DeriveAcceleration double-differentiates disp by second-order central difference with
// step dt and adds g*sin(rot). The first and last samples have no full stencil and are
// dropped; elapsed is the surviving samples' time index rebased to zero.
func (d *Deriver) DeriveAcceleration(disp, rot []float64, dt float64) ([]float64, []float64, error) {
	if len(disp) != len(rot) {
		return nil, nil, fmt.Errorf("%w: %d displacement vs %d rotation samples", ErrSeriesLength, len(disp), len(rot))
	}
	if len(disp) < 3 {
		return nil, nil, fmt.Errorf("%w: need at least 3 samples, got %d", ErrSeriesLength, len(disp))
	}
	if dt <= 0 {
		return nil, nil, fmt.Errorf("sample interval must be positive, got %v", dt)
	}

	d.mu.Lock()
	g := d.gravity
	radians := d.radians
	d.mu.Unlock()

	accel := make([]float64, len(disp)-2)
	elapsed := make([]float64, len(disp)-2)
	h2 := dt * dt
	for i := 1; i < len(disp)-1; i++ {
		theta := rot[i]
		if !radians {
			theta *= math.Pi / 180
		}
		accel[i-1] = (disp[i+1]-2*disp[i]+disp[i-1])/h2 + g*math.Sin(theta)
		elapsed[i-1] = float64(i-1) * dt
	}

	d.notifyDerived(len(disp), len(accel))
	return accel, elapsed, nil
}

// TrimEndpoints drops the first and last sample so a paired response series stays aligned
// with a derived acceleration.
func (d *Deriver) TrimEndpoints(series []float64) ([]float64, error) {
	if len(series) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 samples, got %d", ErrSeriesLength, len(series))
	}
	out := make([]float64, len(series)-2)
	copy(out, series[1:len(series)-1])
	return out, nil
}

// Ratio divides response by excitation element-wise. Zero excitation bins follow IEEE
// division (Inf or NaN) and propagate.
func (d *Deriver) Ratio(response, excitation []float64) ([]float64, error) {
	if len(response) != len(excitation) {
		return nil, fmt.Errorf("%w: %d response vs %d excitation bins", ErrSeriesLength, len(response), len(excitation))
	}
	out := make([]float64, len(response))
	copy(out, response)
	floats.Div(out, excitation)
	return out, nil
}

// Functions builds one transfer function per accumulated window, pairing excitation and
// response rows positionally. Configured sea states must align with the windows one to
// one; without sea states the functions are labelled by window ordinal.
func (d *Deriver) Functions(excitation, response *types.Spectrogram) ([]*types.TransferFunction, error) {
	if excitation == nil || response == nil || excitation.Len() == 0 {
		return nil, fmt.Errorf("%w: empty spectrogram", ErrAxisMismatch)
	}
	if excitation.Len() != response.Len() {
		return nil, fmt.Errorf("%w: %d excitation vs %d response windows", ErrAxisMismatch, excitation.Len(), response.Len())
	}
	if !floats.Equal(excitation.Frequencies, response.Frequencies) {
		return nil, fmt.Errorf("%w: excitation and response frequency axes differ", ErrAxisMismatch)
	}

	states := d.SeaStates()
	if len(states) > 0 && len(states) != excitation.Len() {
		return nil, fmt.Errorf("%d sea states do not align with %d windows", len(states), excitation.Len())
	}

	fns := make([]*types.TransferFunction, excitation.Len())
	for i := range fns {
		ratio, err := d.Ratio(response.Rows[i], excitation.Rows[i])
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("Window %d", i+1)
		if len(states) > 0 {
			label = states[i].Label
		}
		fns[i] = &types.TransferFunction{
			SeaState:    label,
			Location:    response.Channel.Name,
			Frequencies: excitation.Frequencies,
			Ratio:       ratio,
		}
	}

	d.notifyFunctions(response.Channel.Name, len(fns))
	return fns, nil
}

// WeightedAverage folds the per-sea-state transfer functions into one, weighting window i
// by the configured sea state i's percentage occurrence.
func (d *Deriver) WeightedAverage(fns []*types.TransferFunction) (*types.TransferFunction, error) {
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: no transfer functions to average", ErrSeriesLength)
	}
	states := d.SeaStates()
	if len(states) == 0 {
		return nil, ErrNoSeaStates
	}
	if len(states) != len(fns) {
		return nil, fmt.Errorf("%d sea states do not align with %d transfer functions", len(states), len(fns))
	}

	avg := make([]float64, len(fns[0].Ratio))
	var sum float64
	for i, fn := range fns {
		if len(fn.Ratio) != len(avg) {
			return nil, fmt.Errorf("%w: transfer function %d has %d bins, want %d", ErrSeriesLength, i, len(fn.Ratio), len(avg))
		}
		floats.AddScaled(avg, states[i].PercOccurrence, fn.Ratio)
		sum += states[i].PercOccurrence
	}
	if sum == 0 {
		return nil, fmt.Errorf("sea-state occurrence weights sum to zero")
	}
	floats.Scale(1/sum, avg)

	return &types.TransferFunction{
		SeaState:    "Weighted Average",
		Location:    fns[0].Location,
		Frequencies: fns[0].Frequencies,
		Ratio:       avg,
	}, nil
}
