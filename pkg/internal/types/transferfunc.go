package types

// SeaState characterizes one stationary short-duration segment of recorded motion: its
// significant wave height, peak period, and assigned percentage of long-term occurrence.
// Sea states align positionally with the excitation logger's analysis windows.
type SeaState struct {
	Label          string
	Hs             float64 // Significant wave height, m.
	Tp             float64 // Peak period, s.
	PercOccurrence float64 // Long-term occurrence percentage used as the averaging weight.
}

// TransferSettings pairs a motion logger with a response logger for transfer-function
// derivation. The excitation PSD is computed from an acceleration series derived out of the
// motion logger's displacement and rotation channels; the response PSDs are the response
// logger's ordinary per-channel spectrograms. Both loggers must share sampling frequency and
// Welch parameters or the ratio step rejects the mismatched axes.
type TransferSettings struct {
	Enabled             bool
	ExcitationLoggerID  string
	DisplacementChannel string
	RotationChannel     string
	ResponseLoggerID    string
	ResponseChannels    []string // Empty means every channel of the response logger.
	RotationRadians     bool     // Rotation series unit; degrees when false.
	Gravity             float64  // 0 means standard gravity.
	SeaStates           []SeaState
}

// TransferFunction is the frequency-domain ratio of a response-location PSD to an excitation
// PSD for one sea state. The frequency axis is shared with the contributing PSD records.
type TransferFunction struct {
	SeaState    string // Sea-state label, or "Weighted Average" for the aggregate.
	Location    string // Response location (bending-moment channel) name.
	Frequencies []float64
	Ratio       []float64
}

// TransferDeriver derives motion-to-response transfer functions from spectral reducer
// outputs: gravity-contaminated acceleration from displacement/rotation pairs, element-wise
// PSD ratios per sea state, and their occurrence-weighted average.
type TransferDeriver interface {
	// DeriveAcceleration double-differentiates the displacement series by second-order
	// central difference and adds the gravity term g*sin(rotation). The undefined
	// endpoints are dropped, so accel holds len(disp)-2 samples; elapsed is the matching
	// time index rebased to start at zero.
	DeriveAcceleration(disp, rot []float64, dt float64) (accel, elapsed []float64, err error)

	// TrimEndpoints drops the first and last sample of a series paired with a derived
	// acceleration, keeping the two aligned.
	TrimEndpoints(series []float64) ([]float64, error)

	// Ratio divides the response density by the excitation density element-wise.
	Ratio(response, excitation []float64) ([]float64, error)

	// Functions builds one transfer function per spectrogram row (window = sea state),
	// labelled by the configured sea states when present.
	Functions(excitation, response *Spectrogram) ([]*TransferFunction, error)

	// WeightedAverage folds per-sea-state transfer functions into one, weighting each by
	// its sea state's percentage occurrence.
	WeightedAverage(fns []*TransferFunction) (*TransferFunction, error)

	// NearestSeaState returns the index of the configured sea state closest to (hs, tp)
	// by Euclidean distance.
	NearestSeaState(hs, tp float64) (int, error)

	// SeaStates returns the configured sea states in order.
	SeaStates() []SeaState

	// SetSeaStates assigns the sea states, aligned positionally with the excitation
	// logger's windows.
	SetSeaStates(states []SeaState)

	// SetGravity overrides the standard gravity constant used in the gravity term.
	SetGravity(g float64)

	// SetRotationRadians marks the rotation series as radians; degrees by default.
	SetRotationRadians(radians bool)

	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata
}
