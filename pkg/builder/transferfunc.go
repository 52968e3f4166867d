package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/transferfunc"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NewTransferDeriver creates a motion-to-response transfer-function deriver.
func NewTransferDeriver(options ...types.Option[types.TransferDeriver]) types.TransferDeriver {
	return transferfunc.NewDeriver(options...)
}

// TransferWithLogger adds one or more loggers to the deriver.
func TransferWithLogger(logger ...types.Logger) types.Option[types.TransferDeriver] {
	return transferfunc.WithLogger(logger...)
}

// TransferWithSeaStates assigns the sea states aligned with the excitation windows.
func TransferWithSeaStates(states ...types.SeaState) types.Option[types.TransferDeriver] {
	return transferfunc.WithSeaStates(states...)
}

// TransferWithGravity overrides the standard gravity constant.
func TransferWithGravity(g float64) types.Option[types.TransferDeriver] {
	return transferfunc.WithGravity(g)
}

// TransferWithRotationRadians marks the rotation series as radians rather than degrees.
func TransferWithRotationRadians(radians bool) types.Option[types.TransferDeriver] {
	return transferfunc.WithRotationRadians(radians)
}
