// Package transferfunc provides options for configuring TransferDeriver components.
package transferfunc

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a TransferDeriver.
func WithLogger(logger ...types.Logger) types.Option[types.TransferDeriver] {
	return func(d types.TransferDeriver) {
		d.ConnectLogger(logger...)
	}
}

// WithSeaStates creates an option assigning the sea states aligned with the excitation
// logger's windows.
func WithSeaStates(states ...types.SeaState) types.Option[types.TransferDeriver] {
	return func(d types.TransferDeriver) {
		d.SetSeaStates(states)
	}
}

// WithGravity creates an option overriding the gravity constant.
func WithGravity(g float64) types.Option[types.TransferDeriver] {
	return func(d types.TransferDeriver) {
		d.SetGravity(g)
	}
}

// WithRotationRadians creates an option marking rotation series as radians.
func WithRotationRadians(radians bool) types.Option[types.TransferDeriver] {
	return func(d types.TransferDeriver) {
		d.SetRotationRadians(radians)
	}
}
