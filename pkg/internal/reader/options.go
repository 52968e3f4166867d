// Package reader provides options for configuring Reader components.
package reader

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a Reader.
func WithLogger(logger ...types.Logger) types.Option[types.Reader] {
	return func(r types.Reader) {
		r.ConnectLogger(logger...)
	}
}

// WithLoggerConfig creates an option that assigns the logger configuration the reader
// parses against.
func WithLoggerConfig(cfg *types.LoggerConfig) types.Option[types.Reader] {
	return func(r types.Reader) {
		r.SetLoggerConfig(cfg)
	}
}
