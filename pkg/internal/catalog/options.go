// Package catalog provides options for configuring Catalog components.
package catalog

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to a Catalog.
func WithLogger(logger ...types.Logger) types.Option[types.Catalog] {
	return func(c types.Catalog) {
		c.ConnectLogger(logger...)
	}
}
