package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/catalog"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NewCatalog creates a logger catalog with the provided configuration options.
func NewCatalog(options ...types.Option[types.Catalog]) types.Catalog {
	return catalog.NewCatalog(options...)
}

// CatalogWithLogger adds one or more loggers to the catalog.
func CatalogWithLogger(logger ...types.Logger) types.Option[types.Catalog] {
	return catalog.WithLogger(logger...)
}
