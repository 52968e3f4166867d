package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/reader"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NewReader creates a raw-file reader with the provided configuration options.
func NewReader(options ...types.Option[types.Reader]) types.Reader {
	return reader.NewReader(options...)
}

// ReaderWithLogger adds one or more loggers to the reader.
func ReaderWithLogger(logger ...types.Logger) types.Option[types.Reader] {
	return reader.WithLogger(logger...)
}

// ReaderWithLoggerConfig assigns the logger configuration the reader parses against.
func ReaderWithLoggerConfig(cfg *types.LoggerConfig) types.Option[types.Reader] {
	return reader.WithLoggerConfig(cfg)
}
