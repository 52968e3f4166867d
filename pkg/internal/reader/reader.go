// Package reader normalizes a logger's raw delimited files into the uniform SampleTable
// contract the reducers consume. It honours the logger's delimiter, header-row layout and
// column selection, coerces unparseable cells to NaN, applies per-channel unit conversions,
// and surfaces per-file quality signals (detected sampling frequency, channel resolutions,
// point-count mismatches) without ever failing the run for a single malformed value.
//
// A Reader is owned by one logger's processing loop. Sampling frequency resolution follows
// the configured value when present; otherwise it is derived from the time column of the
// first readable file and held for the rest of the run. Transparently decompresses files
// with a .zst suffix.
package reader

import (
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

// Reader is the concrete implementation behind types.Reader.
type Reader struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	config *types.LoggerConfig

	mu       sync.Mutex
	fs       float64         // Resolved sampling frequency, 0 until known.
	channels []types.Channel // Established channel set after the first readable file.

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32
}

// NewReader constructs a Reader for one logger configured with the provided options.
func NewReader(options ...types.Option[types.Reader]) types.Reader {
	r := &Reader{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "READER",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.config != nil && r.config.SampleFrequency > 0 {
		r.fs = r.config.SampleFrequency
	}

	return r
}

// SetLoggerConfig assigns the logger configuration the reader parses against.
func (r *Reader) SetLoggerConfig(cfg *types.LoggerConfig) {
	r.config = cfg
	if cfg != nil && cfg.SampleFrequency > 0 {
		r.mu.Lock()
		r.fs = cfg.SampleFrequency
		r.mu.Unlock()
	}
}
