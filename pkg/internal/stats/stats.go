// Package stats implements the statistics reducer: per-channel min, max, arithmetic mean
// and population standard deviation for every analysis window, accumulated into the
// logger's ordered statistics table. NaN samples (the coercion result for unparseable raw
// cells) are excluded from every statistic; a channel whose window is entirely NaN yields
// NaN for all four statistics without error.
package stats

import (
	"math"
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Reducer is the concrete implementation behind types.StatisticsReducer.
type Reducer struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	mu    sync.Mutex
	table *types.StatisticsTable

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32

	monitors    []types.Monitor
	monitorLock sync.Mutex
	mntrCount   int32
}

// NewReducer constructs a statistics reducer configured with the provided options.
func NewReducer(options ...types.Option[types.StatisticsReducer]) types.StatisticsReducer {
	r := &Reducer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "STATISTICS_REDUCER",
		},
		table: &types.StatisticsTable{},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	return r
}

// Reduce computes the window's statistics record and appends it to the table. Output
// column order is the window's channel order.
func (r *Reducer) Reduce(w *types.Window) *types.StatisticsRecord {
	channels := w.Table.Channels
	record := &types.StatisticsRecord{
		Start: w.Start,
		End:   w.End,
		Min:   make([]float64, len(channels)),
		Max:   make([]float64, len(channels)),
		Mean:  make([]float64, len(channels)),
		Std:   make([]float64, len(channels)),
	}

	for ci := range channels {
		record.Min[ci], record.Max[ci], record.Mean[ci], record.Std[ci] = summarize(w.Channel(ci))
	}

	r.mu.Lock()
	if r.table.LoggerID == "" {
		r.table.LoggerID = w.LoggerID
	}
	if r.table.Channels == nil {
		r.table.Channels = append([]types.Channel(nil), channels...)
	}
	r.table.Append(record)
	r.mu.Unlock()

	r.notifyReduced(w, record)
	return record
}

// summarize computes the four statistics over the finite samples of one channel window.
// All-NaN input yields four NaNs.
func summarize(samples []float64) (min, max, mean, std float64) {
	finite := make([]float64, 0, len(samples))
	for _, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		finite = append(finite, v)
	}

	if len(finite) == 0 {
		nan := math.NaN()
		return nan, nan, nan, nan
	}

	min = floats.Min(finite)
	max = floats.Max(finite)
	mean = stat.Mean(finite, nil)
	std = stat.PopStdDev(finite, nil)
	return min, max, mean, std
}
