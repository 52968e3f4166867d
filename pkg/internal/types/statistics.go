package types

import "time"

// StatisticsRecord holds the four summary statistics for every channel of one window,
// keyed by the window's start timestamp. Records are immutable once appended to a table.
type StatisticsRecord struct {
	Start time.Time
	End   time.Time
	Min   []float64 // Aligned to the owning table's channel order.
	Max   []float64
	Mean  []float64
	Std   []float64 // Population standard deviation.
}

// StatisticsTable is the per-logger ordered accumulator of window statistics. It is owned by
// one reducer and passed by handle, never looked up through shared global state.
type StatisticsTable struct {
	LoggerID string
	Channels []Channel
	Records  []*StatisticsRecord
}

// Append adds a completed record. Records arrive in window order and are never mutated after.
func (t *StatisticsTable) Append(r *StatisticsRecord) {
	t.Records = append(t.Records, r)
}

// Len returns the number of accumulated records.
func (t *StatisticsTable) Len() int { return len(t.Records) }
