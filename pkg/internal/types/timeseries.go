package types

import "time"

// SampleTable is the uniform table contract every raw file is normalized to before it reaches
// the core: one timestamp per row plus one numeric column per selected channel. Values that
// failed numeric parsing arrive as NaN. A table is read once, windowed, and not retained.
type SampleTable struct {
	Channels   []Channel
	Timestamps []time.Time
	Values     [][]float64 // Indexed [channel][row]; all columns share the row count.
}

// Rows returns the number of sample rows in the table.
func (t *SampleTable) Rows() int {
	if t == nil {
		return 0
	}
	return len(t.Timestamps)
}

// ChannelNames returns the channel names in column order.
func (t *SampleTable) ChannelNames() []string {
	names := make([]string, len(t.Channels))
	for i, c := range t.Channels {
		names[i] = c.Name
	}
	return names
}

// SameSchema reports whether two tables present the same channel set in the same order.
// Windows must never silently mix rows from files whose schemas differ.
func (t *SampleTable) SameSchema(other *SampleTable) bool {
	if len(t.Channels) != len(other.Channels) {
		return false
	}
	for i := range t.Channels {
		if t.Channels[i].Name != other.Channels[i].Name {
			return false
		}
	}
	return true
}

// Window is a table of samples spanning exactly the target analysis length for one logger,
// or the terminal short window of a run. Start and End are the first and last row timestamps
// of the completed buffer.
type Window struct {
	LoggerID        string
	Seq             int // Zero-based emission order within the logger's run.
	Start           time.Time
	End             time.Time
	SampleFrequency float64
	Table           *SampleTable
	Short           bool // True only for the terminal partial window emitted by Flush.
}

// Rows returns the number of sample rows in the window.
func (w *Window) Rows() int {
	if w == nil {
		return 0
	}
	return w.Table.Rows()
}

// Channel returns the sample series for the channel at position idx.
func (w *Window) Channel(idx int) []float64 {
	return w.Table.Values[idx]
}

// ChannelByName returns the sample series for the named channel, or nil when absent.
func (w *Window) ChannelByName(name string) []float64 {
	for i, c := range w.Table.Channels {
		if c.Name == name {
			return w.Table.Values[i]
		}
	}
	return nil
}
