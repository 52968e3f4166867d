// Package assembler implements the window assembler: the stateful component that buffers
// raw sample rows across file boundaries and emits fixed-length analysis windows. At most
// one partially-filled buffer exists per logger at any time; a window is emitted the moment
// the buffer reaches the target length, so one ingested file can complete several windows
// and one window can span several files. Rows are consumed strictly in arrival order,
// which downstream rainflow counting depends on.
package assembler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

// ErrSchemaMismatch is returned when an ingested table's channel set differs from the set
// established by earlier ingests. The offending table is not consumed.
var ErrSchemaMismatch = errors.New("window assembler: channel schema mismatch")

// Assembler is the concrete implementation behind types.WindowAssembler.
type Assembler struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	loggerID string
	target   int
	fs       float64

	mu         sync.Mutex
	channels   []types.Channel // Established by the first ingested table.
	timestamps []time.Time
	values     [][]float64
	seq        int
	emitted    int

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32

	monitors    []types.Monitor
	monitorLock sync.Mutex
	mntrCount   int32
}

// NewWindowAssembler constructs an assembler configured with the provided options.
func NewWindowAssembler(options ...types.Option[types.WindowAssembler]) types.WindowAssembler {
	a := &Assembler{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "WINDOW_ASSEMBLER",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}

	return a
}

// Ingest appends rows from the table to the buffer, emitting every window completed along
// the way. A schema mismatch consumes nothing and returns ErrSchemaMismatch.
func (a *Assembler) Ingest(table *types.SampleTable) ([]*types.Window, error) {
	if table == nil || table.Rows() == 0 {
		return nil, nil
	}
	if a.target <= 0 {
		return nil, fmt.Errorf("window assembler: target length not configured")
	}

	a.mu.Lock()

	if a.channels == nil {
		a.channels = append([]types.Channel(nil), table.Channels...)
		a.values = make([][]float64, len(a.channels))
	} else if !a.sameSchemaLocked(table) {
		a.mu.Unlock()
		err := fmt.Errorf("%w: logger %s: got %v, want %v",
			ErrSchemaMismatch, a.loggerID, table.ChannelNames(), channelNames(a.channels))
		a.notifySchemaMismatch(table)
		return nil, err
	}
	if len(table.Values) != len(a.channels) {
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: logger %s: %d value columns for %d channels",
			ErrSchemaMismatch, a.loggerID, len(table.Values), len(a.channels))
	}

	var completed []*types.Window
	offset := 0
	rows := table.Rows()
	for offset < rows {
		take := a.target - len(a.timestamps)
		if take > rows-offset {
			take = rows - offset
		}

		a.timestamps = append(a.timestamps, table.Timestamps[offset:offset+take]...)
		for ci := range a.values {
			a.values[ci] = append(a.values[ci], table.Values[ci][offset:offset+take]...)
		}
		offset += take

		if len(a.timestamps) == a.target {
			completed = append(completed, a.emitLocked(false))
		}
	}

	a.mu.Unlock()

	for _, w := range completed {
		a.notifyWindowEmitted(w)
	}
	return completed, nil
}

// Flush emits the terminal short window from any remaining buffered rows, or nil when the
// buffer is empty.
func (a *Assembler) Flush() *types.Window {
	a.mu.Lock()
	if len(a.timestamps) == 0 {
		a.mu.Unlock()
		return nil
	}
	w := a.emitLocked(true)
	a.mu.Unlock()

	a.notifyWindowEmitted(w)
	return w
}

// emitLocked packages the current buffer as a window and resets the buffer. Caller holds
// a.mu.
func (a *Assembler) emitLocked(short bool) *types.Window {
	table := &types.SampleTable{
		Channels:   append([]types.Channel(nil), a.channels...),
		Timestamps: a.timestamps,
		Values:     a.values,
	}

	w := &types.Window{
		LoggerID:        a.loggerID,
		Seq:             a.seq,
		Start:           a.timestamps[0],
		End:             a.timestamps[len(a.timestamps)-1],
		SampleFrequency: a.fs,
		Table:           table,
		Short:           short,
	}

	a.seq++
	a.emitted++
	a.timestamps = nil
	a.values = make([][]float64, len(a.channels))
	return w
}

func (a *Assembler) sameSchemaLocked(table *types.SampleTable) bool {
	if len(table.Channels) != len(a.channels) {
		return false
	}
	for i := range a.channels {
		if table.Channels[i].Name != a.channels[i].Name {
			return false
		}
	}
	return true
}

func channelNames(channels []types.Channel) []string {
	names := make([]string, len(channels))
	for i, c := range channels {
		names[i] = c.Name
	}
	return names
}
