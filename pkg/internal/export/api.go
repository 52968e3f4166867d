package export

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Root returns the output root directory.
func (x *Writer) Root() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.root
}

// SetRoot assigns the output root directory.
func (x *Writer) SetRoot(dir string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.root = dir
	x.prepared = false
}

// SetFormats selects the enabled output serializations. Formats accumulate across calls.
func (x *Writer) SetFormats(formats ...types.OutputFormat) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, f := range formats {
		x.formats[f] = true
	}
	x.prepared = false
}

// SetCompress toggles zstd compression of delimited text outputs.
func (x *Writer) SetCompress(enabled bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.compress = enabled
}

// ConnectLogger attaches loggers for diagnostics.
func (x *Writer) ConnectLogger(logger ...types.Logger) {
	x.loggersLock.Lock()
	defer x.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		x.loggers = append(x.loggers, l)
		atomic.AddInt32(&x.loggerCount, 1)
	}
}

// ConnectMonitor attaches monitors observing export progress.
func (x *Writer) ConnectMonitor(monitor ...types.Monitor) {
	x.monitorLock.Lock()
	defer x.monitorLock.Unlock()
	for _, m := range monitor {
		if m == nil {
			continue
		}
		x.monitors = append(x.monitors, m)
		atomic.AddInt32(&x.mntrCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (x *Writer) GetComponentMetadata() types.ComponentMetadata {
	x.metadataLock.Lock()
	defer x.metadataLock.Unlock()
	return x.componentMetadata
}
