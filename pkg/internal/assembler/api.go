package assembler

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Buffered returns the number of rows currently held in the partial buffer.
func (a *Assembler) Buffered() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.timestamps)
}

// TargetLength returns the configured window length in samples.
func (a *Assembler) TargetLength() int {
	return a.target
}

// WindowsEmitted returns the number of windows emitted so far, Flush included.
func (a *Assembler) WindowsEmitted() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.emitted
}

// SetLoggerID assigns the logger id stamped onto emitted windows.
func (a *Assembler) SetLoggerID(id string) {
	a.loggerID = id
}

// SetTargetLength assigns the window length in samples.
func (a *Assembler) SetTargetLength(n int) {
	a.target = n
}

// SetSampleFrequency assigns the sampling frequency stamped onto emitted windows.
func (a *Assembler) SetSampleFrequency(fs float64) {
	a.fs = fs
}

// ConnectLogger attaches loggers for diagnostics.
func (a *Assembler) ConnectLogger(logger ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		a.loggers = append(a.loggers, l)
		atomic.AddInt32(&a.loggerCount, 1)
	}
}

// ConnectMonitor attaches monitors observing window emission.
func (a *Assembler) ConnectMonitor(monitor ...types.Monitor) {
	a.monitorLock.Lock()
	defer a.monitorLock.Unlock()
	for _, m := range monitor {
		if m == nil {
			continue
		}
		a.monitors = append(a.monitors, m)
		atomic.AddInt32(&a.mntrCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (a *Assembler) GetComponentMetadata() types.ComponentMetadata {
	a.metadataLock.Lock()
	defer a.metadataLock.Unlock()
	return a.componentMetadata
}
