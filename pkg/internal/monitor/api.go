package monitor

import (
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// ConnectLogger attaches loggers for diagnostics.
func (m *Monitor) ConnectLogger(logger ...types.Logger) {
	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		m.loggers = append(m.loggers, l)
		atomic.AddInt32(&m.loggerCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (m *Monitor) GetComponentMetadata() types.ComponentMetadata {
	m.metadataLock.Lock()
	defer m.metadataLock.Unlock()
	return m.componentMetadata
}

// SetComponentMetadata overrides the component's name and id.
func (m *Monitor) SetComponentMetadata(name string, id string) {
	m.metadataLock.Lock()
	old := m.componentMetadata
	m.componentMetadata.Name = name
	m.componentMetadata.ID = id
	updated := m.componentMetadata
	m.metadataLock.Unlock()

	m.NotifyLoggers(types.DebugLevel, "Component metadata updated",
		"component", updated,
		"event", "SetComponentMetadata",
		"result", "SUCCESS",
		"old", old,
	)
}
