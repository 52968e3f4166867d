// Package monitor implements the screening observer: a registry of callback hooks that
// core components invoke as they work (logger started, file processed, window emitted, bad
// file recorded, run complete). A GUI shell or test registers callbacks to observe progress
// without the core ever depending on a presentation layer. All Invoke methods are safe with
// zero registered callbacks.
package monitor

import (
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

// Monitor provides callback hooks for screening telemetry.
type Monitor struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	OnLoggerStart    []func(types.ComponentMetadata, string, int)
	OnFileProcessed  []func(types.ComponentMetadata, types.ProgressSnapshot)
	OnWindowEmitted  []func(types.ComponentMetadata, *types.Window)
	OnBadFile        []func(types.ComponentMetadata, types.BadFile)
	OnWarning        []func(types.ComponentMetadata, string, string)
	OnLoggerExported []func(types.ComponentMetadata, *types.LoggerResult)
	OnCancel         []func(types.ComponentMetadata, string)
	OnRunComplete    []func(types.ComponentMetadata, types.RunSummary)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	loggerCount  int32
}

// NewMonitor constructs a Monitor with optional configuration.
func NewMonitor(options ...types.Option[types.Monitor]) types.Monitor {
	m := &Monitor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "MONITOR",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}

	return m
}

func snapshotCallbacks[T any](mu *sync.Mutex, callbacks []T) []T {
	mu.Lock()
	out := append([]T(nil), callbacks...)
	mu.Unlock()
	return out
}
