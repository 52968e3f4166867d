// Package catalog implements the logger registry for a screening run. It holds the
// validated LoggerConfig set in registration order, rejects duplicate logger ids before
// any file is read, and resolves each logger's configured channel set for export headers.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

var (
	// ErrDuplicateLogger is returned when a logger id is registered twice.
	ErrDuplicateLogger = errors.New("duplicate logger id")

	// ErrUnknownLogger is returned when a lookup names an unregistered logger id.
	ErrUnknownLogger = errors.New("unknown logger id")
)

// Catalog is the concrete registry behind types.Catalog.
type Catalog struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	mu      sync.Mutex
	order   []string
	configs map[string]*types.LoggerConfig

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32
}

// NewCatalog constructs an empty registry configured with the provided options.
func NewCatalog(options ...types.Option[types.Catalog]) types.Catalog {
	c := &Catalog{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "CATALOG",
		},
		configs: make(map[string]*types.LoggerConfig),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	return c
}

// Register validates and stores a logger configuration. The stored value is a clone, so
// later mutation of the caller's struct cannot change a running catalog.
func (c *Catalog) Register(cfg *types.LoggerConfig) error {
	if cfg == nil {
		return fmt.Errorf("catalog: nil logger configuration")
	}
	if err := validateConfig(cfg); err != nil {
		c.notifyRegisterFailure(cfg.ID, err)
		return err
	}

	c.mu.Lock()
	if _, exists := c.configs[cfg.ID]; exists {
		c.mu.Unlock()
		err := fmt.Errorf("catalog: %w: %s", ErrDuplicateLogger, cfg.ID)
		c.notifyRegisterFailure(cfg.ID, err)
		return err
	}
	stored := cfg.Clone()
	c.configs[stored.ID] = stored
	c.order = append(c.order, stored.ID)
	c.mu.Unlock()

	c.notifyRegistered(stored)
	return nil
}

func validateConfig(cfg *types.LoggerConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("catalog: logger id must not be empty")
	}
	if cfg.WindowSeconds <= 0 {
		return fmt.Errorf("catalog: logger %s: window length must be positive, got %v", cfg.ID, cfg.WindowSeconds)
	}
	if cfg.SampleFrequency < 0 {
		return fmt.Errorf("catalog: logger %s: sample frequency must not be negative, got %v", cfg.ID, cfg.SampleFrequency)
	}
	if len(cfg.SelectedColumns) == 0 {
		return fmt.Errorf("catalog: logger %s: at least one data column must be selected", cfg.ID)
	}
	for i, col := range cfg.SelectedColumns {
		if col < 0 {
			return fmt.Errorf("catalog: logger %s: selected column %d is negative", cfg.ID, i)
		}
	}
	if n := len(cfg.ChannelNames); n != 0 && n != len(cfg.SelectedColumns) {
		return fmt.Errorf("catalog: logger %s: %d channel names for %d selected columns", cfg.ID, n, len(cfg.SelectedColumns))
	}
	if n := len(cfg.ChannelUnits); n != 0 && n != len(cfg.SelectedColumns) {
		return fmt.Errorf("catalog: logger %s: %d channel units for %d selected columns", cfg.ID, n, len(cfg.SelectedColumns))
	}
	if n := len(cfg.UnitConversions); n != 0 && n != len(cfg.SelectedColumns) {
		return fmt.Errorf("catalog: logger %s: %d unit conversions for %d selected columns", cfg.ID, n, len(cfg.SelectedColumns))
	}
	if cfg.Rainflow.Enabled && cfg.Rainflow.BinSize < 0 {
		return fmt.Errorf("catalog: logger %s: rainflow bin size must not be negative", cfg.ID)
	}
	if cfg.Rainflow.Enabled && cfg.Rainflow.BinSize == 0 && cfg.Rainflow.NumBins <= 0 {
		return fmt.Errorf("catalog: logger %s: rainflow needs a bin size or a target bin count", cfg.ID)
	}
	if cfg.Spectral.Enabled && cfg.Spectral.SegmentLength < 0 {
		return fmt.Errorf("catalog: logger %s: spectral segment length must not be negative", cfg.ID)
	}
	if cfg.Spectral.Enabled && cfg.Spectral.Overlap < 0 {
		return fmt.Errorf("catalog: logger %s: spectral overlap must not be negative", cfg.ID)
	}
	if cfg.Fatigue.Enabled && len(cfg.Fatigue.Segments) == 0 {
		return fmt.Errorf("catalog: logger %s: fatigue needs at least one S-N curve segment", cfg.ID)
	}
	if cfg.Fatigue.Enabled && !cfg.Rainflow.Enabled {
		return fmt.Errorf("catalog: logger %s: fatigue damage requires the rainflow reducer", cfg.ID)
	}
	return nil
}
