package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Get returns the configuration registered under id.
func (c *Catalog) Get(id string) (*types.LoggerConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, ok := c.configs[id]
	return cfg, ok
}

// Loggers returns all registered configurations in registration order.
func (c *Catalog) Loggers() []*types.LoggerConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*types.LoggerConfig, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.configs[id])
	}
	return out
}

// Len returns the number of registered loggers.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Channels resolves the channel set for a registered logger. Names and units fall back to
// positional placeholders when the configuration leaves them to the file header; the reader
// replaces placeholders with header values once the first file is parsed.
func (c *Catalog) Channels(id string) ([]types.Channel, error) {
	cfg, ok := c.Get(id)
	if !ok {
		return nil, fmt.Errorf("catalog: %w: %s", ErrUnknownLogger, id)
	}

	channels := make([]types.Channel, len(cfg.SelectedColumns))
	for i := range cfg.SelectedColumns {
		name := fmt.Sprintf("C%d", i+1)
		if i < len(cfg.ChannelNames) && cfg.ChannelNames[i] != "" {
			name = cfg.ChannelNames[i]
		}
		unit := ""
		if i < len(cfg.ChannelUnits) {
			unit = cfg.ChannelUnits[i]
		}
		channels[i] = types.Channel{Name: name, Unit: unit, Index: i}
	}
	return channels, nil
}

// ConnectLogger attaches loggers for diagnostics.
func (c *Catalog) ConnectLogger(logger ...types.Logger) {
	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		c.loggers = append(c.loggers, l)
		atomic.AddInt32(&c.loggerCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (c *Catalog) GetComponentMetadata() types.ComponentMetadata {
	c.metadataLock.Lock()
	defer c.metadataLock.Unlock()
	return c.componentMetadata
}

// SetComponentMetadata overrides the component's name and id.
func (c *Catalog) SetComponentMetadata(name string, id string) {
	c.metadataLock.Lock()
	defer c.metadataLock.Unlock()
	c.componentMetadata.Name = name
	c.componentMetadata.ID = id
}
