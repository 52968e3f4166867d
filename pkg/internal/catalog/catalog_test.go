package catalog_test

import (
	"errors"
	"testing"

	"github.com/moorings-io/fathom/pkg/internal/catalog"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

func validConfig(id string) *types.LoggerConfig {
	return &types.LoggerConfig{
		ID:              id,
		Name:            "Test Logger",
		Extension:       ".csv",
		TimeColumn:      0,
		SelectedColumns: []int{1, 2},
		ChannelNames:    []string{"AccX", "AccY"},
		ChannelUnits:    []string{"m/s^2", "m/s^2"},
		SampleFrequency: 20,
		WindowSeconds:   600,
		Statistics:      true,
	}
}

func TestRegisterAndGet(t *testing.T) {
	cat := catalog.NewCatalog()

	if err := cat.Register(validConfig("lg-01")); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := cat.Register(validConfig("lg-02")); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if got := cat.Len(); got != 2 {
		t.Fatalf("expected 2 loggers, got %d", got)
	}

	cfg, ok := cat.Get("lg-01")
	if !ok {
		t.Fatalf("expected lg-01 to be registered")
	}
	if cfg.Name != "Test Logger" {
		t.Errorf("unexpected name %q", cfg.Name)
	}

	ids := make([]string, 0, 2)
	for _, c := range cat.Loggers() {
		ids = append(ids, c.ID)
	}
	if ids[0] != "lg-01" || ids[1] != "lg-02" {
		t.Errorf("expected registration order preserved, got %v", ids)
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	cat := catalog.NewCatalog()

	if err := cat.Register(validConfig("lg-01")); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	err := cat.Register(validConfig("lg-01"))
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if !errors.Is(err, catalog.ErrDuplicateLogger) {
		t.Errorf("expected ErrDuplicateLogger, got %v", err)
	}
	if got := cat.Len(); got != 1 {
		t.Errorf("expected registry unchanged after duplicate, got %d entries", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.LoggerConfig)
	}{
		{"empty id", func(c *types.LoggerConfig) { c.ID = "" }},
		{"zero window", func(c *types.LoggerConfig) { c.WindowSeconds = 0 }},
		{"negative frequency", func(c *types.LoggerConfig) { c.SampleFrequency = -1 }},
		{"no columns", func(c *types.LoggerConfig) { c.SelectedColumns = nil }},
		{"negative column", func(c *types.LoggerConfig) { c.SelectedColumns = []int{-1} }},
		{"name count mismatch", func(c *types.LoggerConfig) { c.ChannelNames = []string{"only-one"} }},
		{"rainflow without sizing", func(c *types.LoggerConfig) {
			c.Rainflow = types.RainflowSettings{Enabled: true}
		}},
		{"fatigue without segments", func(c *types.LoggerConfig) {
			c.Rainflow = types.RainflowSettings{Enabled: true, BinSize: 1}
			c.Fatigue = types.FatigueSettings{Enabled: true}
		}},
		{"fatigue without rainflow", func(c *types.LoggerConfig) {
			c.Fatigue = types.FatigueSettings{
				Enabled:  true,
				Segments: []types.SNSegment{{A: 1e12, K: 3, TransitionCycles: 1e7, SCF: 1}},
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig("lg-01")
			tc.mutate(cfg)
			if err := catalog.NewCatalog().Register(cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestRegisterStoresClone(t *testing.T) {
	cat := catalog.NewCatalog()
	cfg := validConfig("lg-01")
	if err := cat.Register(cfg); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	cfg.ChannelNames[0] = "mutated"
	stored, _ := cat.Get("lg-01")
	if stored.ChannelNames[0] != "AccX" {
		t.Errorf("expected stored config to be isolated from caller mutation")
	}
}

func TestChannels(t *testing.T) {
	cat := catalog.NewCatalog()
	if err := cat.Register(validConfig("lg-01")); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	channels, err := cat.Channels("lg-01")
	if err != nil {
		t.Fatalf("Channels error: %v", err)
	}
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}
	if channels[0].Name != "AccX" || channels[0].Unit != "m/s^2" || channels[0].Index != 0 {
		t.Errorf("unexpected channel 0: %+v", channels[0])
	}

	if _, err := cat.Channels("missing"); !errors.Is(err, catalog.ErrUnknownLogger) {
		t.Errorf("expected ErrUnknownLogger, got %v", err)
	}
}

func TestChannelsPlaceholderNames(t *testing.T) {
	cat := catalog.NewCatalog()
	cfg := validConfig("lg-01")
	cfg.ChannelNames = nil
	cfg.ChannelUnits = nil
	if err := cat.Register(cfg); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	channels, err := cat.Channels("lg-01")
	if err != nil {
		t.Fatalf("Channels error: %v", err)
	}
	if channels[0].Name != "C1" || channels[1].Name != "C2" {
		t.Errorf("expected placeholder names C1/C2, got %q/%q", channels[0].Name, channels[1].Name)
	}
}
