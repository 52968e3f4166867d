package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/config"
)

type Control = config.Control

// LoadControl reads, defaults, and validates the control file at path.
func LoadControl(path string) (*config.Control, error) {
	return config.Load(path)
}
