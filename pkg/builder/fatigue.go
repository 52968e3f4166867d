package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/fatigue"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

type SNCurve = fatigue.SNCurve

// NewSNCurve validates the segments and builds a piecewise S-N curve under the given
// segment-selection rule.
func NewSNCurve(segments []types.SNSegment, rule types.SegmentRule) (*fatigue.SNCurve, error) {
	return fatigue.NewSNCurve(segments, rule)
}
