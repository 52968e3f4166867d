// Package fatigue applies Miner's rule over rainflow histograms with a piecewise S-N
// curve. Segment ordering is an explicit invariant of the curve: segments are sorted
// ascending by transition stress at construction, so range-to-segment matching never
// depends on how the configuration happened to list them. The legacy last-match rule is
// kept selectable for runs that must reproduce historic damage numbers exactly.
package fatigue

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// ErrNoSegments is returned when a curve is built without any segments.
var ErrNoSegments = errors.New("fatigue: S-N curve needs at least one segment")

// SNCurve is a validated piecewise S-N fatigue curve. The zero value is unusable; build
// one with NewSNCurve.
type SNCurve struct {
	ascending []types.SNSegment // Sorted ascending by transition stress.
	original  []types.SNSegment // Configured order, consumed by the legacy rule.
	rule      types.SegmentRule
}

// NewSNCurve validates the segments and fixes their ordering. Every segment needs positive
// A, K, transition cycles and SCF; the ascending transition-stress order the default
// matching rule relies on is established here, once.
func NewSNCurve(segments []types.SNSegment, rule types.SegmentRule) (*SNCurve, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	for i, s := range segments {
		switch {
		case s.A <= 0:
			return nil, fmt.Errorf("fatigue: segment %d: intercept A must be positive, got %v", i, s.A)
		case s.K <= 0:
			return nil, fmt.Errorf("fatigue: segment %d: slope K must be positive, got %v", i, s.K)
		case s.TransitionCycles <= 0:
			return nil, fmt.Errorf("fatigue: segment %d: transition cycles must be positive, got %v", i, s.TransitionCycles)
		case s.SCF <= 0:
			return nil, fmt.Errorf("fatigue: segment %d: stress concentration factor must be positive, got %v", i, s.SCF)
		}
		if math.IsNaN(s.TransitionStress()) {
			return nil, fmt.Errorf("fatigue: segment %d: transition stress is undefined", i)
		}
	}

	original := append([]types.SNSegment(nil), segments...)
	ascending := append([]types.SNSegment(nil), segments...)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].TransitionStress() < ascending[j].TransitionStress()
	})

	return &SNCurve{ascending: ascending, original: original, rule: rule}, nil
}

// Select matches a stress range to its curve segment. Under the default rule this is the
// segment with the smallest transition stress still exceeding the range; a range above
// every transition falls to the final segment.
func (c *SNCurve) Select(stressRange float64) types.SNSegment {
	if c.rule == types.SelectLegacyLastMatch {
		chosen := c.original[len(c.original)-1]
		for _, s := range c.original {
			if s.TransitionStress() > stressRange {
				chosen = s
			}
		}
		return chosen
	}

	for _, s := range c.ascending {
		if s.TransitionStress() > stressRange {
			return s
		}
	}
	return c.ascending[len(c.ascending)-1]
}

// Damage accumulates Miner's-rule damage over a stress-range histogram: for every
// occupied bin, count divided by the cycles to failure at the bin's lower-edge stress.
// Zero-count bins contribute nothing and are skipped.
func (c *SNCurve) Damage(hist *types.Histogram) float64 {
	if hist == nil {
		return 0
	}
	var damage float64
	for i, count := range hist.Counts {
		if count == 0 {
			continue
		}
		stress := hist.LowerEdge(i)
		damage += count / c.Select(stress).CyclesToFailure(stress)
	}
	return damage
}

// Segments returns the curve's segments in ascending transition-stress order.
func (c *SNCurve) Segments() []types.SNSegment {
	return append([]types.SNSegment(nil), c.ascending...)
}

// Rule returns the configured segment matching rule.
func (c *SNCurve) Rule() types.SegmentRule {
	return c.rule
}
