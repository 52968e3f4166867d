package types

import "math"

// SNSegment is one piece of a piecewise S-N fatigue curve: N = A * (SCF*S)^(-K), valid for
// stress ranges below the segment's transition stress.
type SNSegment struct {
	A                float64 // Intercept parameter of the segment.
	K                float64 // Negative inverse slope in log-log space.
	TransitionCycles float64 // Cycle count at which this segment hands over to the next.
	SCF              float64 // Stress concentration factor applied to the range.
}

// TransitionStress returns the stress range at the segment's transition cycle count,
// (A / TransitionCycles)^(1/K). Ranges below it belong to this segment or a shallower one.
func (s SNSegment) TransitionStress() float64 {
	if s.K == 0 || s.TransitionCycles <= 0 {
		return math.NaN()
	}
	return math.Pow(s.A/s.TransitionCycles, 1/s.K)
}

// CyclesToFailure returns N for the given stress range on this segment.
func (s SNSegment) CyclesToFailure(stressRange float64) float64 {
	return s.A * math.Pow(s.SCF*stressRange, -s.K)
}

// SegmentRule selects how a stress range is matched to a curve segment when more than one
// segment's transition stress exceeds it. The legacy implementation's loop-overwrite made
// "highest-indexed match wins" the effective rule; whether that was intended engineering is
// unresolved, so both rules are kept selectable rather than guessing.
type SegmentRule int

const (
	// SelectSmallestExceeding picks the segment with the smallest transition stress that
	// still exceeds the range (ascending-order first match). On curves listed steepest
	// first this coincides with the legacy result while making the ordering explicit.
	SelectSmallestExceeding SegmentRule = iota
	// SelectLegacyLastMatch walks the segments in their configured order and keeps the
	// last whose transition stress exceeds the range, reproducing the legacy overwrite
	// semantics exactly, ties and all.
	SelectLegacyLastMatch
)
