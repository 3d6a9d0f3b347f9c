package scoring

// Thresholds holds the fixed business rules that drive scoring and gap
// classification. The numeric breakpoints are policy choices, not derived
// constants, so they are carried as configuration rather than literals.
type Thresholds struct {
	// PointsPerLevel converts a 0-3 maturity level to a percentage.
	PointsPerLevel int
	// Target is the readiness bar a domain score is measured against.
	Target int
	// CriticalBelow, HighBelow, MediumBelow are the severity breakpoints:
	// score < CriticalBelow is critical, < HighBelow is high,
	// < MediumBelow is medium, anything at or above is low.
	CriticalBelow int
	HighBelow     int
	MediumBelow   int
	// HighEffortGap and MediumEffortGap are the gap magnitudes above
	// which remediation effort is estimated as high or medium.
	HighEffortGap   int
	MediumEffortGap int
	// ImpactCap bounds the projected improvement quoted per
	// recommendation, a deliberately conservative estimate.
	ImpactCap int
}

// DefaultThresholds returns the standard CMMC-readiness rule set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PointsPerLevel:  25,
		Target:          75,
		CriticalBelow:   50,
		HighBelow:       65,
		MediumBelow:     75,
		HighEffortGap:   30,
		MediumEffortGap: 15,
		ImpactCap:       25,
	}
}
