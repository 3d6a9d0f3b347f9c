package scoring

import "sort"

// Severity classifies how far a domain falls short of the readiness
// target.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityOrder returns a numeric priority for sorting (lower = more
// severe).
func SeverityOrder(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// ValidSeverities lists the accepted severity filter values.
var ValidSeverities = map[Severity]bool{
	SeverityCritical: true,
	SeverityHigh:     true,
	SeverityMedium:   true,
	SeverityLow:      true,
}

// Gap is a derived shortfall between a domain's score and the readiness
// target.
type Gap struct {
	// DomainID is the short domain code.
	DomainID string `json:"domain_id"`
	// Domain is the display name.
	Domain string `json:"domain"`
	// Score is the domain's current score.
	Score int `json:"score"`
	// Gap is target minus score, floored at zero.
	Gap int `json:"gap"`
	// Completion is the answered-question percentage for the domain.
	Completion int `json:"completion"`
	// Severity classifies the shortfall.
	Severity Severity `json:"severity"`
}

// Classify maps a domain score onto a severity using the engine's
// breakpoints.
func (e *Engine) Classify(score int) Severity {
	t := e.thresholds
	switch {
	case score < t.CriticalBelow:
		return SeverityCritical
	case score < t.HighBelow:
		return SeverityHigh
	case score < t.MediumBelow:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// AnalyzeGaps derives the ranked gap list from the domain scores.
// Domains at or above the target are excluded. The result is ordered by
// descending gap; the sort is stable, so ties keep the original section
// order. The full ranked list is returned; truncation to a top-N is a
// presentation concern of the caller.
func (e *Engine) AnalyzeGaps(scores []DomainScore) []Gap {
	var gaps []Gap
	for _, ds := range scores {
		g := e.thresholds.Target - ds.Score
		if g <= 0 {
			continue
		}
		completion := 0
		if ds.Total > 0 {
			completion = roundRatio(ds.Answered*100, ds.Total)
		}
		gaps = append(gaps, Gap{
			DomainID:   ds.DomainID,
			Domain:     ds.Domain,
			Score:      ds.Score,
			Gap:        g,
			Completion: completion,
			Severity:   e.Classify(ds.Score),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Gap > gaps[j].Gap
	})

	return gaps
}
