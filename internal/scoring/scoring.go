// Package scoring implements the compliance scoring engine: response
// normalization, per-domain aggregation, implementation-status
// distribution, gap analysis, and remediation recommendations. Every
// component is a pure transformation over read-only input; the engine
// holds no mutable state between calls.
package scoring

import (
	"fmt"
	"math"

	"github.com/cmmcready/cmmcready/internal/framework"
)

// Maturity level bounds. 0 = not implemented, 3 = fully implemented.
const (
	LevelMin = 0
	LevelMax = 3
)

// statusLabels names the implementation-status bucket for each level.
var statusLabels = [...]string{
	"Not Implemented",
	"Partially Implemented",
	"Largely Implemented",
	"Fully Implemented",
}

// StatusLabel returns the implementation-status label for a valid level.
func StatusLabel(level int) string {
	if level < LevelMin || level > LevelMax {
		return "Unknown"
	}
	return statusLabels[level]
}

// InvalidLevelError indicates a response's maturity level is outside the
// valid range. It is surfaced to the caller, never silently coerced.
type InvalidLevelError struct {
	ControlID string
	Level     int
}

func (e *InvalidLevelError) Error() string {
	if e.ControlID == "" {
		return fmt.Sprintf("maturity level %d out of range [%d,%d]", e.Level, LevelMin, LevelMax)
	}
	return fmt.Sprintf("control %s: maturity level %d out of range [%d,%d]", e.ControlID, e.Level, LevelMin, LevelMax)
}

// Engine computes scoring metrics under a fixed set of thresholds.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(t Thresholds) *Engine {
	return &Engine{thresholds: t}
}

// Thresholds returns the engine's rule set.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Normalize converts a maturity level to an integer percentage
// (level x PointsPerLevel). Out-of-range levels are rejected.
func (e *Engine) Normalize(level int) (int, error) {
	if level < LevelMin || level > LevelMax {
		return 0, &InvalidLevelError{Level: level}
	}
	return level * e.thresholds.PointsPerLevel, nil
}

// DomainScore is the derived per-domain aggregate. It is recomputed on
// demand and never persisted.
type DomainScore struct {
	// DomainID is the short domain code (e.g. "AC").
	DomainID string `json:"domain_id"`
	// Domain is the display name (e.g. "Access Control").
	Domain string `json:"domain"`
	// Score is the normalized domain score, an integer in [0,100].
	Score int `json:"score"`
	// Answered and Total count responded vs. defined questions.
	Answered int `json:"answered"`
	Total    int `json:"total"`
	// FullyImplemented counts level-3 responses in this domain.
	FullyImplemented int `json:"fully_implemented"`
}

// ScoreSection averages the normalized responses for one framework
// section. A section with zero responses scores 0 by policy, not by
// accident. Unanswered questions are excluded from the average, never
// defaulted to zero.
func (e *Engine) ScoreSection(sec *framework.Section, responses map[string]int) (DomainScore, error) {
	questions := sec.Questions()
	ds := DomainScore{
		DomainID: sec.ID,
		Domain:   sec.Name,
		Total:    len(questions),
	}

	sum := 0
	for _, q := range questions {
		level, ok := responses[q.ControlID]
		if !ok {
			continue
		}
		pct, err := e.Normalize(level)
		if err != nil {
			return DomainScore{}, &InvalidLevelError{ControlID: q.ControlID, Level: level}
		}
		sum += pct
		ds.Answered++
		if level == LevelMax {
			ds.FullyImplemented++
		}
	}

	if ds.Answered > 0 {
		ds.Score = roundRatio(sum, ds.Answered)
	}
	return ds, nil
}

// StatusBucket is one entry of the implementation-status distribution.
type StatusBucket struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution tallies the present responses into the four status
// buckets, in level order 0-3. Counts are raw tallies with no
// normalization; the bucket total equals the number of present
// responses. All four buckets are always returned, zero counts included.
func (e *Engine) Distribution(responses map[string]int) ([]StatusBucket, error) {
	buckets := make([]StatusBucket, LevelMax-LevelMin+1)
	for level := LevelMin; level <= LevelMax; level++ {
		buckets[level] = StatusBucket{Level: level, Label: statusLabels[level]}
	}

	for controlID, level := range responses {
		if level < LevelMin || level > LevelMax {
			return nil, &InvalidLevelError{ControlID: controlID, Level: level}
		}
		buckets[level].Count++
	}

	return buckets, nil
}

// roundRatio returns sum/count rounded half up to the nearest integer.
func roundRatio(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}
