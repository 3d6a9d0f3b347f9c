package scoring

import (
	"time"

	"github.com/cmmcready/cmmcready/internal/assessment"
	"github.com/cmmcready/cmmcready/internal/framework"
)

// Bundle is the metrics bundle exposed to report, export, and MCP
// consumers. It is a value recomputed on every evaluation; consumers
// read it, they never mutate it.
type Bundle struct {
	FrameworkID   string `json:"framework_id"`
	FrameworkName string `json:"framework_name"`
	// AssessmentID and OrgName identify the active assessment; both are
	// empty in the zero-state bundle.
	AssessmentID     string `json:"assessment_id,omitempty"`
	OrgName          string `json:"org_name,omitempty"`
	Completed        bool   `json:"completed"`
	TimeSpentMinutes int    `json:"time_spent_minutes,omitempty"`
	// Target is the readiness bar the gaps are measured against.
	Target int `json:"target"`
	// OverallScore is the mean of the domain scores, rounded, in [0,100].
	OverallScore int `json:"overall_score"`
	// Answered and Total count responses across the whole framework.
	Answered int `json:"answered"`
	Total    int `json:"total"`

	DomainScores    []DomainScore    `json:"domain_scores"`
	Distribution    []StatusBucket   `json:"distribution"`
	Gaps            []Gap            `json:"gaps"`
	Recommendations []Recommendation `json:"recommendations"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Evaluate runs the full scoring pipeline: select the active assessment
// for the framework, score every section, tally the status distribution,
// rank the gaps, and derive recommendations. With no selectable
// assessment it returns the documented zero-state bundle (score 0,
// zero-count buckets, no gaps, no recommendations) rather than an error.
func (e *Engine) Evaluate(fw *framework.Framework, records []assessment.Record) (*Bundle, error) {
	b := &Bundle{
		FrameworkID:   fw.ID,
		FrameworkName: fw.Name,
		Target:        e.thresholds.Target,
		GeneratedAt:   time.Now().UTC(),
	}

	active, ok := assessment.SelectActive(records, fw.ID)
	if !ok {
		return e.zeroState(fw, b), nil
	}

	b.AssessmentID = active.ID
	b.OrgName = active.OrgName
	b.Completed = active.Completed
	b.TimeSpentMinutes = active.TimeSpentMinutes

	scoreSum := 0
	for i := range fw.Sections {
		ds, err := e.ScoreSection(&fw.Sections[i], active.Responses)
		if err != nil {
			return nil, err
		}
		b.DomainScores = append(b.DomainScores, ds)
		b.Answered += ds.Answered
		b.Total += ds.Total
		scoreSum += ds.Score
	}
	b.OverallScore = roundRatio(scoreSum, len(fw.Sections))

	dist, err := e.Distribution(active.Responses)
	if err != nil {
		return nil, err
	}
	b.Distribution = dist

	b.Gaps = e.AnalyzeGaps(b.DomainScores)
	b.Recommendations = e.Recommend(b.Gaps)

	return b, nil
}

// zeroState fills the bundle with the documented no-assessment fallback:
// zero-valued domain scores with their question totals, four zero-count
// status buckets, and empty gap and recommendation lists.
func (e *Engine) zeroState(fw *framework.Framework, b *Bundle) *Bundle {
	for i := range fw.Sections {
		sec := &fw.Sections[i]
		questions := sec.Questions()
		b.DomainScores = append(b.DomainScores, DomainScore{
			DomainID: sec.ID,
			Domain:   sec.Name,
			Total:    len(questions),
		})
		b.Total += len(questions)
	}
	b.Distribution, _ = e.Distribution(nil)
	return b
}
