// Package csv generates CSV readiness reports.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cmmcready/cmmcready/internal/report"
	"github.com/cmmcready/cmmcready/internal/scoring"
)

func init() {
	report.Register("csv", func() report.Reporter { return &Reporter{} })
}

// Reporter generates CSV reports.
type Reporter struct{}

// columns defines the CSV header row. Each row is one domain; gap and
// remediation columns are empty for domains at or above the target.
var columns = []string{
	"DomainID", "Domain", "Score", "Answered", "Total", "FullyImplemented",
	"Gap", "Severity", "Effort", "Timeframe", "Action",
}

// Generate writes a CSV report to the given writer. Domains appear in
// framework section order, matching the dashboard.
func (r *Reporter) Generate(w io.Writer, bundle *scoring.Bundle) error {
	// Index gaps and recommendations by domain for the per-domain rows.
	gapsByDomain := make(map[string]scoring.Gap, len(bundle.Gaps))
	for _, g := range bundle.Gaps {
		gapsByDomain[g.Domain] = g
	}
	recsByDomain := make(map[string]scoring.Recommendation, len(bundle.Recommendations))
	for _, rec := range bundle.Recommendations {
		recsByDomain[rec.Domain] = rec
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, ds := range bundle.DomainScores {
		row := []string{
			ds.DomainID,
			ds.Domain,
			strconv.Itoa(ds.Score),
			strconv.Itoa(ds.Answered),
			strconv.Itoa(ds.Total),
			strconv.Itoa(ds.FullyImplemented),
			"", "", "", "", "",
		}
		if g, ok := gapsByDomain[ds.Domain]; ok {
			row[6] = strconv.Itoa(g.Gap)
			row[7] = string(g.Severity)
		}
		if rec, ok := recsByDomain[ds.Domain]; ok {
			row[8] = rec.Effort
			row[9] = rec.Timeframe
			row[10] = rec.Action
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	return nil
}
