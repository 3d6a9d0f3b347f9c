// Package json generates JSON readiness reports.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cmmcready/cmmcready/internal/report"
	"github.com/cmmcready/cmmcready/internal/scoring"
)

func init() {
	report.Register("json", func() report.Reporter { return &Reporter{} })
}

// Report is the top-level JSON report structure.
type Report struct {
	Title       string          `json:"title"`
	GeneratedAt string          `json:"generated_at"`
	Metrics     *scoring.Bundle `json:"metrics"`
}

// Reporter generates JSON reports.
type Reporter struct{}

// Generate writes a JSON report to the given writer.
func (r *Reporter) Generate(w io.Writer, bundle *scoring.Bundle) error {
	rep := Report{
		Title:       "CMMC Readiness Report",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Metrics:     bundle,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}
