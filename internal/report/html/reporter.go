// Package html generates self-contained HTML readiness reports.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/cmmcready/cmmcready/internal/report"
	"github.com/cmmcready/cmmcready/internal/scoring"
)

func init() {
	report.Register("html", func() report.Reporter { return &Reporter{} })
}

//go:embed templates/*.html
var templateFS embed.FS

// topGapCount bounds the "priority gaps" view; the full ranked list
// still appears in the roadmap table.
const topGapCount = 5

// ReportData contains all data passed to the HTML template.
type ReportData struct {
	Title       string
	GeneratedAt string
	Bundle      *scoring.Bundle
	TopGaps     []scoring.Gap
}

// Reporter generates HTML reports.
type Reporter struct{}

// Generate writes an HTML report to the given writer.
func (r *Reporter) Generate(w io.Writer, bundle *scoring.Bundle) error {
	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"severityClass": severityClass,
		"scoreClass":    scoreClass,
	}).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	topGaps := bundle.Gaps
	if len(topGaps) > topGapCount {
		topGaps = topGaps[:topGapCount]
	}

	data := ReportData{
		Title:       "CMMC Readiness Report",
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Bundle:      bundle,
		TopGaps:     topGaps,
	}

	return tmpl.Execute(w, data)
}

func severityClass(s scoring.Severity) string {
	switch s {
	case scoring.SeverityCritical:
		return "critical"
	case scoring.SeverityHigh:
		return "high"
	case scoring.SeverityMedium:
		return "medium"
	case scoring.SeverityLow:
		return "low"
	default:
		return "unknown"
	}
}

// scoreClass maps a 0-100 score onto the same bands the gap analyzer
// uses, for coloring score cells.
func scoreClass(score int) string {
	switch {
	case score < 50:
		return "critical"
	case score < 65:
		return "high"
	case score < 75:
		return "medium"
	default:
		return "low"
	}
}
