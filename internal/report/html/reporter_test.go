package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmmcready/cmmcready/internal/scoring"
)

func testBundle() *scoring.Bundle {
	return &scoring.Bundle{
		FrameworkID:   "cmmc-level2",
		FrameworkName: "CMMC 2.0 Level 2",
		AssessmentID:  "a1",
		OrgName:       "Acme Corp",
		Target:        75,
		OverallScore:  52,
		Answered:      12,
		Total:         25,
		DomainScores: []scoring.DomainScore{
			{DomainID: "AC", Domain: "Access Control", Score: 80, Answered: 20, Total: 22, FullyImplemented: 15},
			{DomainID: "IR", Domain: "Incident Response", Score: 25, Answered: 1, Total: 3},
		},
		Distribution: []scoring.StatusBucket{
			{Level: 0, Label: "Not Implemented", Count: 4},
			{Level: 1, Label: "Partially Implemented", Count: 2},
			{Level: 2, Label: "Largely Implemented", Count: 3},
			{Level: 3, Label: "Fully Implemented", Count: 3},
		},
		Gaps: []scoring.Gap{
			{DomainID: "IR", Domain: "Incident Response", Score: 25, Gap: 50, Completion: 33, Severity: scoring.SeverityCritical},
		},
		Recommendations: []scoring.Recommendation{
			{
				Domain:    "Incident Response",
				Priority:  scoring.SeverityCritical,
				Action:    "Document an incident response plan.",
				Effort:    "high",
				Timeframe: "6-12 months",
				Impact:    "+25% improvement",
			},
		},
	}
}

func TestReporterGenerate(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{}
	if err := r.Generate(&buf, testBundle()); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("output missing DOCTYPE")
	}
	for _, want := range []string{
		"CMMC Readiness Report",
		"Acme Corp",
		"Access Control",
		"Incident Response",
		"Fully Implemented",
		"critical",
		"6-12 months",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestReporterGenerateZeroState(t *testing.T) {
	bundle := &scoring.Bundle{
		FrameworkID:   "cmmc-level2",
		FrameworkName: "CMMC 2.0 Level 2",
		Target:        75,
		DomainScores: []scoring.DomainScore{
			{DomainID: "AC", Domain: "Access Control", Total: 22},
		},
	}

	var buf bytes.Buffer
	r := &Reporter{}
	if err := r.Generate(&buf, bundle); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !strings.Contains(buf.String(), "No assessment has been recorded") {
		t.Error("zero-state note missing from output")
	}
}

func TestReporterTruncatesTopGaps(t *testing.T) {
	bundle := testBundle()
	bundle.Gaps = nil
	for i := 0; i < 8; i++ {
		bundle.Gaps = append(bundle.Gaps, scoring.Gap{
			DomainID: "D", Domain: "Domain", Score: 10, Gap: 65 - i, Severity: scoring.SeverityCritical,
		})
	}

	var buf bytes.Buffer
	r := &Reporter{}
	if err := r.Generate(&buf, bundle); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	// The full list still backs the roadmap; the priority view is bounded.
	if len(bundle.Gaps) != 8 {
		t.Fatalf("input gaps mutated: %d", len(bundle.Gaps))
	}
}

func TestScoreClass(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "critical"},
		{49, "critical"},
		{50, "high"},
		{64, "high"},
		{65, "medium"},
		{74, "medium"},
		{75, "low"},
		{100, "low"},
	}
	for _, tt := range tests {
		if got := scoreClass(tt.score); got != tt.want {
			t.Errorf("scoreClass(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
