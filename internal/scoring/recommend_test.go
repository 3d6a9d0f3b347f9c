package scoring

import (
	"fmt"
	"testing"
)

func TestRecommendPreservesOrderAndLength(t *testing.T) {
	e := testEngine()

	gaps := []Gap{
		{Domain: "Configuration Management", Score: 40, Gap: 35, Severity: SeverityCritical},
		{Domain: "Awareness and Training", Score: 58, Gap: 17, Severity: SeverityHigh},
		{Domain: "Media Protection", Score: 70, Gap: 5, Severity: SeverityMedium},
	}

	recs := e.Recommend(gaps)

	if len(recs) != len(gaps) {
		t.Fatalf("len(recs) = %d, want %d", len(recs), len(gaps))
	}
	for i := range recs {
		if recs[i].Domain != gaps[i].Domain {
			t.Errorf("recs[%d].Domain = %s, want %s", i, recs[i].Domain, gaps[i].Domain)
		}
		if recs[i].Priority != gaps[i].Severity {
			t.Errorf("recs[%d].Priority = %s, want %s", i, recs[i].Priority, gaps[i].Severity)
		}
		if recs[i].Action == "" {
			t.Errorf("recs[%d].Action is empty", i)
		}
	}
}

func TestRecommendEffortAndTimeframe(t *testing.T) {
	e := testEngine()

	tests := []struct {
		gap           int
		wantEffort    string
		wantTimeframe string
	}{
		{40, "high", "6-12 months"},
		{31, "high", "6-12 months"},
		{30, "medium", "3-6 months"},
		{16, "medium", "3-6 months"},
		{15, "low", "1-3 months"},
		{5, "low", "1-3 months"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("gap_%d", tt.gap), func(t *testing.T) {
			recs := e.Recommend([]Gap{{Domain: "Access Control", Gap: tt.gap, Severity: SeverityHigh}})
			if len(recs) != 1 {
				t.Fatalf("len(recs) = %d, want 1", len(recs))
			}
			if recs[0].Effort != tt.wantEffort {
				t.Errorf("Effort = %s, want %s", recs[0].Effort, tt.wantEffort)
			}
			if recs[0].Timeframe != tt.wantTimeframe {
				t.Errorf("Timeframe = %s, want %s", recs[0].Timeframe, tt.wantTimeframe)
			}
		})
	}
}

func TestRecommendImpactCapped(t *testing.T) {
	e := testEngine()

	tests := []struct {
		gap  int
		want string
	}{
		{10, "+10% improvement"},
		{25, "+25% improvement"},
		{40, "+25% improvement"},
		{75, "+25% improvement"},
	}

	for _, tt := range tests {
		recs := e.Recommend([]Gap{{Domain: "Incident Response", Gap: tt.gap, Severity: SeverityCritical}})
		if recs[0].Impact != tt.want {
			t.Errorf("gap %d: Impact = %q, want %q", tt.gap, recs[0].Impact, tt.want)
		}
	}
}

func TestRecommendUnknownDomainFallsBack(t *testing.T) {
	e := testEngine()

	recs := e.Recommend([]Gap{{Domain: "Quantum Entanglement Hygiene", Gap: 20, Severity: SeverityHigh}})
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	if recs[0].Action != genericAction {
		t.Errorf("Action = %q, want generic fallback", recs[0].Action)
	}
}

func TestRecommendKnownDomainsHaveSpecificActions(t *testing.T) {
	e := testEngine()

	for domain := range remediationActions {
		recs := e.Recommend([]Gap{{Domain: domain, Gap: 20, Severity: SeverityHigh}})
		if recs[0].Action == genericAction {
			t.Errorf("domain %s fell back to the generic action", domain)
		}
	}
}

func TestRecommendEmptyGaps(t *testing.T) {
	e := testEngine()

	if recs := e.Recommend(nil); len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}
