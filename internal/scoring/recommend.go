package scoring

import "fmt"

// Recommendation is a derived remediation suggestion for one gap.
type Recommendation struct {
	// Domain is the display name of the deficient domain.
	Domain string `json:"domain"`
	// Priority mirrors the gap's severity.
	Priority Severity `json:"priority"`
	// Action is the remediation guidance for the domain.
	Action string `json:"action"`
	// Effort estimates the remediation effort: high, medium, or low.
	Effort string `json:"effort"`
	// Timeframe is the expected remediation window.
	Timeframe string `json:"timeframe"`
	// Impact is the projected score improvement, capped conservatively.
	Impact string `json:"impact"`
}

// remediationActions maps each CMMC domain to a one-sentence remediation
// action. Unrecognized domain names fall back to genericAction.
var remediationActions = map[string]string{
	"Access Control":                      "Restrict system and CUI access to authorized users, enforce least privilege, and review account permissions on a fixed schedule.",
	"Awareness and Training":              "Stand up a recurring security awareness program and role-based training for users with CUI or privileged access.",
	"Audit and Accountability":            "Enable audit logging across in-scope systems, centralize log collection, and review logs for anomalous activity.",
	"Configuration Management":            "Establish secure baseline configurations, track changes through a formal change process, and restrict nonessential software.",
	"Identification and Authentication":   "Enforce unique user identification and multi-factor authentication for network and privileged access.",
	"Incident Response":                   "Document an incident response plan, assign response roles, and exercise detection, containment, and recovery procedures.",
	"Maintenance":                         "Control and log system maintenance activity, and sanitize equipment before off-site repair.",
	"Media Protection":                    "Mark, store, and sanitize media containing CUI, and encrypt CUI on removable media and during transport.",
	"Personnel Security":                  "Screen personnel before granting CUI access and revoke access promptly on termination or transfer.",
	"Physical Protection":                 "Limit physical access to systems and facilities, escort visitors, and keep physical access logs.",
	"Risk Assessment":                     "Run periodic risk assessments and vulnerability scans, and remediate findings by risk priority.",
	"Security Assessment":                 "Assess security controls on a recurring cadence and maintain plans of action for identified deficiencies.",
	"System and Communications Protection": "Monitor and protect communications at system boundaries, segment networks, and encrypt CUI in transit.",
	"System and Information Integrity":    "Deploy malware protection, apply security patches promptly, and monitor systems for indicators of attack.",
}

// genericAction is used when a domain has no specific remediation entry.
const genericAction = "Review the domain's unimplemented practices and build out the missing policies, procedures, and technical controls."

// Remediation timeframes by effort band.
const (
	timeframeHigh   = "6-12 months"
	timeframeMedium = "3-6 months"
	timeframeLow    = "1-3 months"
)

// Recommend maps each gap to a remediation recommendation, preserving
// input order (highest-priority gap first). The mapping is pure: it is
// re-derivable from the gap list alone and never fails.
func (e *Engine) Recommend(gaps []Gap) []Recommendation {
	t := e.thresholds

	var recs []Recommendation
	for _, g := range gaps {
		action, ok := remediationActions[g.Domain]
		if !ok {
			action = genericAction
		}

		effort := "low"
		timeframe := timeframeLow
		switch {
		case g.Gap > t.HighEffortGap:
			effort = "high"
			timeframe = timeframeHigh
		case g.Gap > t.MediumEffortGap:
			effort = "medium"
			timeframe = timeframeMedium
		}

		impact := g.Gap
		if impact > t.ImpactCap {
			impact = t.ImpactCap
		}

		recs = append(recs, Recommendation{
			Domain:    g.Domain,
			Priority:  g.Severity,
			Action:    action,
			Effort:    effort,
			Timeframe: timeframe,
			Impact:    fmt.Sprintf("+%d%% improvement", impact),
		})
	}

	return recs
}
