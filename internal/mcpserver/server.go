// Package mcpserver implements the MCP server for AI-assisted readiness
// analysis.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cmmcready/cmmcready/internal/framework"
	"github.com/cmmcready/cmmcready/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxInputLength caps generic string input length for MCP parameters.
const maxInputLength = 256

// ReadinessData holds the computed metrics and framework catalog for MCP
// tool queries. Tools read it; nothing mutates it after construction.
type ReadinessData struct {
	Framework *framework.Framework
	Bundle    *scoring.Bundle
}

// NewMCPServer creates a new MCP server with all readiness tools
// registered.
func NewMCPServer(data *ReadinessData) *server.MCPServer {
	s := server.NewMCPServer(
		"cmmcready",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	registerTools(s, data)
	registerResources(s, data)

	return s
}

func registerTools(s *server.MCPServer, data *ReadinessData) {
	// get_summary: Overall readiness metrics.
	s.AddTool(
		mcp.NewTool("get_summary",
			mcp.WithDescription("Get the overall readiness summary: overall score, target, answered counts, and implementation-status distribution."),
		),
		getSummaryHandler(data),
	)

	// list_domain_scores: Per-domain scores.
	s.AddTool(
		mcp.NewTool("list_domain_scores",
			mcp.WithDescription("List per-domain readiness scores with answered and fully-implemented counts."),
		),
		listDomainScoresHandler(data),
	)

	// get_domain: One domain's score, gap, and recommendation.
	s.AddTool(
		mcp.NewTool("get_domain",
			mcp.WithDescription("Get detailed readiness information for one domain by name or short code (e.g. Access Control, AC)."),
			mcp.WithString("domain",
				mcp.Required(),
				mcp.Description("Domain display name or short code"),
			),
		),
		getDomainHandler(data),
	)

	// list_gaps: Ranked gap list.
	s.AddTool(
		mcp.NewTool("list_gaps",
			mcp.WithDescription("List domains below the readiness target, ranked by gap size. Optionally filter by severity."),
			mcp.WithString("severity",
				mcp.Description("Filter by severity: critical, high, medium, low"),
			),
		),
		listGapsHandler(data),
	)

	// list_recommendations: Remediation roadmap.
	s.AddTool(
		mcp.NewTool("list_recommendations",
			mcp.WithDescription("List remediation recommendations in priority order, with effort, timeframe, and projected impact."),
		),
		listRecommendationsHandler(data),
	)

	// list_controls: Framework catalog.
	s.AddTool(
		mcp.NewTool("list_controls",
			mcp.WithDescription("List the framework's controls with their domain and title. Optionally filter by domain code."),
			mcp.WithString("domain",
				mcp.Description("Filter by domain short code (e.g. AC, IR)"),
			),
		),
		listControlsHandler(data),
	)
}

func registerResources(s *server.MCPServer, data *ReadinessData) {
	// Readiness summary resource.
	s.AddResource(
		mcp.NewResource(
			"cmmcready://summary",
			"Readiness Summary",
			mcp.WithResourceDescription("Overall CMMC readiness metrics bundle"),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			bundleJSON, _ := json.MarshalIndent(data.Bundle, "", "  ")
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      "cmmcready://summary",
					MIMEType: "application/json",
					Text:     string(bundleJSON),
				},
			}, nil
		},
	)
}

// --- Tool Handlers ---

func getSummaryHandler(data *ReadinessData) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary := map[string]interface{}{
			"framework_id":   data.Bundle.FrameworkID,
			"framework_name": data.Bundle.FrameworkName,
			"assessment_id":  data.Bundle.AssessmentID,
			"org_name":       data.Bundle.OrgName,
			"completed":      data.Bundle.Completed,
			"overall_score":  data.Bundle.OverallScore,
			"target":         data.Bundle.Target,
			"answered":       data.Bundle.Answered,
			"total":          data.Bundle.Total,
			"open_gaps":      len(data.Bundle.Gaps),
			"distribution":   data.Bundle.Distribution,
		}
		result, _ := json.MarshalIndent(summary, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}
}

func listDomainScoresHandler(data *ReadinessData) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, _ := json.MarshalIndent(map[string]interface{}{
			"count":   len(data.Bundle.DomainScores),
			"domains": data.Bundle.DomainScores,
		}, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}
}

func getDomainHandler(data *ReadinessData) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		domain, err := req.RequireString("domain")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(domain) > maxInputLength {
			return mcp.NewToolResultError("domain exceeds maximum length"), nil
		}

		for _, ds := range data.Bundle.DomainScores {
			if !strings.EqualFold(ds.Domain, domain) && !strings.EqualFold(ds.DomainID, domain) {
				continue
			}

			detail := map[string]interface{}{
				"score": ds,
			}
			for _, g := range data.Bundle.Gaps {
				if g.Domain == ds.Domain {
					detail["gap"] = g
					break
				}
			}
			for _, rec := range data.Bundle.Recommendations {
				if rec.Domain == ds.Domain {
					detail["recommendation"] = rec
					break
				}
			}

			result, _ := json.MarshalIndent(detail, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}

		return mcp.NewToolResultError(fmt.Sprintf("domain %q not found", domain)), nil
	}
}

func listGapsHandler(data *ReadinessData) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		severity := strings.ToLower(strings.TrimSpace(req.GetString("severity", "")))

		if severity != "" && !scoring.ValidSeverities[scoring.Severity(severity)] {
			return mcp.NewToolResultError(
				fmt.Sprintf("invalid severity %q; allowed values: critical, high, medium, low", severity),
			), nil
		}

		var filtered []scoring.Gap
		for _, g := range data.Bundle.Gaps {
			if severity != "" && string(g.Severity) != severity {
				continue
			}
			filtered = append(filtered, g)
		}

		result, _ := json.MarshalIndent(map[string]interface{}{
			"count": len(filtered),
			"gaps":  filtered,
		}, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}
}

func listRecommendationsHandler(data *ReadinessData) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, _ := json.MarshalIndent(map[string]interface{}{
			"count":           len(data.Bundle.Recommendations),
			"recommendations": data.Bundle.Recommendations,
		}, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}
}

func listControlsHandler(data *ReadinessData) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		domain := strings.TrimSpace(req.GetString("domain", ""))
		if len(domain) > maxInputLength {
			return mcp.NewToolResultError("domain exceeds maximum length"), nil
		}

		type controlEntry struct {
			ControlID string `json:"control_id"`
			Title     string `json:"title"`
			DomainID  string `json:"domain_id"`
			Domain    string `json:"domain"`
		}

		var controls []controlEntry
		for i := range data.Framework.Sections {
			sec := &data.Framework.Sections[i]
			if domain != "" && !strings.EqualFold(sec.ID, domain) {
				continue
			}
			for _, q := range sec.Questions() {
				controls = append(controls, controlEntry{
					ControlID: q.ControlID,
					Title:     q.Title,
					DomainID:  sec.ID,
					Domain:    sec.Name,
				})
			}
		}

		if domain != "" && len(controls) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("domain %q not found in framework %s", domain, data.Framework.ID)), nil
		}

		result, _ := json.MarshalIndent(map[string]interface{}{
			"framework": data.Framework.ID,
			"count":     len(controls),
			"controls":  controls,
		}, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}
}
