// MCP server standalone entrypoint.
// This is a convenience binary that only starts the MCP server.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cmmcready/cmmcready/frameworks"
	"github.com/cmmcready/cmmcready/internal/assessment"
	"github.com/cmmcready/cmmcready/internal/framework"
	"github.com/cmmcready/cmmcready/internal/mcpserver"
	"github.com/cmmcready/cmmcready/internal/scoring"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: cmmcready-mcp <assessments.json> [framework_id]")
		os.Exit(1)
	}

	assessmentsPath := os.Args[1]
	frameworkID := "cmmc-level2"
	if len(os.Args) > 2 {
		frameworkID = os.Args[2]
	}

	// Load the framework catalog.
	catalogs, err := framework.LoadFS(frameworks.Embedded)
	if err != nil {
		log.Fatalf("Failed to load framework catalogs: %v", err)
	}
	fw, err := framework.Find(catalogs, frameworkID)
	if err != nil {
		log.Fatalf("Failed to resolve framework: %v", err)
	}

	// Load assessments and compute the metrics bundle.
	store, err := assessment.Load(assessmentsPath)
	if err != nil {
		log.Fatalf("Failed to load assessments: %v", err)
	}

	engine := scoring.NewEngine(scoring.DefaultThresholds())
	bundle, err := engine.Evaluate(fw, store.Assessments)
	if err != nil {
		log.Fatalf("Failed to compute scores: %v", err)
	}

	log.Printf("Scored %s: overall %d%%, %d/%d answered, %d open gaps",
		bundle.FrameworkID, bundle.OverallScore, bundle.Answered, bundle.Total, len(bundle.Gaps))

	data := &mcpserver.ReadinessData{
		Framework: fw,
		Bundle:    bundle,
	}

	mcpSrv := mcpserver.NewMCPServer(data)

	log.Println("Starting MCP server on stdio...")
	if err := server.ServeStdio(mcpSrv); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
