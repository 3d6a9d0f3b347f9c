// cmmcready - CMMC 2.0 readiness assessment and gap analysis.
//
// Main CLI entrypoint. Provides commands for recording assessment
// responses, computing readiness scores, generating reports, and
// exposing the metrics via MCP.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cmmcready/cmmcready/frameworks"
	"github.com/cmmcready/cmmcready/internal/assessment"
	"github.com/cmmcready/cmmcready/internal/framework"
	"github.com/cmmcready/cmmcready/internal/mcpserver"
	"github.com/cmmcready/cmmcready/internal/report"
	"github.com/cmmcready/cmmcready/internal/scoring"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cmmcready",
		Short: "cmmcready - CMMC 2.0 readiness assessment and gap analysis",
		Long: `cmmcready tracks self-assessed CMMC 2.0 maturity and computes readiness
scores, gap rankings, and remediation recommendations from them.

Assessments are stored in a local JSON file. Defaults can be set via
environment variables:
  CMMC_ASSESSMENTS - Path to the assessments file (default assessments.json)
  CMMC_FRAMEWORK   - Framework ID to score against (default cmmc-level2)`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newReportCmd(),
		newNewCmd(),
		newAnswerCmd(),
		newFrameworksCmd(),
		newControlsCmd(),
		newMCPCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// --- Helper Functions ---

func envOrFlag(cmd *cobra.Command, flag, env string) string {
	val, _ := cmd.Flags().GetString(flag)
	if val != "" {
		return val
	}
	return os.Getenv(env)
}

// assessmentsPath returns the assessments file path from flag or env.
func assessmentsPath(cmd *cobra.Command) string {
	if path := envOrFlag(cmd, "assessments", "CMMC_ASSESSMENTS"); path != "" {
		return path
	}
	return "assessments.json"
}

// frameworkID returns the requested framework ID from flag or env.
func frameworkID(cmd *cobra.Command) string {
	if id := envOrFlag(cmd, "framework", "CMMC_FRAMEWORK"); id != "" {
		return id
	}
	return "cmmc-level2"
}

// loadFrameworks loads the framework catalogs: a directory of YAML files
// when --frameworks-dir is set, the embedded built-ins otherwise.
func loadFrameworks(cmd *cobra.Command) ([]framework.Framework, error) {
	dir, _ := cmd.Flags().GetString("frameworks-dir")
	if dir != "" {
		return framework.LoadDir(dir)
	}
	return framework.LoadFS(frameworks.Embedded)
}

// resolveFramework loads the catalogs and finds the requested framework.
func resolveFramework(cmd *cobra.Command) (*framework.Framework, error) {
	catalogs, err := loadFrameworks(cmd)
	if err != nil {
		return nil, err
	}
	return framework.Find(catalogs, frameworkID(cmd))
}

// computeBundle runs the full scoring pipeline for the requested
// framework over the stored assessments.
func computeBundle(cmd *cobra.Command) (*framework.Framework, *scoring.Bundle, error) {
	fw, err := resolveFramework(cmd)
	if err != nil {
		return nil, nil, err
	}

	store, err := assessment.Load(assessmentsPath(cmd))
	if err != nil {
		return nil, nil, err
	}

	engine := scoring.NewEngine(scoring.DefaultThresholds())
	bundle, err := engine.Evaluate(fw, store.Assessments)
	if err != nil {
		return nil, nil, fmt.Errorf("scoring %s: %w", fw.ID, err)
	}
	return fw, bundle, nil
}

// addCommonFlags registers the flags shared by scoring commands.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("assessments", "", "Path to the assessments file (or set CMMC_ASSESSMENTS)")
	cmd.Flags().String("framework", "", "Framework ID to score against (or set CMMC_FRAMEWORK)")
	cmd.Flags().String("frameworks-dir", "", "Load framework catalogs from this directory instead of the built-ins")
}

// writeReport renders the bundle in the requested format to a file.
func writeReport(bundle *scoring.Bundle, output, format string) error {
	factory, err := report.Get(format)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	return factory().Generate(f, bundle)
}

// --- Commands ---

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute readiness scores for the active assessment",
		Long: `Selects the most recently modified assessment for the framework,
computes domain scores, gap rankings, and recommendations, and prints a
summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, bundle, err := computeBundle(cmd)
			if err != nil {
				return err
			}

			printBundle(bundle)
			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}

// printBundle writes the human-readable score summary to stdout.
func printBundle(b *scoring.Bundle) {
	fmt.Printf("%s", b.FrameworkName)
	if b.OrgName != "" {
		fmt.Printf(" - %s", b.OrgName)
	}
	fmt.Println()

	if b.AssessmentID == "" {
		fmt.Println("No assessment recorded yet; showing zero-state baseline.")
	}

	fmt.Printf("Overall score: %d%% (target %d%%), %d/%d controls answered\n\n", b.OverallScore, b.Target, b.Answered, b.Total)

	fmt.Printf("%-42s %-7s %-10s %s\n", "DOMAIN", "SCORE", "ANSWERED", "SEVERITY")
	fmt.Println(strings.Repeat("-", 72))
	severities := make(map[string]scoring.Severity, len(b.Gaps))
	for _, g := range b.Gaps {
		severities[g.Domain] = g.Severity
	}
	for _, ds := range b.DomainScores {
		severity := ""
		if s, ok := severities[ds.Domain]; ok {
			severity = string(s)
		}
		fmt.Printf("%-42s %3d%%    %3d/%-3d    %s\n", ds.Domain, ds.Score, ds.Answered, ds.Total, severity)
	}

	if len(b.Recommendations) > 0 {
		fmt.Println("\nTop recommendations:")
		recs := b.Recommendations
		if len(recs) > 5 {
			recs = recs[:5]
		}
		for i, rec := range recs {
			fmt.Printf("%d. [%s] %s: %s (%s, %s)\n", i+1, rec.Priority, rec.Domain, rec.Action, rec.Effort, rec.Timeframe)
		}
	}
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a readiness report (html, json, or csv)",
		Long:  `Computes the full metrics bundle and writes it as a report file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")

			_, bundle, err := computeBundle(cmd)
			if err != nil {
				return err
			}

			if err := writeReport(bundle, output, format); err != nil {
				return err
			}
			log.Printf("Report written to %s", output)

			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().String("output", "report.html", "Output file path")
	cmd.Flags().String("format", "html", fmt.Sprintf("Report format: %s", strings.Join(report.List(), ", ")))

	return cmd
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new assessment record",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, _ := cmd.Flags().GetString("org")
			path := assessmentsPath(cmd)

			fw, err := resolveFramework(cmd)
			if err != nil {
				return err
			}

			store, err := assessment.Load(path)
			if err != nil {
				return err
			}

			rec := assessment.New(fw.ID, org)
			store.Assessments = append(store.Assessments, rec)
			if err := store.Save(path); err != nil {
				return err
			}

			log.Printf("Created assessment %s for %s in %s", rec.ID, fw.ID, path)
			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().String("org", "", "Organization display name")
	return cmd
}

func newAnswerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Record a maturity level for one control",
		Long: `Records a self-assessed maturity level (0-3) for a control in the
active assessment, or in a specific assessment given --assessment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			controlID, _ := cmd.Flags().GetString("control")
			level, _ := cmd.Flags().GetInt("level")
			assessmentID, _ := cmd.Flags().GetString("assessment")
			path := assessmentsPath(cmd)

			if level < scoring.LevelMin || level > scoring.LevelMax {
				return fmt.Errorf("level %d out of range [%d,%d]", level, scoring.LevelMin, scoring.LevelMax)
			}

			fw, err := resolveFramework(cmd)
			if err != nil {
				return err
			}
			if !fw.HasControl(controlID) {
				return fmt.Errorf("control %q not defined in framework %s", controlID, fw.ID)
			}

			store, err := assessment.Load(path)
			if err != nil {
				return err
			}

			var rec *assessment.Record
			if assessmentID != "" {
				rec = store.Get(assessmentID)
				if rec == nil {
					return fmt.Errorf("assessment %q not found in %s", assessmentID, path)
				}
			} else {
				active, ok := assessment.SelectActive(store.Assessments, fw.ID)
				if !ok {
					return fmt.Errorf("no assessment for framework %s in %s; run 'cmmcready new' first", fw.ID, path)
				}
				rec = active
			}

			if rec.Responses == nil {
				rec.Responses = make(map[string]int)
			}
			rec.Responses[controlID] = level
			rec.Touch()

			if err := store.Save(path); err != nil {
				return err
			}

			log.Printf("Recorded %s = %d (%s) in assessment %s", controlID, level, scoring.StatusLabel(level), rec.ID)
			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().String("assessment", "", "Assessment ID (default: the active assessment)")
	cmd.Flags().String("control", "", "Control ID (e.g. AC.L2-3.1.1)")
	cmd.Flags().Int("level", 0, "Maturity level: 0=not, 1=partially, 2=largely, 3=fully implemented")
	_ = cmd.MarkFlagRequired("control")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

func newFrameworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frameworks",
		Short: "Manage and list framework catalogs",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available framework catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogs, err := loadFrameworks(cmd)
			if err != nil {
				return err
			}

			fmt.Printf("%-14s %-22s %-9s %s\n", "ID", "NAME", "DOMAINS", "CONTROLS")
			fmt.Println(strings.Repeat("-", 56))
			for i := range catalogs {
				f := &catalogs[i]
				fmt.Printf("%-14s %-22s %-9d %d\n", f.ID, f.Name, len(f.Sections), f.ControlCount())
			}

			return nil
		},
	}
	listCmd.Flags().String("frameworks-dir", "", "Load framework catalogs from this directory instead of the built-ins")

	cmd.AddCommand(listCmd)
	return cmd
}

func newControlsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "controls",
		Short: "List the controls of a framework",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all controls in a framework",
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := resolveFramework(cmd)
			if err != nil {
				return err
			}

			fmt.Printf("%-16s %-40s %s\n", "CONTROL", "TITLE", "DOMAIN")
			fmt.Println(strings.Repeat("-", 90))
			for i := range fw.Sections {
				sec := &fw.Sections[i]
				for _, q := range sec.Questions() {
					fmt.Printf("%-16s %-40s %s\n", q.ControlID, q.Title, sec.Name)
				}
			}
			fmt.Printf("\nTotal: %d controls\n", fw.ControlCount())

			return nil
		},
	}
	listCmd.Flags().String("framework", "", "Framework ID (or set CMMC_FRAMEWORK)")
	listCmd.Flags().String("frameworks-dir", "", "Load framework catalogs from this directory instead of the built-ins")

	cmd.AddCommand(listCmd)
	return cmd
}

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server for AI-assisted readiness analysis",
		Long: `Starts a Model Context Protocol (MCP) server over stdio.
Computes the readiness metrics bundle for the active assessment and
exposes it as MCP tools and resources.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, bundle, err := computeBundle(cmd)
			if err != nil {
				return err
			}
			log.Printf("Scored %s: overall %d%%, %d open gaps", bundle.FrameworkID, bundle.OverallScore, len(bundle.Gaps))

			data := &mcpserver.ReadinessData{
				Framework: fw,
				Bundle:    bundle,
			}

			mcpSrv := mcpserver.NewMCPServer(data)

			log.Println("Starting MCP server on stdio...")
			if err := server.ServeStdio(mcpSrv); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}

			return nil
		},
	}

	addCommonFlags(cmd)
	return cmd
}
