package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/engine"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/policy"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/common"
	awslogging "github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/logging"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/render"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/scripts"
)

// runOptions carries the plr run flags into runWorkflow.
type runOptions struct {
	Profile         string
	Region          string
	OutputDir       string
	GenerateScripts bool
	WithCost        bool
	SkipAnalysis    bool
	SkipReports     bool
	SkipScripts     bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the complete analysis workflow: analyze, reports, scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := common.NewDefaultAWSClientProvider()
			eng := engine.NewDefaultReviewEngine(provider, awslogging.NewDefaultLoggingCollector())
			return runWorkflow(cmd.Context(), provider, eng, exec.LookPath, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "AWS profile name (default: uses environment / default profile)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "AWS region to analyze (default: profile region)")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "output", "Directory for all generated files")
	cmd.Flags().BoolVar(&opts.GenerateScripts, "generate-scripts", false, "Generate remediation scripts")
	cmd.Flags().BoolVar(&opts.WithCost, "with-cost", false, "Include last month's logging spend from Cost Explorer")
	cmd.Flags().BoolVar(&opts.SkipAnalysis, "skip-analysis", false, "Skip analysis and use existing findings")
	cmd.Flags().BoolVar(&opts.SkipReports, "skip-reports", false, "Skip report generation")
	cmd.Flags().BoolVar(&opts.SkipScripts, "skip-scripts", false, "Skip script generation")

	return cmd
}

// runWorkflow executes the preflight checks and the analyze → persist →
// reports → scripts pipeline. provider, eng, and lookPath are injected so
// tests can run the workflow against fakes.
func runWorkflow(ctx context.Context, provider common.AWSClientProvider, eng engine.ReviewEngine, lookPath func(string) (string, error), w io.Writer, opts runOptions) error {
	banner := strings.Repeat("=", 60)

	fmt.Fprintln(w, "AWS Log Management Review - Complete Analysis Workflow")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Profile: %s\n", displayProfile(opts.Profile))
	fmt.Fprintf(w, "Output Directory: %s\n", opts.OutputDir)
	fmt.Fprintf(w, "Generate Scripts: %v\n", opts.GenerateScripts)
	fmt.Fprintln(w, banner)

	// Preflight: policy file, aws CLI, then credentials via STS.
	cfg, err := policy.LoadOrDefault(policy.DefaultPath)
	if err != nil {
		return fmt.Errorf("loading policy: %w", err)
	}
	if errs := policy.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(w, "policy: %v\n", e)
		}
		return fmt.Errorf("invalid policy file %s", policy.DefaultPath)
	}

	if _, err := lookPath("aws"); err != nil {
		return fmt.Errorf("aws CLI not found on PATH; remediation scripts require it: %w", err)
	}

	profile, err := provider.LoadProfile(ctx, opts.Profile)
	if err != nil {
		fmt.Fprintln(w, "AWS credentials not configured or invalid")
		fmt.Fprintln(w, "Please run: aws configure")
		return fmt.Errorf("credential check failed: %w", err)
	}
	fmt.Fprintf(w, "AWS credentials OK (account %s)\n", profile.AccountID)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", opts.OutputDir, err)
	}

	findingsFile := filepath.Join(opts.OutputDir, "findings.json")
	recommendationsFile := filepath.Join(opts.OutputDir, "recommendations.json")

	// Step 1: analysis.
	var (
		report *models.FindingsReport
		recs   []models.Recommendation
	)
	if opts.SkipAnalysis {
		fmt.Fprintln(w, "\nSkipping analysis (using existing findings)")
		report, err = loadFindingsFile(findingsFile)
		if err != nil {
			return fmt.Errorf("existing findings not usable, run analysis first: %w", err)
		}
		recs, err = loadRecommendationsFile(recommendationsFile)
		if err != nil {
			return fmt.Errorf("existing recommendations not usable, run analysis first: %w", err)
		}
	} else {
		fmt.Fprintln(w, "\nRunning AWS log analysis...")
		report, err = eng.RunReview(ctx, engine.ReviewOptions{
			Profile:  opts.Profile,
			Region:   opts.Region,
			WithCost: opts.WithCost,
		})
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		recs = deriveRecommendations(report, cfg)

		if err := writeJSONFile(findingsFile, report); err != nil {
			return err
		}
		if err := writeJSONFile(recommendationsFile, recs); err != nil {
			return err
		}
		fmt.Fprintln(w, "Analysis results saved to:")
		fmt.Fprintf(w, "  - %s\n", findingsFile)
		fmt.Fprintf(w, "  - %s\n", recommendationsFile)
	}

	// Step 2: remediation scripts, generated before reports so the HTML
	// report can list them.
	var scriptFiles []string
	if opts.GenerateScripts && !opts.SkipScripts {
		scriptsDir := filepath.Join(opts.OutputDir, "scripts")
		gen := scripts.NewGenerator(cfg.Remediation, report.Region, report.AccountID)
		scriptFiles, err = gen.WriteAll(report, scriptsDir)
		if err != nil {
			return fmt.Errorf("generating scripts: %w", err)
		}
		fmt.Fprintf(w, "\nGenerated %d remediation scripts in %s\n", len(scriptFiles), scriptsDir)
	} else {
		fmt.Fprintln(w, "\nSkipping script generation")
	}

	// Step 3: reports in all formats.
	if !opts.SkipReports {
		reportsDir := filepath.Join(opts.OutputDir, "reports")
		if err := os.MkdirAll(reportsDir, 0o755); err != nil {
			return fmt.Errorf("creating reports dir %q: %w", reportsDir, err)
		}

		data := render.BuildReportData(report, recs, cfg.Scoring, time.Now())
		if err := writeReportFile(filepath.Join(reportsDir, htmlReportFile), func(f *os.File) error {
			return render.WriteHTML(f, data, "", scriptFiles)
		}); err != nil {
			return err
		}
		if err := writeReportFile(filepath.Join(reportsDir, jsonReportFile), func(f *os.File) error {
			return render.WriteJSON(f, data)
		}); err != nil {
			return err
		}
		if err := writeReportFile(filepath.Join(reportsDir, yamlReportFile), func(f *os.File) error {
			return render.WriteYAML(f, data)
		}); err != nil {
			return err
		}
		fmt.Fprintf(w, "Reports generated in: %s\n", reportsDir)
	} else {
		fmt.Fprintln(w, "Skipping report generation")
	}

	fmt.Fprintln(w, "\n"+banner)
	fmt.Fprintln(w, "ANALYSIS COMPLETE")
	fmt.Fprintf(w, "Total issues: %d, recommendations: %d\n", report.CountIssues(), len(recs))
	if !opts.SkipReports {
		fmt.Fprintf(w, "To view the HTML report, open: %s\n",
			filepath.Join(opts.OutputDir, "reports", htmlReportFile))
	}
	fmt.Fprintln(w, banner)
	return nil
}

func displayProfile(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}
