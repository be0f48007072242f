package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/engine"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/policy"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/common"
	awslogging "github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/logging"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/render"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/rulepacks/logging"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/rules"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/scripts"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "plr",
		Short: "PCI Log Review — AWS log management compliance review",
	}
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newScriptsCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		profile            string
		region             string
		outputFmt          string
		withCost           bool
		generateScripts    bool
		scriptsDir         string
		findingsOut        string
		recommendationsOut string
		colored            bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze AWS log management configuration for PCI DSS compliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := policy.LoadOrDefault(policy.DefaultPath)
			if err != nil {
				return fmt.Errorf("loading policy: %w", err)
			}

			provider := common.NewDefaultAWSClientProvider()
			collector := awslogging.NewDefaultLoggingCollector()
			eng := engine.NewDefaultReviewEngine(provider, collector)

			report, err := eng.RunReview(cmd.Context(), engine.ReviewOptions{
				Profile:  profile,
				Region:   region,
				WithCost: withCost,
			})
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			recs := deriveRecommendations(report, cfg)
			data := render.BuildReportData(report, recs, cfg.Scoring, time.Now())

			if findingsOut != "" {
				if err := writeJSONFile(findingsOut, report); err != nil {
					return err
				}
			}
			if recommendationsOut != "" {
				if err := writeJSONFile(recommendationsOut, recs); err != nil {
					return err
				}
			}

			var scriptFiles []string
			if generateScripts {
				gen := scripts.NewGenerator(cfg.Remediation, report.Region, report.AccountID)
				scriptFiles, err = gen.WriteAll(report, scriptsDir)
				if err != nil {
					return fmt.Errorf("generating scripts: %w", err)
				}
			}

			switch outputFmt {
			case "json":
				return render.WriteJSON(cmd.OutOrStdout(), data)
			case "yaml":
				return render.WriteYAML(cmd.OutOrStdout(), data)
			case "report":
				render.WriteConsoleReport(cmd.OutOrStdout(), data, render.ConsoleOptions{
					Colored:     colored,
					ScriptFiles: scriptFiles,
				})
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want report, json, or yaml)", outputFmt)
			}
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "AWS profile name (default: uses environment / default profile)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region to analyze (default: profile region)")
	cmd.Flags().StringVar(&outputFmt, "output", "report", "Output format: report, json, or yaml")
	cmd.Flags().BoolVar(&withCost, "with-cost", false, "Include last month's logging spend from Cost Explorer")
	cmd.Flags().BoolVar(&generateScripts, "generate-scripts", false, "Write remediation scripts alongside the report")
	cmd.Flags().StringVar(&scriptsDir, "scripts-dir", "scripts", "Directory for generated remediation scripts")
	cmd.Flags().StringVar(&findingsOut, "findings-out", "", "Write raw findings JSON to this file path")
	cmd.Flags().StringVar(&recommendationsOut, "recommendations-out", "", "Write recommendations JSON to this file path")
	cmd.Flags().BoolVar(&colored, "color", false, "Colour severity labels in console output")

	return cmd
}

// deriveRecommendations evaluates the logging rule pack against report,
// embedding freshly rendered remediation scripts parameterised by policy.
func deriveRecommendations(report *models.FindingsReport, cfg *policy.Config) []models.Recommendation {
	registry := rules.NewDefaultRuleRegistry()
	for _, r := range logging.New() {
		registry.Register(r)
	}
	gen := scripts.NewGenerator(cfg.Remediation, report.Region, report.AccountID)
	return registry.EvaluateAll(rules.RuleContext{Report: report, Scripts: gen})
}

// writeJSONFile serialises v as indented JSON and writes it to path,
// creating or overwriting the file.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file %q: %w", path, err)
	}
	return nil
}

// loadFindingsFile reads a findings JSON file produced by analyze or run.
func loadFindingsFile(path string) (*models.FindingsReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read findings file %q: %w", path, err)
	}
	var report models.FindingsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse findings file %q: %w", path, err)
	}
	return &report, nil
}

// loadRecommendationsFile reads a recommendations JSON file. A missing or
// empty path returns nil so callers can fall back to deriving them.
func loadRecommendationsFile(path string) ([]models.Recommendation, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recommendations file %q: %w", path, err)
	}
	var recs []models.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse recommendations file %q: %w", path, err)
	}
	return recs, nil
}
