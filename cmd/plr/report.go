package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/policy"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/render"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/scripts"
)

// Report file names written into --output-dir, one per format.
const (
	htmlReportFile = "aws_log_review_report.html"
	jsonReportFile = "aws_log_review_report.json"
	yamlReportFile = "aws_log_review_report.yaml"
)

func newReportCmd() *cobra.Command {
	var (
		findingsFile        string
		recommendationsFile string
		format              string
		outputDir           string
		generateScripts     bool
		templatePath        string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate HTML/JSON/YAML reports from saved findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := policy.LoadOrDefault(policy.DefaultPath)
			if err != nil {
				return fmt.Errorf("loading policy: %w", err)
			}

			report, err := loadFindingsFile(findingsFile)
			if err != nil {
				return err
			}
			recs, err := loadRecommendationsFile(recommendationsFile)
			if err != nil {
				return err
			}
			if recs == nil {
				recs = deriveRecommendations(report, cfg)
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir %q: %w", outputDir, err)
			}

			var scriptFiles []string
			if generateScripts {
				gen := scripts.NewGenerator(cfg.Remediation, report.Region, report.AccountID)
				scriptFiles, err = gen.WriteAll(report, filepath.Join(outputDir, "scripts"))
				if err != nil {
					return fmt.Errorf("generating scripts: %w", err)
				}
			}

			data := render.BuildReportData(report, recs, cfg.Scoring, time.Now())
			out := cmd.OutOrStdout()

			writeHTML := format == "html" || format == "all"
			writeJSON := format == "json" || format == "all"
			writeYAML := format == "yaml" || format == "all"
			if !writeHTML && !writeJSON && !writeYAML {
				return fmt.Errorf("unknown report format %q (want html, json, yaml, or all)", format)
			}

			if writeHTML {
				path := filepath.Join(outputDir, htmlReportFile)
				if err := writeReportFile(path, func(f *os.File) error {
					return render.WriteHTML(f, data, templatePath, scriptFiles)
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "HTML report: %s\n", path)
			}
			if writeJSON {
				path := filepath.Join(outputDir, jsonReportFile)
				if err := writeReportFile(path, func(f *os.File) error {
					return render.WriteJSON(f, data)
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "JSON report: %s\n", path)
			}
			if writeYAML {
				path := filepath.Join(outputDir, yamlReportFile)
				if err := writeReportFile(path, func(f *os.File) error {
					return render.WriteYAML(f, data)
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "YAML report: %s\n", path)
			}

			if writeHTML {
				fmt.Fprintf(out, "\nTo view the HTML report, open: %s\n", filepath.Join(outputDir, htmlReportFile))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&findingsFile, "findings-file", "findings.json", "Findings JSON file produced by analyze or run")
	cmd.Flags().StringVar(&recommendationsFile, "recommendations-file", "", "Recommendations JSON file (default: derive from findings)")
	cmd.Flags().StringVar(&format, "format", "html", "Report format: html, json, yaml, or all")
	cmd.Flags().StringVar(&outputDir, "output-dir", "reports", "Directory for generated report files")
	cmd.Flags().BoolVar(&generateScripts, "generate-scripts", false, "Also write remediation scripts and list them in the HTML report")
	cmd.Flags().StringVar(&templatePath, "template", "", "Custom HTML template file (default: built-in template)")

	return cmd
}

// writeReportFile creates path and streams one report into it via write.
func writeReportFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
