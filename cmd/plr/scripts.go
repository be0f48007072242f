package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/policy"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/scripts"
)

func newScriptsCmd() *cobra.Command {
	var (
		findingsFile string
		outputDir    string
	)

	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "Generate remediation shell scripts from saved findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := policy.LoadOrDefault(policy.DefaultPath)
			if err != nil {
				return fmt.Errorf("loading policy: %w", err)
			}

			report, err := loadFindingsFile(findingsFile)
			if err != nil {
				return err
			}

			gen := scripts.NewGenerator(cfg.Remediation, report.Region, report.AccountID)
			files, err := gen.WriteAll(report, outputDir)
			if err != nil {
				return fmt.Errorf("generating scripts: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d remediation scripts in %s:\n", len(files), outputDir)
			for _, f := range files {
				fmt.Fprintf(out, "  %s\n", f)
			}
			fmt.Fprintln(out, "\nReview each script before running it against a production account.")
			return nil
		},
	}

	cmd.Flags().StringVar(&findingsFile, "findings-file", "findings.json", "Findings JSON file produced by analyze or run")
	cmd.Flags().StringVar(&outputDir, "output-dir", "scripts", "Directory for generated scripts")

	return cmd
}
